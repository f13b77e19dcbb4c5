package opython

// #include "go-py.h"
import "C"
import "reflect"

// Tuple marshals to a Python tuple instead of a list
type Tuple []interface{}

// pyList builds Python list from Go slice or array
func (i *Interpreter) pyList(v reflect.Value, depth int) (*C.PyObject, error) {
	n := v.Len()
	l := C.PyList_New(C.Py_ssize_t(n))
	if l == nil {
		return nil, i.pyError("PyList_New")
	}

	for j := 0; j < n; j++ {
		item, err := i.toPython(v.Index(j).Interface(), depth+1)
		if err != nil {
			decref(l)
			return nil, err
		}
		C.PyList_SetItem(l, C.Py_ssize_t(j), item)
	}
	return l, nil
}

// pyTuple builds Python tuple from Go values
func (i *Interpreter) pyTuple(items []interface{}, depth int) (*C.PyObject, error) {
	t := C.PyTuple_New(C.Py_ssize_t(len(items)))
	if t == nil {
		return nil, i.pyError("PyTuple_New")
	}

	for j, v := range items {
		item, err := i.toPython(v, depth+1)
		if err != nil {
			decref(t)
			return nil, err
		}
		C.PyTuple_SetItem(t, C.Py_ssize_t(j), item)
	}
	return t, nil
}

// goSequence converts Python list or tuple to []interface{}
func (i *Interpreter) goSequence(o *C.PyObject, depth int) ([]interface{}, error) {
	tuple := C._py_tuple_check(o) != 0

	var n C.Py_ssize_t
	if tuple {
		n = C.PyTuple_Size(o)
	} else {
		n = C.PyList_Size(o)
	}

	result := make([]interface{}, int(n))
	for j := C.Py_ssize_t(0); j < n; j++ {
		var item *C.PyObject
		if tuple {
			item = C.PyTuple_GetItem(o, j)
		} else {
			item = C.PyList_GetItem(o, j)
		}

		v, err := i.toGo(item, depth+1)
		if err != nil {
			return nil, err
		}
		result[j] = v
	}
	return result, nil
}
