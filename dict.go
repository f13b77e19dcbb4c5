package opython

// #include "go-py.h"
import "C"
import (
	"fmt"
	"reflect"
)

// Kwargs passed as the last call argument become keyword arguments
type Kwargs map[string]interface{}

// pyDict builds Python dict from Go map
func (i *Interpreter) pyDict(v reflect.Value, depth int) (*C.PyObject, error) {
	d := C.PyDict_New()
	if d == nil {
		return nil, i.pyError("PyDict_New")
	}

	iter := v.MapRange()
	for iter.Next() {
		key, err := i.toPython(iter.Key().Interface(), depth+1)
		if err != nil {
			decref(d)
			return nil, err
		}

		val, err := i.toPython(iter.Value().Interface(), depth+1)
		if err != nil {
			decref(key)
			decref(d)
			return nil, err
		}

		rc := C.PyDict_SetItem(d, key, val)
		decref(key)
		decref(val)
		if rc < 0 {
			decref(d)
			return nil, i.fetchError()
		}
	}
	return d, nil
}

// goDict converts Python dict. Dicts keyed by str only become
// map[string]interface{}, others map[interface{}]interface{}.
func (i *Interpreter) goDict(o *C.PyObject, depth int) (interface{}, error) {
	n := int(C.PyDict_Size(o))
	keys := make([]interface{}, 0, n)
	vals := make([]interface{}, 0, n)
	strKeys := true

	var pos C.Py_ssize_t
	var k, v *C.PyObject
	for C.PyDict_Next(o, &pos, &k, &v) != 0 {
		strKeys = strKeys && C._py_unicode_check(k) != 0

		gk, err := i.toGo(k, depth+1)
		if err != nil {
			return nil, err
		}

		gv, err := i.toGo(v, depth+1)
		if err != nil {
			return nil, err
		}

		keys = append(keys, gk)
		vals = append(vals, gv)
	}

	if strKeys {
		m := make(map[string]interface{}, len(keys))
		for j, key := range keys {
			m[key.(string)] = vals[j]
		}
		return m, nil
	}

	m := make(map[interface{}]interface{}, len(keys))
	for j, key := range keys {
		if key != nil && !reflect.TypeOf(key).Comparable() {
			key = fmt.Sprint(key)
		}
		m[key] = vals[j]
	}
	return m, nil
}
