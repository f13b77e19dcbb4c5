package opython

// #include "go-py.h"
import "C"
import (
	"math/big"
	"reflect"
)

// toPython converts Go value to new Python reference. Values without a
// conversion rule are wrapped opaquely, so only interpreter failures and
// the depth bound produce errors. Runtime thread only.
func (i *Interpreter) toPython(v interface{}, depth int) (*C.PyObject, error) {
	if depth > i.cfg.maxDepth() {
		return nil, ErrRecursion
	}

	var p *C.PyObject
	switch x := v.(type) {
	case nil:
		return C._py_none(), nil
	case bool:
		p = pyBool(x)
	case int:
		p = pyInt(int64(x))
	case int8:
		p = pyInt(int64(x))
	case int16:
		p = pyInt(int64(x))
	case int32:
		p = pyInt(int64(x))
	case int64:
		p = pyInt(x)
	case uint:
		p = pyUint(uint64(x))
	case uint8:
		p = pyUint(uint64(x))
	case uint16:
		p = pyUint(uint64(x))
	case uint32:
		p = pyUint(uint64(x))
	case uint64:
		p = pyUint(x)
	case *big.Int:
		if x == nil {
			return C._py_none(), nil
		}
		p = pyBigInt(x)
	case float32:
		p = pyFloat(float64(x))
	case float64:
		p = pyFloat(x)
	case complex64:
		p = pyComplex(complex128(x))
	case complex128:
		p = pyComplex(x)
	case string:
		p = pyString(x)
	case []byte:
		p = pyBytes(x)
	case *Object:
		return x.borrow()
	case Resolver:
		return x.PyObject().borrow()
	case Tuple:
		return i.pyTuple(x, depth)
	case []interface{}:
		return i.pyList(reflect.ValueOf(x), depth)
	case map[string]interface{}:
		return i.pyDict(reflect.ValueOf(x), depth)
	case Kwargs:
		return i.pyDict(reflect.ValueOf(x), depth)
	default:
		return i.valuePython(reflect.ValueOf(v), depth)
	}

	if p == nil {
		return nil, i.pyError("conversion")
	}
	return p, nil
}

func (i *Interpreter) valuePython(v reflect.Value, depth int) (*C.PyObject, error) {
	var p *C.PyObject
	switch v.Kind() {
	case reflect.Invalid:
		return C._py_none(), nil
	case reflect.Bool:
		p = pyBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p = pyInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		p = pyUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		p = pyFloat(v.Float())
	case reflect.Complex64, reflect.Complex128:
		p = pyComplex(v.Complex())
	case reflect.String:
		p = pyString(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			p = pyBytes(v.Bytes())
			break
		}
		return i.pyList(v, depth)
	case reflect.Array:
		return i.pyList(v, depth)
	case reflect.Map:
		return i.pyDict(v, depth)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return C._py_none(), nil
		}
		p = pyCapsule(v.Interface())
	default:
		// structs, channels, functions
		p = pyCapsule(v.Interface())
	}

	if p == nil {
		return nil, i.pyError("conversion")
	}
	return p, nil
}

// toGo converts borrowed Python reference to Go value. Objects without a
// conversion rule come back as *Object. Runtime thread only.
func (i *Interpreter) toGo(o *C.PyObject, depth int) (interface{}, error) {
	if depth > i.cfg.maxDepth() {
		return nil, ErrRecursion
	}

	switch {
	case C._py_is_none(o) != 0:
		return nil, nil
	case C._py_bool_check(o) != 0:
		return C._py_is_true(o) != 0, nil
	case C._py_long_check(o) != 0:
		return i.goInt(o)
	case C._py_float_check(o) != 0:
		return i.goFloat(o)
	case C._py_complex_check(o) != 0:
		return goComplex(o), nil
	case C._py_unicode_check(o) != 0:
		s, ok := goString(o)
		if !ok {
			return nil, i.pyError("string conversion")
		}
		return s, nil
	case C._py_bytes_check(o) != 0, C._py_bytearray_check(o) != 0:
		return goBytes(o), nil
	case C._py_list_check(o) != 0, C._py_tuple_check(o) != 0:
		return i.goSequence(o, depth)
	case C._py_dict_check(o) != 0:
		return i.goDict(o, depth)
	}

	if v, ok := goCapsule(o); ok {
		return v, nil
	}

	return i.wrapBorrowed(o), nil
}

// Wrap converts Go value to Python and returns it as Object
func (i *Interpreter) Wrap(v interface{}) (obj *Object, err error) {
	err = i.do(func() error {
		p, err := i.toPython(v, 0)
		if err != nil {
			return err
		}
		obj = i.wrap(p)
		return nil
	})
	return obj, err
}

// Tuple creates Python tuple from args
func (i *Interpreter) Tuple(args ...interface{}) (*Object, error) {
	return i.Wrap(Tuple(args))
}

// List creates Python list from args
func (i *Interpreter) List(args ...interface{}) (*Object, error) {
	return i.Wrap(args)
}
