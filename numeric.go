package opython

// #include "go-py.h"
import "C"
import (
	"math/big"
	"unsafe"
)

func pyInt(v int64) *C.PyObject { return C.PyLong_FromLongLong(C.longlong(v)) }

func pyUint(v uint64) *C.PyObject { return C.PyLong_FromUnsignedLongLong(C.ulonglong(v)) }

func pyBigInt(v *big.Int) *C.PyObject {
	cs := C.CString(v.String())
	defer C.free(unsafe.Pointer(cs))
	return C.PyLong_FromString(cs, nil, 10)
}

func pyFloat(v float64) *C.PyObject { return C.PyFloat_FromDouble(C.double(v)) }

func pyComplex(v complex128) *C.PyObject {
	return C.PyComplex_FromDoubles(C.double(real(v)), C.double(imag(v)))
}

func pyBool(v bool) *C.PyObject {
	if v {
		return C.PyBool_FromLong(1)
	}
	return C.PyBool_FromLong(0)
}

// goInt returns int, or *big.Int for values not fitting int
func (i *Interpreter) goInt(o *C.PyObject) (interface{}, error) {
	var overflow C.int
	v := int64(C.PyLong_AsLongLongAndOverflow(o, &overflow))
	if v == -1 && C.PyErr_Occurred() != nil {
		return nil, i.fetchError()
	}

	if overflow == 0 && int64(int(v)) == v {
		return int(v), nil
	}

	b, ok := new(big.Int).SetString(strOf(o), 10)
	if !ok {
		return nil, Raisef(ErrType, "ValueError", "cannot convert %v to integer", reprOf(o))
	}
	return b, nil
}

func (i *Interpreter) goFloat(o *C.PyObject) (interface{}, error) {
	v := float64(C.PyFloat_AsDouble(o))
	if v == -1 && C.PyErr_Occurred() != nil {
		return nil, i.fetchError()
	}
	return v, nil
}

func goComplex(o *C.PyObject) complex128 {
	return complex(float64(C.PyComplex_RealAsDouble(o)), float64(C.PyComplex_ImagAsDouble(o)))
}
