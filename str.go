package opython

// #include "go-py.h"
import "C"
import "unsafe"

// pyString creates Python str from Go string
func pyString(s string) *C.PyObject {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return C._py_str_new(cs, C.Py_ssize_t(len(s)))
}

// goString decodes Python str
func goString(o *C.PyObject) (string, bool) {
	b := C._py_str_encode(o)
	if b == nil {
		return "", false
	}
	defer decref(b)

	var buf *C.char
	var n C.Py_ssize_t
	if C.PyBytes_AsStringAndSize(b, &buf, &n) < 0 {
		return "", false
	}
	return C.GoStringN(buf, C.int(n)), true
}

// pyBytes creates Python bytes from Go bytes
func pyBytes(b []byte) *C.PyObject {
	if len(b) == 0 {
		return C.PyBytes_FromStringAndSize(nil, 0)
	}
	return C.PyBytes_FromStringAndSize((*C.char)(unsafe.Pointer(&b[0])), C.Py_ssize_t(len(b)))
}

// goBytes copies Python bytes or bytearray
func goBytes(o *C.PyObject) []byte {
	if C._py_bytearray_check(o) != 0 {
		n := C.PyByteArray_Size(o)
		if n == 0 {
			return []byte{}
		}
		return C.GoBytes(unsafe.Pointer(C.PyByteArray_AsString(o)), C.int(n))
	}

	var buf *C.char
	var n C.Py_ssize_t
	if C.PyBytes_AsStringAndSize(o, &buf, &n) < 0 || n == 0 {
		C.PyErr_Clear()
		return []byte{}
	}
	return C.GoBytes(unsafe.Pointer(buf), C.int(n))
}

// strOf returns str(o), "" when it fails
func strOf(o *C.PyObject) string {
	if o == nil {
		return ""
	}

	s := C.PyObject_Str(o)
	if s == nil {
		C.PyErr_Clear()
		return ""
	}
	defer decref(s)

	str, ok := goString(s)
	if !ok {
		C.PyErr_Clear()
	}
	return str
}

// reprOf returns repr(o), "" when it fails
func reprOf(o *C.PyObject) string {
	r := C.PyObject_Repr(o)
	if r == nil {
		C.PyErr_Clear()
		return ""
	}
	defer decref(r)

	str, ok := goString(r)
	if !ok {
		C.PyErr_Clear()
	}
	return str
}
