package opython

// #include "go-py.h"
import "C"
import (
	"strings"
	"unsafe"
)

// fetchError converts the pending Python exception to *Error and clears the
// error indicator. It returns nil if no exception is set. Runtime thread only.
func (i *Interpreter) fetchError() error {
	if C.PyErr_Occurred() == nil {
		return nil
	}

	var ptype, pvalue, ptb *C.PyObject
	C.PyErr_Fetch(&ptype, &pvalue, &ptb)
	C.PyErr_NormalizeException(&ptype, &pvalue, &ptb)
	defer decref(ptype)
	defer decref(ptb)

	if pvalue != nil && ptb != nil {
		C.PyException_SetTraceback(pvalue, ptb)
	}

	e := &Error{
		err:       ErrRuntime,
		Type:      "Exception",
		Traceback: formatTraceback(ptype, pvalue, ptb),
	}

	if ptype != nil {
		if name := attrString(ptype, "__name__"); name != "" {
			e.Type = name
		}

		switch {
		case C.PyErr_GivenExceptionMatches(ptype, C.PyExc_ImportError) != 0:
			e.err = ErrImport
		case C.PyErr_GivenExceptionMatches(ptype, C.PyExc_AttributeError) != 0:
			e.err = ErrAttribute
		}
	}

	if pvalue != nil {
		e.Message = strOf(pvalue)
		e.Exception = i.wrap(pvalue)
	}

	C.PyErr_Clear()
	return e
}

// pyError returns the pending Python exception or a RuntimeError describing
// what failed when the C API reported failure without one
func (i *Interpreter) pyError(what string) error {
	if err := i.fetchError(); err != nil {
		return err
	}
	return Raisef(ErrRuntime, "RuntimeError", "%v failed", what)
}

func formatTraceback(ptype, pvalue, ptb *C.PyObject) string {
	if ptype == nil {
		return ""
	}

	name := C.CString("traceback")
	defer C.free(unsafe.Pointer(name))

	mod := C.PyImport_ImportModule(name)
	if mod == nil {
		C.PyErr_Clear()
		return ""
	}
	defer decref(mod)

	fn := getAttr(mod, "format_exception")
	if fn == nil {
		C.PyErr_Clear()
		return ""
	}
	defer decref(fn)

	args := C.PyTuple_New(3)
	for n, o := range []*C.PyObject{ptype, pvalue, ptb} {
		if o == nil {
			o = C._py_none()
		} else {
			C._py_incref(o)
		}
		C.PyTuple_SetItem(args, C.Py_ssize_t(n), o)
	}
	defer decref(args)

	lines := C.PyObject_CallObject(fn, args)
	if lines == nil {
		C.PyErr_Clear()
		return ""
	}
	defer decref(lines)

	var sb strings.Builder
	n := C.PyList_Size(lines)
	for j := C.Py_ssize_t(0); j < n; j++ {
		sb.WriteString(strOf(C.PyList_GetItem(lines, j)))
	}
	return sb.String()
}

// getAttr returns new reference to attribute name of o, nil with Python
// error set if missing
func getAttr(o *C.PyObject, name string) *C.PyObject {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.PyObject_GetAttrString(o, cname)
}

// attrString returns str() of attribute name, "" if missing
func attrString(o *C.PyObject, name string) string {
	a := getAttr(o, name)
	if a == nil {
		C.PyErr_Clear()
		return ""
	}
	defer decref(a)
	return strOf(a)
}

// setAttr sets attribute name of o to v, returns -1 with Python error set on
// failure
func setAttr(o *C.PyObject, name string, v *C.PyObject) C.int {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.PyObject_SetAttrString(o, cname, v)
}
