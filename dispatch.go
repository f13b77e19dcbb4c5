package opython

// #include "go-py.h"
import "C"
import (
	"fmt"
	"reflect"
	"unsafe"
)

func isBuiltins(name string) bool {
	return name == "builtins" || name == "__builtin__"
}

// resolveModule imports module name or returns it from the module cache.
// The returned reference is borrowed from the cache. Runtime thread only.
func (i *Interpreter) resolveModule(name string) (*C.PyObject, error) {
	if ref, ok := i.modules[name]; ok {
		return ref.p, nil
	}

	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var p *C.PyObject
	if isBuiltins(name) {
		bname := C.CString("builtins")
		defer C.free(unsafe.Pointer(bname))

		p = C.PyImport_AddModule(bname)
		if p != nil {
			C._py_incref(p)
		}
	} else {
		p = C.PyImport_ImportModule(cname)
	}

	if p == nil {
		return nil, i.pyError("import " + name)
	}

	i.modules[name] = &handleRef{p: p, gen: i.gen.Load()}
	return p, nil
}

// resolveFunction returns new reference to attribute fn of module m.
// Builtins are looked up directly in the builtin namespace.
func (i *Interpreter) resolveFunction(module string, m *C.PyObject, fn string) (*C.PyObject, error) {
	if isBuiltins(module) {
		cname := C.CString(fn)
		defer C.free(unsafe.Pointer(cname))

		f := C.PyDict_GetItemString(C.PyEval_GetBuiltins(), cname)
		if f == nil {
			return nil, Raisef(ErrAttribute, "AttributeError", "module 'builtins' has no attribute '%v'", fn)
		}
		C._py_incref(f)
		return f, nil
	}

	f := getAttr(m, fn)
	if f == nil {
		return nil, i.pyError(fmt.Sprintf("%v.%v", module, fn))
	}
	return f, nil
}

// callObject calls fn with marshalled args and returns new reference to the
// result. Kwargs as the last argument are passed as keyword arguments.
// Runtime thread only.
func (i *Interpreter) callObject(fn *C.PyObject, args []interface{}) (*C.PyObject, error) {
	var kwargs Kwargs
	if n := len(args); n > 0 {
		if kw, ok := args[n-1].(Kwargs); ok {
			kwargs = kw
			args = args[:n-1]
		}
	}

	targs, err := i.pyTuple(args, 0)
	if err != nil {
		return nil, err
	}
	defer decref(targs)

	var pkw *C.PyObject
	if len(kwargs) > 0 {
		pkw, err = i.pyDict(reflect.ValueOf(kwargs), 0)
		if err != nil {
			return nil, err
		}
		defer decref(pkw)
	}

	r := C.PyObject_Call(fn, targs, pkw)
	if r == nil {
		return nil, i.pyError("call")
	}
	return r, nil
}

// invoke calls fn and converts the result to Go. Runtime thread only.
func (i *Interpreter) invoke(fn *C.PyObject, args []interface{}) (interface{}, error) {
	r, err := i.callObject(fn, args)
	if err != nil {
		return nil, err
	}
	defer decref(r)

	return i.toGo(r, 0)
}

// dispatch calls method name of receiver recv. Runtime thread only.
func (i *Interpreter) dispatch(recv *C.PyObject, name string, args []interface{}) (interface{}, error) {
	f := getAttr(recv, name)
	if f == nil {
		return nil, i.fetchError()
	}
	defer decref(f)

	return i.invoke(f, args)
}

// callWithModule resolves module and function and calls it. Runtime thread
// only.
func (i *Interpreter) callWithModule(module, fn string, args []interface{}) (interface{}, error) {
	m, err := i.resolveModule(module)
	if err != nil {
		return nil, err
	}

	f, err := i.resolveFunction(module, m, fn)
	if err != nil {
		return nil, err
	}
	defer decref(f)

	return i.invoke(f, args)
}

// CallWithModule calls function fn of module with args. Use "builtins" for
// builtin functions. Python exceptions are returned as *Error.
func (i *Interpreter) CallWithModule(module, fn string, args ...interface{}) (result interface{}, err error) {
	err = i.do(func() error {
		result, err = i.callWithModule(module, fn, args)
		return err
	})
	return result, err
}

// Func is the positional form func(modname, funcname, *args). Called with
// fewer than two arguments it does nothing and returns false.
func (i *Interpreter) Func(args ...interface{}) (interface{}, error) {
	if len(args) < 2 {
		logger().Debug("python func called without module and function name", "args", len(args))
		return false, nil
	}

	module, ok := args[0].(string)
	if !ok {
		return nil, Raisef(ErrType, "TypeError", "module name must be string, not %T", args[0])
	}

	fn, ok := args[1].(string)
	if !ok {
		return nil, Raisef(ErrType, "TypeError", "function name must be string, not %T", args[1])
	}

	return i.CallWithModule(module, fn, args[2:]...)
}
