package opython

// #include "go-py.h"
import "C"
import "unsafe"

// appendPath appends dir to sys.path. Runtime thread only.
func (i *Interpreter) appendPath(dir string) error {
	name := C.CString("path")
	defer C.free(unsafe.Pointer(name))

	path := C.PySys_GetObject(name)
	if path == nil || C._py_list_check(path) == 0 {
		return Raise(ErrRuntime, "RuntimeError", "sys.path is not a list")
	}

	s := pyString(dir)
	if s == nil {
		return i.pyError("path conversion")
	}
	defer decref(s)

	if C.PyList_Append(path, s) < 0 {
		return i.fetchError()
	}
	return nil
}

// execModule compiles code and executes it as module name, returning new
// reference to the module. The module replaces a cached one of the same
// name. Runtime thread only.
func (i *Interpreter) execModule(name, code string) (*C.PyObject, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	ccode := C.CString(code)
	defer C.free(unsafe.Pointer(ccode))
	cfile := C.CString("<" + name + ">")
	defer C.free(unsafe.Pointer(cfile))

	compiled := C._py_compile(ccode, cfile)
	if compiled == nil {
		return nil, i.pyError("compile " + name)
	}
	defer decref(compiled)

	m := C.PyImport_ExecCodeModuleEx(cname, compiled, cfile)
	if m == nil {
		return nil, i.pyError("exec " + name)
	}

	if old, ok := i.modules[name]; ok {
		if old.released.CompareAndSwap(false, true) {
			decref(old.p)
		}
	}
	C._py_incref(m)
	i.modules[name] = &handleRef{p: m, gen: i.gen.Load()}

	return m, nil
}

// ModuleFromSource creates module name from Python source code and returns
// it. The module can be imported by name afterwards.
func (i *Interpreter) ModuleFromSource(name, code string) (m *Module, err error) {
	err = i.do(func() error {
		p, err := i.execModule(name, code)
		if err != nil {
			return err
		}
		m = &Module{Object: i.wrap(p), name: name}
		return nil
	})
	return m, err
}

// AppendPath appends dir to sys.path of the running interpreter. Use
// Config.Path to have it applied on every start.
func (i *Interpreter) AppendPath(dir string) error {
	return i.do(func() error { return i.appendPath(dir) })
}
