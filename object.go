package opython

// #include "go-py.h"
import "C"
import "fmt"

// Kind tells what a Python object is on the Go side
type Kind int

// Object kinds
const (
	KindObject Kind = iota
	KindModule
	KindClass
	KindInstance
	KindFunction
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object"
	case KindModule:
		return "Module"
	case KindClass:
		return "Class"
	case KindInstance:
		return "Instance"
	case KindFunction:
		return "Function"
	case KindError:
		return "Error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Object is a Python object held from Go. It owns one Python reference,
// released by Close or when the Object is garbage collected.
type Object struct {
	h    *handle
	kind Kind
}

// Resolver is implemented by Object and every facade
type Resolver interface {
	PyObject() *Object
	Resolve(name string) (*Object, error)
	CallMethod(name string, args ...interface{}) (interface{}, error)
}

func kindOf(p *C.PyObject) Kind {
	switch {
	case C._py_module_check(p) != 0:
		return KindModule
	case C._py_type_check(p) != 0:
		return KindClass
	case C._py_exception_check(p) != 0:
		return KindError
	case C.PyCallable_Check(p) != 0:
		return KindFunction
	case C._py_heap_instance(p) != 0:
		return KindInstance
	}
	return KindObject
}

// wrap takes over new reference p. Runtime thread only.
func (i *Interpreter) wrap(p *C.PyObject) *Object {
	return &Object{i.newHandle(p), kindOf(p)}
}

// wrapBorrowed wraps borrowed reference p. Runtime thread only.
func (i *Interpreter) wrapBorrowed(p *C.PyObject) *Object {
	return &Object{i.borrowHandle(p), kindOf(p)}
}

// borrow returns new reference to the object. Runtime thread only.
func (o *Object) borrow() (*C.PyObject, error) {
	p, err := o.h.ptr()
	if err != nil {
		return nil, err
	}
	C._py_incref(p)
	return p, nil
}

// PyObject returns the object itself, facades return the object they wrap
func (o *Object) PyObject() *Object { return o }

// Interpreter owning the object
func (o *Object) Interpreter() *Interpreter { return o.h.interp }

// Kind of the object
func (o *Object) Kind() Kind { return o.kind }

// Valid reports if the object can still be used
func (o *Object) Valid() bool {
	_, err := o.h.ptr()
	return err == nil
}

// Close releases the Python reference. Further use returns ErrClosed.
func (o *Object) Close() {
	o.h.close()
}

// Value converts the object to Go value
func (o *Object) Value() (v interface{}, err error) {
	i := o.h.interp
	err = o.h.do(func(p *C.PyObject) error {
		v, err = i.toGo(p, 0)
		return err
	})
	return v, err
}

// HasAttr checks if the object has attribute name
func (o *Object) HasAttr(name string) (has bool, err error) {
	err = o.h.do(func(p *C.PyObject) error {
		a := getAttr(p, name)
		if a == nil {
			C.PyErr_Clear()
			return nil
		}
		decref(a)
		has = true
		return nil
	})
	return has, err
}

// Resolve returns attribute name as Object
func (o *Object) Resolve(name string) (obj *Object, err error) {
	i := o.h.interp
	err = o.h.do(func(p *C.PyObject) error {
		a := getAttr(p, name)
		if a == nil {
			return i.fetchError()
		}
		obj = i.wrap(a)
		return nil
	})
	return obj, err
}

// Get returns attribute name converted to Go value
func (o *Object) Get(name string) (v interface{}, err error) {
	i := o.h.interp
	err = o.h.do(func(p *C.PyObject) error {
		a := getAttr(p, name)
		if a == nil {
			return i.fetchError()
		}
		defer decref(a)

		v, err = i.toGo(a, 0)
		return err
	})
	return v, err
}

// Set sets attribute name, creating it if needed
func (o *Object) Set(name string, value interface{}) error {
	i := o.h.interp
	return o.h.do(func(p *C.PyObject) error {
		pv, err := i.toPython(value, 0)
		if err != nil {
			return err
		}
		defer decref(pv)

		if setAttr(p, name, pv) < 0 {
			return i.fetchError()
		}
		return nil
	})
}

// Call calls the object with args
func (o *Object) Call(args ...interface{}) (result interface{}, err error) {
	i := o.h.interp
	err = o.h.do(func(p *C.PyObject) error {
		result, err = i.invoke(p, args)
		return err
	})
	return result, err
}

// CallMethod calls method name of the object with args
func (o *Object) CallMethod(name string, args ...interface{}) (result interface{}, err error) {
	i := o.h.interp
	err = o.h.do(func(p *C.PyObject) error {
		result, err = i.dispatch(p, name, args)
		return err
	})
	return result, err
}

// Compare returns -1, 0 or 1 comparing the object to other
func (o *Object) Compare(other interface{}) (cmp int, err error) {
	i := o.h.interp
	err = o.h.do(func(p *C.PyObject) error {
		q, err := i.toPython(other, 0)
		if err != nil {
			return err
		}
		defer decref(q)

		switch C.PyObject_RichCompareBool(p, q, C.Py_EQ) {
		case 1:
			return nil
		case -1:
			return i.fetchError()
		}

		switch C.PyObject_RichCompareBool(p, q, C.Py_LT) {
		case 1:
			cmp = -1
		case 0:
			cmp = 1
		default:
			return i.fetchError()
		}
		return nil
	})
	return cmp, err
}

// Len returns len() of the object
func (o *Object) Len() (n int, err error) {
	i := o.h.interp
	err = o.h.do(func(p *C.PyObject) error {
		l := C.PyObject_Size(p)
		if l < 0 {
			return i.fetchError()
		}
		n = int(l)
		return nil
	})
	return n, err
}

// Repr returns repr() of the object
func (o *Object) Repr() (s string, err error) {
	err = o.h.do(func(p *C.PyObject) error {
		s = reprOf(p)
		return nil
	})
	return s, err
}

// String returns str() of the object, or the error text
func (o *Object) String() string {
	var s string
	err := o.h.do(func(p *C.PyObject) error {
		s = strOf(p)
		return nil
	})
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

// TypeName returns name of the object's type
func (o *Object) TypeName() (name string, err error) {
	err = o.h.do(func(p *C.PyObject) error {
		name = attrString(C._py_type(p), "__name__")
		return nil
	})
	return name, err
}

// IsCallable reports functions, methods, classes and callable instances
func (o *Object) IsCallable() bool {
	var ok bool
	_ = o.h.do(func(p *C.PyObject) error {
		ok = C.PyCallable_Check(p) != 0
		return nil
	})
	return ok
}

// IsClass reports if the object is a class
func (o *Object) IsClass() bool { return o.kind == KindClass }

// IsModule reports if the object is a module
func (o *Object) IsModule() bool { return o.kind == KindModule }

// RefCount returns Python reference count of the object
func (o *Object) RefCount() (n int, err error) {
	err = o.h.do(func(p *C.PyObject) error {
		n = int(C._py_refcnt(p))
		return nil
	})
	return n, err
}
