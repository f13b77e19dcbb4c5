package opython

// #include "go-py.h"
import "C"

// Class is a Python class
type Class struct {
	*Object
	name string
}

// Name of the class
func (c *Class) Name() string { return c.name }

// New creates an instance calling the class with args. Exceptions raised by
// the constructor are returned as *Error.
func (c *Class) New(args ...interface{}) (inst *Instance, err error) {
	i := c.Interpreter()
	err = c.h.do(func(p *C.PyObject) error {
		r, err := i.callObject(p, args)
		if err != nil {
			return err
		}
		inst = &Instance{Object: i.wrap(r), class: c}
		return nil
	})
	return inst, err
}

// Call calls class or static method name with args
func (c *Class) Call(name string, args ...interface{}) (interface{}, error) {
	return c.CallMethod(name, args...)
}

func (c *Class) String() string { return "<class '" + c.name + "'>" }
