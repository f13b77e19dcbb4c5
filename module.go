package opython

import "fmt"

// Module is an imported Python module
type Module struct {
	*Object
	name string
}

// Import imports module name, or returns it from the module cache. The
// module stays usable only while the interpreter runs: without Start the
// interpreter started for the import is stopped again and the module is
// stale.
func (i *Interpreter) Import(name string) (m *Module, err error) {
	err = i.do(func() error {
		p, err := i.resolveModule(name)
		if err != nil {
			return err
		}
		m = &Module{Object: i.wrapBorrowed(p), name: name}
		return nil
	})
	return m, err
}

// Name of the module as imported
func (m *Module) Name() string { return m.name }

// Call calls module function fn with args
func (m *Module) Call(fn string, args ...interface{}) (interface{}, error) {
	return m.CallMethod(fn, args...)
}

// Class returns class name defined in the module
func (m *Module) Class(name string) (*Class, error) {
	obj, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}

	if obj.Kind() != KindClass {
		obj.Close()
		return nil, Raisef(ErrType, "TypeError", "%v.%v is not a class", m.name, name)
	}
	return &Class{Object: obj, name: name}, nil
}

// Function returns callable name defined in the module
func (m *Module) Function(name string) (*Function, error) {
	obj, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}

	if !obj.IsCallable() {
		obj.Close()
		return nil, Raisef(ErrType, "TypeError", "%v.%v is not callable", m.name, name)
	}
	return &Function{Object: obj, name: m.name + "." + name}, nil
}

// Module imports submodule name of the module
func (m *Module) Module(name string) (*Module, error) {
	return m.Interpreter().Import(m.name + "." + name)
}

// Names returns public attribute names of the module, sorted
func (m *Module) Names() ([]string, error) {
	v, err := m.Interpreter().CallWithModule("builtins", "dir", m.Object)
	if err != nil {
		return nil, err
	}

	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("dir(%v) returned %T", m.name, v)
	}

	names := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" && s[0] != '_' {
			names = append(names, s)
		}
	}
	return names, nil
}

func (m *Module) String() string { return "<module '" + m.name + "'>" }
