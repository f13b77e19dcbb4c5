package opython

import (
	"errors"
	"fmt"
)

// ExtensionFunc prepares a freshly started interpreter
type ExtensionFunc func(*Setup) error

var extensions = make(map[string]ExtensionFunc)

// Extension registers an init function run on every fresh start of
// interpreters created with New. If Extension is called twice with the same
// name it panics.
func Extension(name string, fn ExtensionFunc) {
	if name == "" {
		panic("error - empty name not allowed")
	}

	if _, dup := extensions[name]; dup {
		panic("extension register called twice for " + name)
	}
	extensions[name] = fn
}

// ExtensionExists checks if extension is registered
func ExtensionExists(name string) bool {
	_, exists := extensions[name]
	return exists
}

// Require runs a registered extension on the running interpreter, unless it
// was already loaded in the current generation.
func (i *Interpreter) Require(name string) (bool, error) {
	if name == "" {
		return false, errors.New("error - empty")
	}

	fn, exists := extensions[name]
	if !exists {
		return false, fmt.Errorf("error loading '%v'", name)
	}

	tok, err := i.EnsureStarted()
	if err != nil {
		return false, err
	}
	defer i.StopIfStarted(tok)

	i.mu.Lock()
	_, loaded := i.loaded[name]
	if !loaded {
		i.loaded[name] = struct{}{}
	}
	i.mu.Unlock()

	if loaded {
		return false, nil
	}

	if err := fn(&Setup{i}); err != nil {
		i.mu.Lock()
		delete(i.loaded, name)
		i.mu.Unlock()
		return false, err
	}
	return true, nil
}

// Setup gives extensions access to an interpreter that is known to be
// running. Its methods must not be called after the extension returns.
type Setup struct {
	interp *Interpreter
}

// Interpreter being prepared. Its methods may be called from the extension,
// they run inline on the interpreter being prepared.
func (s *Setup) Interpreter() *Interpreter { return s.interp }

// AppendPath appends dir to sys.path
func (s *Setup) AppendPath(dir string) error {
	return s.interp.rt.Do(func() error { return s.interp.appendPath(dir) })
}

// Import imports module and keeps it in the module cache
func (s *Setup) Import(name string) error {
	return s.interp.rt.Do(func() error {
		_, err := s.interp.resolveModule(name)
		return err
	})
}

// Source creates module name from Python source code
func (s *Setup) Source(name, code string) error {
	return s.interp.rt.Do(func() error {
		p, err := s.interp.execModule(name, code)
		if p != nil {
			decref(p)
		}
		return err
	})
}

// Call calls function fn of module with args
func (s *Setup) Call(module, fn string, args ...interface{}) (result interface{}, err error) {
	err = s.interp.rt.Do(func() error {
		result, err = s.interp.callWithModule(module, fn, args)
		return err
	})
	return result, err
}
