package opython

import "sync"

// New creates interpreter running every registered extension on each fresh
// start. The interpreter is started lazily by the first call, or by Start.
// Only one interpreter can be running in a process at a time.
func New(cfg *Config) (*Interpreter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newInterpreter(newPyRuntime(), cfg, false), nil
}

// NewCore creates interpreter without extensions, leaving user to load
// a subset of them with Require
func NewCore(cfg *Config) (*Interpreter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newInterpreter(newPyRuntime(), cfg, true), nil
}

var (
	defaultOnce   sync.Once
	defaultInterp *Interpreter
)

// Default returns the process-wide interpreter, created with DefaultConfig
// on first use
func Default() *Interpreter {
	defaultOnce.Do(func() {
		defaultInterp = newInterpreter(newPyRuntime(), DefaultConfig(), false)
	})
	return defaultInterp
}

// Start starts and pins the default interpreter
func Start() bool { return Default().Start() }

// Stop stops the default interpreter
func Stop() bool { return Default().Stop() }

// Import imports module name into the default interpreter
func Import(name string) (*Module, error) { return Default().Import(name) }

// Call calls function fn of module in the default interpreter
func Call(module, fn string, args ...interface{}) (interface{}, error) {
	return Default().CallWithModule(module, fn, args...)
}

// Func calls the default interpreter with the positional form
// func(modname, funcname, *args)
func Func(args ...interface{}) (interface{}, error) { return Default().Func(args...) }
