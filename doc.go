// Package opython embeds the CPython interpreter in Go programs.
//
// The interpreter is started lazily by the first call and stopped when the
// last call using it returns, or kept running between Start and Stop:
//
//	opython.Start()
//	defer opython.Stop()
//
//	n, err := opython.Call("builtins", "len", []interface{}{1, 2, 3})
//
// Go values are converted to Python on the way in and back on the way out.
// nil, booleans, numbers, strings, byte slices, slices and maps have natural
// Python counterparts. Other Go values travel through Python opaquely and
// come back as the same Go value, while Python objects without a Go
// counterpart come back as *Object.
//
// Modules, classes, instances and every *Object belong to the interpreter
// run they were created in. Keep the interpreter pinned with Start while
// using them; objects returned by a lazily started call are already stale:
//
//	opython.Start()
//	defer opython.Stop()
//
//	m, err := opython.Import("collections")
//	c, err := m.Class("OrderedDict")
//	d, err := c.New()
//	err = d.Set("name", "value")
//
// Python exceptions are returned as *Error carrying the exception type,
// message and traceback, and match ErrImport, ErrAttribute or ErrRuntime
// with errors.Is:
//
//	_, err := opython.Call("os", "does_not_exist")
//	errors.Is(err, opython.ErrAttribute) // true
//
// CPython is initialized on a dedicated OS thread which holds the GIL for the
// whole life of the interpreter. Every call is executed on that thread, so
// the package can be used from any goroutine. Objects dropped by Go are
// released on that thread as well. Objects kept across Stop become stale and
// return ErrStale.
//
// Extensions registered with Extension prepare every freshly started
// interpreter, e.g. by defining modules from Python source:
//
//	func init() {
//		opython.Extension("greet", func(s *opython.Setup) error {
//			return s.Source("greet", "def hello(name):\n    return 'Hello ' + name\n")
//		})
//	}
package opython
