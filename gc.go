package opython

// #include "go-py.h"
import "C"

// Collect runs a full Python garbage collection after releasing references
// dropped by Go, and returns the number of unreachable objects found.
func (i *Interpreter) Collect() (n int, err error) {
	err = i.do(func() error {
		r := C.PyGC_Collect()
		if r < 0 {
			return i.pyError("gc.collect")
		}
		n = int(r)
		return nil
	})
	return n, err
}

// Outstanding returns number of Python references currently held from Go
func (i *Interpreter) Outstanding() int {
	i.hmu.Lock()
	defer i.hmu.Unlock()
	return len(i.handles)
}
