package opython

// #cgo pkg-config: python3-embed
// #include "go-py.h"
import "C"
import (
	"errors"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// CPython supports a single interpreter per process
var pyClaimed atomic.Bool

type pyCall struct {
	fn     func() error
	result chan error
}

// pyRuntime runs CPython on one locked OS thread. The thread holds the GIL
// from Py_InitializeEx until Py_FinalizeEx, so every C API call is funnelled
// through Do.
type pyRuntime struct {
	calls    chan *pyCall
	stopChan chan chan error
	done     chan struct{}

	mu      sync.Mutex
	alive   bool
	pending []*C.PyObject
	tid     int
}

func newPyRuntime() *pyRuntime {
	return &pyRuntime{}
}

// Initialize starts the runtime thread and the interpreter on it
func (r *pyRuntime) Initialize(cfg *Config) error {
	if !pyClaimed.CompareAndSwap(false, true) {
		return errors.New("python interpreter is already owned by another Interpreter")
	}

	if cfg != nil && cfg.Home != "" {
		if err := os.Setenv("PYTHONHOME", cfg.Home); err != nil {
			pyClaimed.Store(false)
			return err
		}
	}

	r.calls = make(chan *pyCall)
	r.stopChan = make(chan chan error)
	r.done = make(chan struct{})

	init := make(chan error)
	go r.runThread(cfg != nil && cfg.Signals, init)

	if err := <-init; err != nil {
		pyClaimed.Store(false)
		return err
	}
	return nil
}

func (r *pyRuntime) runThread(signals bool, init chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(r.done)

	initsigs := C.int(0)
	if signals {
		initsigs = 1
	}

	C.Py_InitializeEx(initsigs)
	if C.Py_IsInitialized() == 0 {
		init <- errors.New("Py_InitializeEx failed")
		return
	}

	r.mu.Lock()
	r.alive = true
	r.tid = threadID()
	r.mu.Unlock()

	logger().Debug("python runtime thread ready", "tid", r.tid)
	init <- nil

	for {
		select {
		case c := <-r.calls:
			r.drain()
			c.result <- r.protect(c.fn)
		case result := <-r.stopChan:
			r.mu.Lock()
			r.alive = false
			r.mu.Unlock()
			r.drain()

			var err error
			if C.Py_FinalizeEx() < 0 {
				err = errors.New("Py_FinalizeEx failed to flush buffered data")
			}
			result <- err
			return
		}
	}
}

func (r *pyRuntime) protect(fn func() error) (err error) {
	defer errorHandler(&err)
	return fn()
}

// Do runs fn on the runtime thread and waits for it. Called on the runtime
// thread it runs fn inline.
func (r *pyRuntime) Do(fn func() error) error {
	if r.Owns() {
		return r.protect(fn)
	}

	if r.done == nil {
		return ErrNotRunning
	}

	c := &pyCall{fn: fn, result: make(chan error, 1)}
	select {
	case r.calls <- c:
		return <-c.result
	case <-r.done:
		return ErrNotRunning
	}
}

// Owns reports if the caller runs on the runtime thread. The thread is
// locked to the runtime goroutine, so no other goroutine can observe its id.
func (r *pyRuntime) Owns() bool {
	r.mu.Lock()
	alive, tid := r.alive, r.tid
	r.mu.Unlock()

	return alive && threadID() == tid
}

// Release queues one reference for release on the runtime thread
func (r *pyRuntime) Release(p unsafe.Pointer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.alive {
		r.pending = append(r.pending, (*C.PyObject)(p))
	}
}

func (r *pyRuntime) drain() {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, p := range pending {
		C._py_decref(p)
	}
}

// Finalize finalizes the interpreter and ends the runtime thread
func (r *pyRuntime) Finalize() error {
	if r.done == nil {
		return ErrNotRunning
	}

	result := make(chan error, 1)
	select {
	case r.stopChan <- result:
	case <-r.done:
		return ErrNotRunning
	}

	err := <-result
	<-r.done

	pyClaimed.Store(false)
	return err
}
