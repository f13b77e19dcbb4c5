package opython

// #include "go-py.h"
import "C"
import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// handleRef is one strong Python reference. It is kept apart from handle so
// the cleanup registered on handle can release it.
type handleRef struct {
	p        *C.PyObject
	id       uint64
	gen      uint64
	released atomic.Bool
	stale    atomic.Bool
}

// handle owns exactly one Python reference for its lifetime
type handle struct {
	ref    *handleRef
	interp *Interpreter
}

// newHandle takes over new reference p. Runtime thread only.
func (i *Interpreter) newHandle(p *C.PyObject) *handle {
	i.hmu.Lock()
	i.nextID++
	ref := &handleRef{p: p, id: i.nextID, gen: i.gen.Load()}
	i.handles[ref.id] = ref
	i.hmu.Unlock()

	h := &handle{ref, i}
	runtime.AddCleanup(h, i.release, ref)
	return h
}

// borrowHandle increments borrowed reference p and takes it over
func (i *Interpreter) borrowHandle(p *C.PyObject) *handle {
	C._py_incref(p)
	return i.newHandle(p)
}

// release gives the reference back to Python exactly once
func (i *Interpreter) release(ref *handleRef) {
	i.hmu.Lock()
	delete(i.handles, ref.id)
	i.hmu.Unlock()

	if !ref.released.CompareAndSwap(false, true) {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.running && ref.gen == i.gen.Load() {
		i.rt.Release(unsafe.Pointer(ref.p))
		return
	}
	logger().Debug("dropping reference of finalized interpreter", "generation", ref.gen)
}

// releaseAll releases every outstanding reference before finalization.
// Runtime thread only.
func (i *Interpreter) releaseAll() error {
	i.hmu.Lock()
	refs := i.handles
	i.handles = make(map[uint64]*handleRef)
	i.hmu.Unlock()

	count := 0
	for _, ref := range refs {
		ref.stale.Store(true)
		if ref.released.CompareAndSwap(false, true) {
			C._py_decref(ref.p)
			count++
		}
	}

	for name, ref := range i.modules {
		if ref.released.CompareAndSwap(false, true) {
			C._py_decref(ref.p)
		}
		delete(i.modules, name)
	}

	if count > 0 {
		logger().Debug("released outstanding python references", "count", count)
	}
	return nil
}

func (h *handle) ptr() (*C.PyObject, error) {
	if h == nil || h.ref == nil {
		return nil, ErrClosed
	}

	switch {
	case h.ref.stale.Load():
		return nil, ErrStale
	case h.ref.released.Load():
		return nil, ErrClosed
	case h.ref.gen != h.interp.gen.Load():
		return nil, ErrStale
	}
	return h.ref.p, nil
}

// do runs fn with the object pointer on the runtime thread
func (h *handle) do(fn func(p *C.PyObject) error) error {
	if _, err := h.ptr(); err != nil {
		return err
	}

	return h.interp.do(func() error {
		p, err := h.ptr()
		if err != nil {
			return err
		}

		err = fn(p)
		runtime.KeepAlive(h)
		return err
	})
}

func (h *handle) close() {
	if h != nil && h.ref != nil {
		h.interp.release(h.ref)
	}
}

func decref(p *C.PyObject) {
	C._py_xdecref(p)
}
