package opython

// #include "go-py.h"
import "C"
import "runtime/cgo"

// pyCapsule wraps Go value in a capsule. The handle is deleted when Python
// destroys the capsule.
func pyCapsule(v interface{}) *C.PyObject {
	h := cgo.NewHandle(v)
	c := C._go_capsule_new(C.uintptr_t(h))
	if c == nil {
		h.Delete()
	}
	return c
}

// goCapsule returns Go value held by a capsule created by pyCapsule
func goCapsule(o *C.PyObject) (interface{}, bool) {
	var h C.uintptr_t
	if C._go_capsule_handle(o, &h) == 0 {
		return nil, false
	}
	return cgo.Handle(h).Value(), true
}

//export goCapsuleRelease
func goCapsuleRelease(h C.uintptr_t) {
	cgo.Handle(h).Delete()
}
