package opython

import "golang.org/x/sys/unix"

// threadID identifies the OS thread; the runtime thread id is compared to
// it to detect calls made from inside the interpreter
func threadID() int { return unix.Gettid() }
