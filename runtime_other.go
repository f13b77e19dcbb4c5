//go:build !linux
// +build !linux

package opython

// #include "go-py.h"
import "C"

func threadID() int { return int(C._thread_self()) }
