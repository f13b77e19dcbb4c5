package opython

// #include "go-py.h"
import "C"
import "strings"

// Version returns the version string of the embedded Python,
// e.g. "3.12.3 (main, ...) [GCC 13.2.0]"
func (i *Interpreter) Version() (v string, err error) {
	err = i.do(func() error {
		v = C.GoString(C.Py_GetVersion())
		return nil
	})
	return v, err
}

// PythonRelease returns major, minor and micro version Python was built
// against
func PythonRelease() (int, int, int) {
	return int(C.PY_MAJOR_VERSION), int(C.PY_MINOR_VERSION), int(C.PY_MICRO_VERSION)
}

// ShortVersion returns "major.minor.micro" part of Version
func (i *Interpreter) ShortVersion() (string, error) {
	v, err := i.Version()
	if err != nil {
		return "", err
	}
	if n := strings.IndexByte(v, ' '); n >= 0 {
		v = v[:n]
	}
	return v, nil
}
