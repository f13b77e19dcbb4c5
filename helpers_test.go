package opython

import (
	"errors"
	"os"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"unsafe"
)

// Expect is simple testing function which raises error if condition is not met
func Expect(t *testing.T, condition bool, eformat string, args ...interface{}) {
	t.Helper()
	if !condition {
		t.Errorf(eformat, args...)
	}
}

// ExpectEql expects both arguments to be equal
// Internaly it uses reflection.DeepEqual to perform test
func ExpectEql(t *testing.T, v1, v2 interface{}) {
	t.Helper()
	Expect(t, reflect.DeepEqual(v1, v2), "Expected '%v' to equal '%v'", v1, v2)
}

// ExpectNilError should be used to check returned Go error.
// Test fails if there is error.
func ExpectNilError(t *testing.T, i error) {
	t.Helper()
	Expect(t, i == nil, "Error: %v", i)
}

// ExpectErr should be used to chach if Go error is raised.
// Test fails if there is no error.
func ExpectErr(t *testing.T, i error, eformat string, args ...interface{}) {
	t.Helper()
	Expect(t, i != nil, eformat, args...)
}

// fakeRuntime stands in for CPython in lifecycle tests
type fakeRuntime struct {
	mu          sync.Mutex
	running     bool
	initialized int
	finalized   int
	calls       atomic.Int64
	nested      atomic.Int32
	released    []unsafe.Pointer
	failInit    error
}

func (r *fakeRuntime) Initialize(cfg *Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failInit != nil {
		return r.failInit
	}
	if r.running {
		return errors.New("already initialized")
	}
	r.running = true
	r.initialized++
	return nil
}

func (r *fakeRuntime) Finalize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return ErrNotRunning
	}
	r.running = false
	r.finalized++
	return nil
}

func (r *fakeRuntime) Do(fn func() error) error {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()

	if !running {
		return ErrNotRunning
	}
	r.calls.Add(1)
	r.nested.Add(1)
	defer r.nested.Add(-1)
	return fn()
}

func (r *fakeRuntime) Owns() bool { return r.nested.Load() > 0 }

func (r *fakeRuntime) Release(p unsafe.Pointer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, p)
}

func (r *fakeRuntime) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized, r.finalized
}

// newFake returns core interpreter on fake runtime, extensions are not run
func newFake() (*Interpreter, *fakeRuntime) {
	rt := &fakeRuntime{}
	return newInterpreter(rt, nil, true), rt
}

const fixturesSource = `
class Greeter:
    created = 0

    def __init__(self, name):
        self.name = name
        Greeter.created += 1

    def greet(self, greeting="Hello"):
        return greeting + " " + self.name

    @classmethod
    def create(cls, name):
        return cls(name)


class Boom:
    def __init__(self):
        raise ValueError("no construction")


def identity(x):
    return x


def divide(a, b):
    return a / b


def cyclic():
    l = []
    l.append(l)
    return l


def kw(a, b=2, **rest):
    return [a, b, sorted(rest)]


def type_name(x):
    return type(x).__name__


answer = 42
`

// setupCount counts fresh starts seen by the go-only extension
var setupCount atomic.Int64

// reentrantLen is what the reentrant extension got back from the interpreter
// it was preparing
var reentrantLen atomic.Int64

func init() {
	Extension("fixtures", func(s *Setup) error {
		return s.Source("fixtures", fixturesSource)
	})

	Extension("counter", func(s *Setup) error {
		setupCount.Add(1)
		return nil
	})

	Extension("reentrant", func(s *Setup) error {
		n, err := s.Interpreter().CallWithModule("builtins", "len", "abc")
		if err != nil {
			return err
		}
		if v, ok := n.(int); ok {
			reentrantLen.Store(int64(v))
		}
		return nil
	})
}

func TestMain(m *testing.M) {
	Start()
	code := m.Run()
	Stop()
	os.Exit(code)
}
