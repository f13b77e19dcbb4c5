package opython

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Runtime is the embedded interpreter as seen by Interpreter. Initialize and
// Finalize switch it on and off, Do runs fn where the C API may be used and
// Release queues one reference for release before the next Do. Do called
// from within Do runs fn inline, Owns reports that case.
type Runtime interface {
	Initialize(cfg *Config) error
	Finalize() error
	Do(fn func() error) error
	Owns() bool
	Release(p unsafe.Pointer)
}

// Interpreter arbitrates the lifecycle of the embedded interpreter and owns
// every object crossing into Go while it runs.
//
// Start and Stop pin and unpin the interpreter. EnsureStarted and
// StopIfStarted bracket a single use; the interpreter started by a bracket is
// finalized when the last outstanding bracket is released, unless pinned.
type Interpreter struct {
	rt   Runtime
	cfg  *Config
	core bool // extensions are loaded on Require only

	mu       sync.Mutex
	running  bool
	pinned   bool
	stopping bool
	depth    int
	gen      atomic.Uint64
	loaded   map[string]struct{}
	startup  *startup

	hmu     sync.Mutex
	handles map[uint64]*handleRef
	nextID  uint64

	// touched on the runtime thread only
	modules map[string]*handleRef
}

// Token is the started-here marker returned by EnsureStarted
type Token struct {
	started bool
	gen     uint64
	done    atomic.Bool
}

// startup is closed once a fresh interpreter is prepared
type startup struct {
	done chan struct{}
	err  error
}

// StartedHere reports if the acquisition initialized the interpreter
func (t *Token) StartedHere() bool { return t != nil && t.started }

func newInterpreter(rt Runtime, cfg *Config, core bool) *Interpreter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Interpreter{
		rt:      rt,
		cfg:     cfg,
		core:    core,
		handles: make(map[uint64]*handleRef),
		modules: make(map[string]*handleRef),
	}
}

// Config returns interpreter configuration
func (i *Interpreter) Config() *Config { return i.cfg }

// Running reports if the interpreter is initialized
func (i *Interpreter) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running
}

// Depth returns number of outstanding EnsureStarted acquisitions
func (i *Interpreter) Depth() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.depth
}

// Generation is incremented on every fresh start. Objects created in
// earlier generations are stale.
func (i *Interpreter) Generation() uint64 { return i.gen.Load() }

// Start initializes the interpreter and pins it until Stop. It returns false
// if the interpreter was already running.
func (i *Interpreter) Start() bool {
	tok, err := i.EnsureStarted()
	if err != nil {
		logger().Error("python interpreter start failed", "error", err)
		return false
	}

	i.mu.Lock()
	i.pinned = true
	i.stopping = false
	i.mu.Unlock()

	if err := i.StopIfStarted(tok); err != nil {
		logger().Warn("python interpreter finalized with error", "error", err)
	}
	return tok.StartedHere()
}

// Stop finalizes the interpreter. While EnsureStarted acquisitions are
// outstanding the interpreter is only unpinned and the last release
// finalizes it. Stop returns false if the interpreter was not running or a
// stop is already pending.
func (i *Interpreter) Stop() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.running || i.stopping {
		return false
	}

	i.pinned = false
	if i.depth > 0 {
		i.stopping = true
		logger().Debug("python interpreter stop deferred", "depth", i.depth)
		return true
	}

	if err := i.finalizeLocked(); err != nil {
		logger().Warn("python interpreter finalized with error", "error", err)
	}
	return true
}

// EnsureStarted guarantees the interpreter runs until the returned token is
// passed to StopIfStarted. A fresh interpreter is prepared before
// EnsureStarted returns, other callers wait for the preparation unless they
// are called from it.
func (i *Interpreter) EnsureStarted() (*Token, error) {
	tok, st, err := i.acquire()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.started:
		if err := i.rt.Do(i.prepare); err != nil {
			st.err = err
			i.abort(tok)
			close(st.done)
			tok.done.Store(true)
			return nil, fmt.Errorf("%w: %v", ErrStartFailed, err)
		}
		close(st.done)
	case !i.rt.Owns():
		<-st.done
		if st.err != nil {
			tok.done.Store(true)
			return nil, fmt.Errorf("%w: %v", ErrStartFailed, st.err)
		}
	}
	return tok, nil
}

// acquire flips the interpreter to running if needed and counts the
// acquisition. The lock is not held while the interpreter is prepared.
func (i *Interpreter) acquire() (*Token, *startup, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	started := false
	if !i.running {
		if err := i.rt.Initialize(i.cfg); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrStartFailed, err)
		}

		i.running = true
		i.stopping = false
		i.loaded = make(map[string]struct{})
		i.startup = &startup{done: make(chan struct{})}
		started = true

		logger().Info("python interpreter started", "generation", i.gen.Add(1))
	}

	i.depth++
	return &Token{started: started, gen: i.gen.Load()}, i.startup, nil
}

// abort finalizes an interpreter whose preparation failed
func (i *Interpreter) abort(t *Token) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.running || t.gen != i.gen.Load() {
		return
	}
	if err := i.finalizeLocked(); err != nil {
		logger().Warn("python interpreter finalized with error", "error", err)
	}
}

// StopIfStarted releases an acquisition made by EnsureStarted. Releasing the
// same token twice is a no-op.
func (i *Interpreter) StopIfStarted(t *Token) error {
	if t == nil || !t.done.CompareAndSwap(false, true) {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.running || t.gen != i.gen.Load() {
		return nil
	}

	if i.depth > 0 {
		i.depth--
	}

	if i.depth == 0 && !i.pinned {
		return i.finalizeLocked()
	}
	return nil
}

func (i *Interpreter) finalizeLocked() error {
	err := i.rt.Do(i.releaseAll)
	if ferr := i.rt.Finalize(); ferr != nil && err == nil {
		err = ferr
	}

	i.running = false
	i.pinned = false
	i.stopping = false
	i.depth = 0

	logger().Info("python interpreter stopped", "generation", i.gen.Load())
	return err
}

// prepare applies configuration and extensions to a fresh interpreter. It
// runs on the runtime thread, so Setup and Interpreter calls made by
// extensions run inline.
func (i *Interpreter) prepare() error {
	s := &Setup{i}

	for _, dir := range i.cfg.Path {
		if err := s.AppendPath(dir); err != nil {
			return err
		}
	}

	for _, name := range i.cfg.Preload {
		if err := s.Import(name); err != nil {
			return err
		}
	}

	if i.core {
		return nil
	}

	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := extensions[name](s); err != nil {
			return fmt.Errorf("extension %v: %w", name, err)
		}

		i.mu.Lock()
		i.loaded[name] = struct{}{}
		i.mu.Unlock()
	}
	return nil
}

// do runs fn on the runtime while holding an acquisition
func (i *Interpreter) do(fn func() error) error {
	tok, err := i.EnsureStarted()
	if err != nil {
		return err
	}

	defer func() {
		if err := i.StopIfStarted(tok); err != nil {
			logger().Warn("python interpreter finalized with error", "error", err)
		}
	}()

	return i.rt.Do(fn)
}
