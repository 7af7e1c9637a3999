package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single chunk execution.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps gopher-lua with sandboxing and named chunk execution.
//
// gopher-lua's LState is not goroutine-safe. The mutex protects against
// concurrent access from Go code, but a State is meant to be driven by one
// script run at a time.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration

	sandbox *Sandbox

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the execution timeout for each chunk.
// Zero disables the timeout.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d >= 0 {
			s.executionTimeout = d
		}
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
	}

	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})
	state.L = L

	openSafeLibraries(L)

	state.sandbox = NewSandbox(L)
	state.sandbox.Install()

	return state, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package.
}

// DoString executes a Lua string under the chunk name "<string>".
func (s *State) DoString(code string) error {
	return s.DoChunk(context.Background(), "<string>", strings.NewReader(code))
}

// DoFile reads the script at path and executes it under the chunk name.
// If name is empty the path is used.
func (s *State) DoFile(ctx context.Context, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrScriptNotFound, path)
		}
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	if name == "" {
		name = path
	}
	return s.DoChunk(ctx, name, f)
}

// DoChunk compiles r under the given chunk name and runs it.
// Execution is synchronous. Compile and runtime failures are returned as
// *ScriptError. If the execution timeout or ctx expires first, the error
// also matches ErrExecutionTimeout or the context error.
func (s *State) DoChunk(ctx context.Context, name string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	fn, err := s.L.Load(r, name)
	if err != nil {
		return &ScriptError{Name: name, Err: err}
	}

	return s.execute(ctx, name, func() error {
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
}

// Call runs fn under the same execution timeout as a chunk. Use it for Go
// code that may call back into script-defined functions, such as
// metamethods. Errors are reported as *ScriptError under name.
func (s *State) Call(ctx context.Context, name string, fn func(L *lua.LState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	return s.execute(ctx, name, func() error {
		return fn(s.L)
	})
}

// execute runs fn with the context installed on the LState. Protected
// calls inside fn may swallow the cancellation, so an expired context fails
// the execution even when fn returns nil.
func (s *State) execute(ctx context.Context, name string, fn func() error) error {
	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := s.doWithRecovery(fn)
	ctxErr := ctx.Err()
	if err == nil && ctxErr == nil {
		return nil
	}

	if ctxErr != nil {
		if err == nil {
			err = ctxErr
		}
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			ctxErr = ErrExecutionTimeout
		}
		return &ScriptError{Name: name, Err: fmt.Errorf("%w: %v", ctxErr, err)}
	}
	return &ScriptError{Name: name, Err: err}
}

// doWithRecovery executes a function with panic recovery.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}

	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.L.SetGlobal(name, value)
}

// RegisterFunc registers a Go function as a global Lua function.
func (s *State) RegisterFunc(name string, fn lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.L.SetGlobal(name, s.L.NewFunction(fn))
}

// LuaState returns the underlying gopher-lua state.
//
// Direct access bypasses the mutex. Callers must not use it concurrently
// with other State methods.
func (s *State) LuaState() *lua.LState {
	return s.L
}

// Sandbox returns the sandbox installed in this state.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases all resources associated with the Lua state.
// After Close is called, all other methods will return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.L.Close()
	s.closed = true
	return nil
}
