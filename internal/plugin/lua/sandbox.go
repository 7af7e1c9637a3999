package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// dangerousFuncs are removed from the globals by Install.
var dangerousFuncs = []string{
	"dofile",     // Load and execute file
	"loadfile",   // Load file as function
	"load",       // Load string as function
	"loadstring", // Load string as function (deprecated but may exist)
}

// safeModules can be requested with require.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	installed bool
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{L: L}
}

// Install sets up the sandbox restrictions.
// Calling Install more than once has no further effect.
func (s *Sandbox) Install() {
	if s.installed {
		return
	}

	for _, name := range dangerousFuncs {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installSafeRequire()
	s.installed = true
}

// Installed returns true once Install has run.
func (s *Sandbox) Installed() bool {
	return s.installed
}

// installSafeRequire replaces require with a version that only returns the
// already opened built-in modules. Nothing is ever loaded from disk.
func (s *Sandbox) installSafeRequire() {
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)

		if safeModules[modName] {
			L.Push(L.GetGlobal(modName))
			return 1
		}

		// L.RaiseError does a longjmp, so code after it is unreachable.
		L.RaiseError("module %q is not available", modName)
		return 0
	}))
}
