package api

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Module represents a Lua API module injected into a script's state.
type Module interface {
	// Name returns the module name (e.g., "key", "bind").
	Name() string

	// Register installs the module into the Lua state.
	Register(L *lua.LState) error
}

// Registry holds modules and injects them in registration order.
// Order matters: bind needs the Key type installed by the key module.
type Registry struct {
	modules []Module
	names   map[string]bool
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]bool),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	if r.names[mod.Name()] {
		return fmt.Errorf("module %q already registered", mod.Name())
	}

	r.names[mod.Name()] = true
	r.modules = append(r.modules, mod)
	return nil
}

// List returns all registered module names in injection order.
func (r *Registry) List() []string {
	names := make([]string, len(r.modules))
	for i, mod := range r.modules {
		names[i] = mod.Name()
	}
	return names
}

// InjectAll registers all modules into the Lua state in order.
func (r *Registry) InjectAll(L *lua.LState) error {
	for _, mod := range r.modules {
		if err := mod.Register(L); err != nil {
			return fmt.Errorf("failed to register module %q: %w", mod.Name(), err)
		}
	}
	return nil
}
