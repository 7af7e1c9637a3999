package api

import (
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
)

// BindModule installs the global bind function.
type BindModule struct {
	keys     *KeyModule
	registry *keymap.Registry
	logger   zerolog.Logger
}

// NewBindModule creates a bind module that appends to registry.
// keys must be registered before this module.
func NewBindModule(keys *KeyModule, registry *keymap.Registry, logger zerolog.Logger) *BindModule {
	return &BindModule{
		keys:     keys,
		registry: registry,
		logger:   logger,
	}
}

// Name returns the module name.
func (m *BindModule) Name() string {
	return "bind"
}

// Register installs bind as a global function.
func (m *BindModule) Register(L *lua.LState) error {
	if m.keys == nil || m.keys.KeyType() == nil {
		return ErrKeyTypeMissing
	}
	L.SetGlobal("bind", L.NewFunction(m.bind))
	return nil
}

// bind(modifiers, keys, command) -> nil
// Raises an error if modifiers or keys are malformed; nothing is recorded then.
func (m *BindModule) bind(L *lua.LState) int {
	if _, err := m.Bind(L.Get(1), L.Get(2), L.Get(3)); err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	return 0
}

// Bind parses the arguments of one bind call and appends the resulting
// bindings to the registry. Parsing completes before anything is appended,
// so a failed call records nothing. It returns the appended bindings.
func (m *BindModule) Bind(modifiers, keys, command lua.LValue) ([]keymap.Binding, error) {
	kt := m.keys.KeyType()
	if kt == nil {
		return nil, ErrKeyTypeMissing
	}
	if command == nil {
		command = lua.LNil
	}

	mods, err := kt.ParseKeyList(1, "modifiers", modifiers)
	if err != nil {
		return nil, err
	}

	arg, err := kt.ParseKeyArg(2, "keys", keys)
	if err != nil {
		return nil, err
	}

	bindings := keymap.Expand(mods, arg, command)
	m.registry.Push(bindings...)

	for _, b := range bindings {
		m.logger.Debug().
			Strs("modifiers", keyIDs(b.Modifiers())).
			Str("key", b.Key().ID).
			Str("command", command.Type().String()).
			Msg("bind")
	}

	return bindings, nil
}

func keyIDs(keys []key.Key) []string {
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.ID
	}
	return ids
}
