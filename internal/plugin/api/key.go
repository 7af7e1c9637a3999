package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/internal/input/key"
)

// KeyModule runs the prelude and publishes the key constants.
type KeyModule struct {
	table   *key.Table
	keyType *KeyType
}

// NewKeyModule creates a key module publishing the constants of t.
// A nil table publishes the defaults.
func NewKeyModule(t *key.Table) *KeyModule {
	if t == nil {
		t = key.DefaultTable()
	}
	return &KeyModule{table: t}
}

// Name returns the module name.
func (m *KeyModule) Name() string {
	return "key"
}

// Register runs the prelude and creates one global per key constant.
func (m *KeyModule) Register(L *lua.LState) error {
	kt, err := InstallKeyType(L)
	if err != nil {
		return err
	}
	if err := kt.InstallKeys(L, m.table); err != nil {
		return err
	}
	m.keyType = kt
	return nil
}

// KeyType returns the installed Key type, or nil before Register.
func (m *KeyModule) KeyType() *KeyType {
	return m.keyType
}
