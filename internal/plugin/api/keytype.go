package api

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
)

// DescriptorName is the global the prelude stores the Key descriptor in.
const DescriptorName = "Key"

// PreludeName is the chunk name used when running the prelude.
const PreludeName = "prelude"

// Prelude defines the Key descriptor. It must leave a global Key table whose
// __index is the table itself.
const Prelude = `
Key = {}
Key.__index = Key

function Key.__tostring(self)
	return "<key:" .. tostring(rawget(self, "keyid")) .. ">"
end

function Key.__eq(a, b)
	return rawget(a, "keyid") == rawget(b, "keyid")
end
`

// KeyType is the host-side handle on the Key descriptor of one Lua state.
type KeyType struct {
	descriptor *lua.LTable
}

// InstallKeyType runs the prelude in L and captures the descriptor it defines.
// Any failure is a *StartupError.
func InstallKeyType(L *lua.LState) (*KeyType, error) {
	fn, err := L.Load(strings.NewReader(Prelude), PreludeName)
	if err != nil {
		return nil, &StartupError{Stage: "prelude", Err: err}
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		return nil, &StartupError{Stage: "prelude", Err: err}
	}

	desc, ok := L.GetGlobal(DescriptorName).(*lua.LTable)
	if !ok {
		return nil, &StartupError{
			Stage: "descriptor",
			Err:   fmt.Errorf("%w: global %s is not a table", ErrMalformedDescriptor, DescriptorName),
		}
	}

	kt := &KeyType{descriptor: desc}
	if err := kt.Validate(); err != nil {
		return nil, &StartupError{Stage: "descriptor", Err: err}
	}
	return kt, nil
}

// Descriptor returns the captured descriptor table.
func (kt *KeyType) Descriptor() *lua.LTable {
	return kt.descriptor
}

// Validate checks that the descriptor still indexes itself.
func (kt *KeyType) Validate() error {
	if kt == nil || kt.descriptor == nil {
		return ErrMalformedDescriptor
	}
	if idx, ok := kt.descriptor.RawGetString("__index").(*lua.LTable); !ok || idx != kt.descriptor {
		return fmt.Errorf("%w: %s.__index is not %s", ErrMalformedDescriptor, DescriptorName, DescriptorName)
	}
	return nil
}

// New creates a Lua Key value for k.
func (kt *KeyType) New(L *lua.LState, k key.Key) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("keyid", lua.LString(k.ID))
	L.SetMetatable(tbl, kt.descriptor)
	return tbl
}

// CreateKeyGlobal publishes a new Key with the given id as global name.
// Calling it again for the same name replaces the global with a fresh Key
// that passes IsKey just the same.
func (kt *KeyType) CreateKeyGlobal(L *lua.LState, name, id string) error {
	if err := key.ValidateName(name); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w for %q", key.ErrEmptyID, name)
	}
	L.SetGlobal(name, kt.New(L, key.New(id)))
	return nil
}

// InstallKeys publishes every constant of t in table order.
func (kt *KeyType) InstallKeys(L *lua.LState, t *key.Table) error {
	for _, c := range t.Constants() {
		if err := kt.CreateKeyGlobal(L, c.Name, c.Key.ID); err != nil {
			return &StartupError{Stage: "keys", Err: err}
		}
	}
	return nil
}

// IsKey reports whether v is a table whose metatable is the descriptor,
// by identity, and the descriptor still indexes itself.
func (kt *KeyType) IsKey(v lua.LValue) bool {
	if kt.Validate() != nil {
		return false
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return false
	}
	mt, ok := tbl.Metatable.(*lua.LTable)
	return ok && mt == kt.descriptor
}

// ParseKey converts v to a key.
// It returns ok=false with no error when v is not a Key at all, and an error
// when the descriptor is broken (ErrMalformedDescriptor) or v is a Key with
// no usable keyid (ErrMalformedKey). A numeric keyid is converted to its
// string form.
func (kt *KeyType) ParseKey(v lua.LValue) (k key.Key, ok bool, err error) {
	if err := kt.Validate(); err != nil {
		return key.Key{}, false, err
	}
	if !kt.IsKey(v) {
		return key.Key{}, false, nil
	}

	// Numbers coerce to strings, as they do for Lua string operations.
	id := lua.LVAsString(v.(*lua.LTable).RawGetString("keyid"))
	if id == "" {
		return key.Key{}, false, ErrMalformedKey
	}
	return key.New(id), true, nil
}

// ParseKeyList converts a list of Keys, iterating entries in table order.
// arg and param identify the argument in errors. The first element that is
// not a Key fails the whole list with a *TypeError.
func (kt *KeyType) ParseKeyList(arg int, param string, v lua.LValue) ([]key.Key, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, &TypeError{
			Func:   "bind",
			Arg:    arg,
			Param:  param,
			Reason: fmt.Sprintf("list of Key expected, got %s", v.Type()),
			Err:    ErrNotAKey,
		}
	}

	keys := make([]key.Key, 0, tbl.Len())
	for idx, val := tbl.Next(lua.LNil); idx != lua.LNil; idx, val = tbl.Next(idx) {
		k, ok, err := kt.ParseKey(val)
		if err != nil {
			if errors.Is(err, ErrMalformedKey) {
				return nil, &TypeError{
					Func:   "bind",
					Arg:    arg,
					Param:  param,
					Index:  indexString(idx),
					Reason: "is a Key without a string keyid",
					Err:    ErrMalformedKey,
				}
			}
			return nil, err
		}
		if !ok {
			return nil, &TypeError{
				Func:   "bind",
				Arg:    arg,
				Param:  param,
				Index:  indexString(idx),
				Reason: fmt.Sprintf("is not a Key (got %s)", describe(val)),
				Err:    ErrNotAKey,
			}
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// ParseKeyArg classifies v as a single Key or, failing that, a list of Keys.
// A single Key is never iterated as a list.
func (kt *KeyType) ParseKeyArg(arg int, param string, v lua.LValue) (keymap.KeyArg, error) {
	k, ok, err := kt.ParseKey(v)
	if err != nil {
		if errors.Is(err, ErrMalformedKey) {
			return nil, &TypeError{
				Func:   "bind",
				Arg:    arg,
				Param:  param,
				Reason: "Key without a string keyid",
				Err:    ErrMalformedKey,
			}
		}
		return nil, err
	}
	if ok {
		return keymap.One(k), nil
	}

	if _, isTable := v.(*lua.LTable); !isTable {
		return nil, &TypeError{
			Func:   "bind",
			Arg:    arg,
			Param:  param,
			Reason: fmt.Sprintf("Key or list of Key expected, got %s", v.Type()),
			Err:    ErrNotAKey,
		}
	}

	keys, err := kt.ParseKeyList(arg, param, v)
	if err != nil {
		return nil, err
	}
	return keymap.Many(keys), nil
}

// indexString formats a table index for error messages.
func indexString(idx lua.LValue) string {
	if s, ok := idx.(lua.LString); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return idx.String()
}

// describe names the type of v, noting tables that look like forged keys.
func describe(v lua.LValue) string {
	if tbl, ok := v.(*lua.LTable); ok && tbl.RawGetString("keyid") != lua.LNil {
		return "table with keyid but no Key descriptor"
	}
	return v.Type().String()
}
