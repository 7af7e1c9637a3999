package lua

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// Bridge converts Lua values into Go values.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a new Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// ToGoValue converts a Lua value to a Go value.
//
// Tables with a __tostring metamethod (such as keys) become their string
// form. NaN and infinities become strings so the result always encodes as
// JSON. Functions, userdata and other reference values become a descriptive
// string like "function: 0x..." since they cannot be represented as data.
func (b *Bridge) ToGoValue(lv lua.LValue) any {
	return b.toGoValueWithVisited(lv, make(map[*lua.LTable]bool))
}

// toGoValueWithVisited converts a Lua value to a Go value, tracking visited tables.
func (b *Bridge) toGoValueWithVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	if lv == nil {
		return nil
	}

	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return lv.String()
		}
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if s, ok := b.stringer(v); ok {
			return s
		}
		if visited[v] {
			return nil // Break circular reference
		}
		visited[v] = true
		defer delete(visited, v)
		return b.tableToGoWithVisited(v, visited)
	case *lua.LNilType:
		return nil
	default:
		return lv.String()
	}
}

// stringer returns the result of the table's __tostring metamethod.
func (b *Bridge) stringer(t *lua.LTable) (string, bool) {
	if b.L == nil {
		return "", false
	}
	mt, ok := t.Metatable.(*lua.LTable)
	if !ok {
		return "", false
	}
	fn, ok := mt.RawGetString("__tostring").(*lua.LFunction)
	if !ok {
		return "", false
	}

	if err := b.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, t); err != nil {
		return "", false
	}
	ret := b.L.Get(-1)
	b.L.Pop(1)
	s, ok := ret.(lua.LString)
	return string(s), ok
}

// tableToGoWithVisited converts a Lua table to a slice when it is a
// contiguous array starting at 1, and to a map otherwise.
func (b *Bridge) tableToGoWithVisited(t *lua.LTable, visited map[*lua.LTable]bool) any {
	isArray := true
	maxN := 0
	count := 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		if kn, ok := k.(lua.LNumber); ok {
			n := int(kn)
			if float64(n) == float64(kn) && n > 0 {
				if n > maxN {
					maxN = n
				}
				return
			}
		}
		isArray = false
	})

	if isArray && maxN > 0 && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = b.toGoValueWithVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = b.toGoValueWithVisited(v, visited)
	})
	return m
}
