package keymap

import (
	"testing"

	"github.com/dshills/keybind/internal/input/key"
)

var (
	super = key.New("super")
	keyA  = key.New("a")
	keyH  = key.New("h")
)

func TestNewBindingCopiesModifiers(t *testing.T) {
	mods := []key.Key{super}
	b := NewBinding(mods, keyA, "cmd")

	mods[0] = keyH
	if got := b.Modifiers(); !key.EqualSlices(got, []key.Key{super}) {
		t.Errorf("Modifiers() = %v, want [<key:super>]", got)
	}

	got := b.Modifiers()
	got[0] = keyH
	if b.Modifiers()[0] != super {
		t.Error("mutating Modifiers() result changed the binding")
	}
}

func TestBindingAccessors(t *testing.T) {
	b := NewBinding([]key.Key{super, super}, keyA, 42)

	if len(b.Modifiers()) != 2 {
		t.Errorf("Modifiers() len = %d, want 2 (duplicates kept)", len(b.Modifiers()))
	}
	if b.Key() != keyA {
		t.Errorf("Key() = %v, want %v", b.Key(), keyA)
	}
	if b.Command() != 42 {
		t.Errorf("Command() = %v, want 42", b.Command())
	}
}

func TestBindingString(t *testing.T) {
	b := NewBinding([]key.Key{super}, keyA, "cmd")
	want := "[<key:super>] <key:a> => cmd"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	b = NewBinding(nil, keyA, "cmd")
	want = "[] <key:a> => cmd"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestKeyArg(t *testing.T) {
	tests := []struct {
		name string
		arg  KeyArg
		want []key.Key
	}{
		{"one", One(keyA), []key.Key{keyA}},
		{"many", Many{keyA, keyH}, []key.Key{keyA, keyH}},
		{"many empty", Many{}, []key.Key{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arg.Keys(); !key.EqualSlices(got, tt.want) {
				t.Errorf("Keys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	mods := []key.Key{super}

	got := Expand(mods, Many{keyA, keyH}, "cmd")
	if len(got) != 2 {
		t.Fatalf("Expand() len = %d, want 2", len(got))
	}
	for i, want := range []key.Key{keyA, keyH} {
		if got[i].Key() != want {
			t.Errorf("Expand()[%d].Key() = %v, want %v", i, got[i].Key(), want)
		}
		if !key.EqualSlices(got[i].Modifiers(), mods) {
			t.Errorf("Expand()[%d].Modifiers() = %v, want %v", i, got[i].Modifiers(), mods)
		}
		if got[i].Command() != "cmd" {
			t.Errorf("Expand()[%d].Command() = %v, want cmd", i, got[i].Command())
		}
	}

	if got := Expand(mods, One(keyA), "cmd"); len(got) != 1 {
		t.Errorf("Expand(One) len = %d, want 1", len(got))
	}
	if got := Expand(mods, Many{}, "cmd"); len(got) != 0 {
		t.Errorf("Expand(Many{}) len = %d, want 0", len(got))
	}
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("NewRegistry().Len() = %d, want 0", r.Len())
	}

	r.Push(NewBinding(nil, keyH, 1))
	r.Push(Expand([]key.Key{super}, Many{keyA, keyH}, 2)...)
	r.Push(NewBinding(nil, keyA, 3))

	wantKeys := []key.Key{keyH, keyA, keyH, keyA}
	wantCmds := []int{1, 2, 2, 3}

	bindings := r.Bindings()
	if len(bindings) != len(wantKeys) {
		t.Fatalf("Bindings() len = %d, want %d", len(bindings), len(wantKeys))
	}
	for i := range bindings {
		if bindings[i].Key() != wantKeys[i] || bindings[i].Command() != wantCmds[i] {
			t.Errorf("Bindings()[%d] = %v, want key %v command %d", i, bindings[i], wantKeys[i], wantCmds[i])
		}
	}
}

func TestRegistryEach(t *testing.T) {
	r := NewRegistry()
	r.Push(NewBinding(nil, keyA, 1), NewBinding(nil, keyH, 2), NewBinding(nil, keyA, 3))

	var seen []int
	r.Each(func(i int, b Binding) bool {
		seen = append(seen, i)
		return i < 1
	})
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("Each() visited %v, want [0 1]", seen)
	}
}

func TestRegistryDrain(t *testing.T) {
	r := NewRegistry()
	r.Push(NewBinding(nil, keyA, 1), NewBinding(nil, keyH, 2))

	got := r.Drain()
	if len(got) != 2 {
		t.Errorf("Drain() len = %d, want 2", len(got))
	}
	if r.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", r.Len())
	}
	if got := r.Drain(); len(got) != 0 {
		t.Errorf("second Drain() len = %d, want 0", len(got))
	}
}
