package lua

import (
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestNewSandbox(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	sandbox := NewSandbox(L)
	if sandbox == nil {
		t.Fatal("NewSandbox() returned nil")
	}
	if sandbox.L != L {
		t.Error("NewSandbox() has wrong LState")
	}
	if sandbox.Installed() {
		t.Error("Installed() = true before Install")
	}
}

func TestSandboxInstall(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	sandbox := NewSandbox(L)
	sandbox.Install()

	for _, fn := range dangerousFuncs {
		v := L.GetGlobal(fn)
		if v != glua.LNil {
			t.Errorf("%s should be removed, got %T", fn, v)
		}
	}
	if !sandbox.Installed() {
		t.Error("Installed() = false after Install")
	}
}

func TestSandboxRequire(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(`local s = require("string"); assert(s.upper("a") == "A")`); err != nil {
		t.Errorf("require(string) error = %v", err)
	}

	tests := []string{"io", "os", "debug", "socket", "./evil"}
	for _, mod := range tests {
		t.Run(mod, func(t *testing.T) {
			if err := state.DoString(`require("` + mod + `")`); err == nil {
				t.Errorf("require(%q) should fail", mod)
			}
		})
	}
}
