package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
)

func sampleBindings() []keymap.Binding {
	super := key.New("super")
	return []keymap.Binding{
		keymap.NewBinding([]key.Key{super}, key.New("h"), "focus_left"),
		keymap.NewBinding([]key.Key{super}, key.New("l"), "focus_right"),
		keymap.NewBinding(nil, key.New("a"), nil),
	}
}

func TestNew(t *testing.T) {
	r := New("run-1", "example", sampleBindings(), nil)

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	if r.RunID != "run-1" || r.Script != "example" {
		t.Errorf("RunID, Script = %q, %q; want run-1, example", r.RunID, r.Script)
	}

	first := r.Bindings[0]
	if len(first.Modifiers) != 1 || first.Modifiers[0] != "super" {
		t.Errorf("Bindings[0].Modifiers = %v, want [super]", first.Modifiers)
	}
	if first.Key != "h" {
		t.Errorf("Bindings[0].Key = %q, want h", first.Key)
	}
	if first.Command != "focus_left" {
		t.Errorf("Bindings[0].Command = %v, want focus_left", first.Command)
	}
	if len(r.Bindings[2].Modifiers) != 0 {
		t.Errorf("Bindings[2].Modifiers = %v, want empty", r.Bindings[2].Modifiers)
	}
}

func TestNewConvert(t *testing.T) {
	calls := 0
	convert := func(cmd any) any {
		calls++
		if cmd == nil {
			return "converted-nil"
		}
		return strings.ToUpper(cmd.(string))
	}

	r := New("", "example", sampleBindings(), convert)

	if calls != 3 {
		t.Errorf("convert called %d times, want 3", calls)
	}
	if r.Bindings[0].Command != "FOCUS_LEFT" {
		t.Errorf("Bindings[0].Command = %v, want FOCUS_LEFT", r.Bindings[0].Command)
	}
	if r.Bindings[2].Command != "converted-nil" {
		t.Errorf("Bindings[2].Command = %v, want converted-nil", r.Bindings[2].Command)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	r := New("run-1", "example", sampleBindings(), nil)

	if err := r.Write(&buf, FormatText); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "[<key:super>] <key:h> => focus_left\n" +
		"[<key:super>] <key:l> => focus_right\n" +
		"[] <key:a> => nil\n"
	if buf.String() != want {
		t.Errorf("Write(text) =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteTextDefault(t *testing.T) {
	var a, b bytes.Buffer
	r := New("", "example", sampleBindings(), nil)

	if err := r.Write(&a, ""); err != nil {
		t.Fatalf("Write(\"\") error = %v", err)
	}
	if err := r.Write(&b, FormatText); err != nil {
		t.Fatalf("Write(text) error = %v", err)
	}
	if a.String() != b.String() {
		t.Errorf("empty format should render as text")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New("run-1", "example", sampleBindings(), nil)

	if err := r.Write(&buf, FormatJSON); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got struct {
		RunID    string `json:"run_id"`
		Bindings []struct {
			Modifiers []string `json:"modifiers"`
			Key       string   `json:"key"`
			Command   any      `json:"command"`
		} `json:"bindings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.RunID != "run-1" {
		t.Errorf("run_id = %q, want run-1", got.RunID)
	}
	if len(got.Bindings) != 3 {
		t.Fatalf("len(bindings) = %d, want 3", len(got.Bindings))
	}
	if got.Bindings[1].Key != "l" || got.Bindings[1].Command != "focus_right" {
		t.Errorf("bindings[1] = %+v, want key l, command focus_right", got.Bindings[1])
	}
	if got.Bindings[2].Command != nil {
		t.Errorf("bindings[2].command = %v, want null", got.Bindings[2].Command)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	r := New("run-1", "example", sampleBindings(), nil)

	if err := r.Write(&buf, FormatYAML); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if got.Script != "example" {
		t.Errorf("script = %q, want example", got.Script)
	}
	if len(got.Bindings) != 3 {
		t.Fatalf("len(bindings) = %d, want 3", len(got.Bindings))
	}
	if got.Bindings[0].Key != "h" {
		t.Errorf("bindings[0].key = %q, want h", got.Bindings[0].Key)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	r := New("", "example", nil, nil)

	err := r.Write(&buf, Format("xml"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Write(xml) error = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := New("", "example", nil, nil)

	if err := r.Write(&buf, FormatText); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Write(text) of empty report = %q, want empty", buf.String())
	}
}
