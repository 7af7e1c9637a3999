// Package report renders the bindings collected by one script run.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/keybind/internal/input/keymap"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown report format")

// CommandFunc converts a binding's command into a plain Go value.
type CommandFunc func(command any) any

// Entry is the rendered form of one binding.
type Entry struct {
	Modifiers []string `json:"modifiers" yaml:"modifiers"`
	Key       string   `json:"key" yaml:"key"`
	Command   any      `json:"command" yaml:"command"`
}

// Report holds the bindings of one run in registration order.
type Report struct {
	RunID    string  `json:"run_id" yaml:"run_id"`
	Script   string  `json:"script" yaml:"script"`
	Bindings []Entry `json:"bindings" yaml:"bindings"`
}

// New builds a report from bindings. A nil convert keeps commands as-is.
func New(runID, script string, bindings []keymap.Binding, convert CommandFunc) *Report {
	r := &Report{
		RunID:    runID,
		Script:   script,
		Bindings: make([]Entry, 0, len(bindings)),
	}
	for _, b := range bindings {
		mods := b.Modifiers()
		ids := make([]string, len(mods))
		for i, m := range mods {
			ids[i] = m.ID
		}
		cmd := b.Command()
		if convert != nil {
			cmd = convert(cmd)
		}
		r.Bindings = append(r.Bindings, Entry{
			Modifiers: ids,
			Key:       b.Key().ID,
			Command:   cmd,
		})
	}
	return r
}

// Len returns the number of bindings in the report.
func (r *Report) Len() int {
	return len(r.Bindings)
}

// Write renders the report to w in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText, "":
		return r.writeText(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// writeText writes one line per binding:
//
//	[<key:super>] <key:h> => focus_left
func (r *Report) writeText(w io.Writer) error {
	for _, e := range r.Bindings {
		mods := make([]string, len(e.Modifiers))
		for i, m := range e.Modifiers {
			mods[i] = keyString(m)
		}
		if _, err := fmt.Fprintf(w, "[%s] %s => %s\n",
			strings.Join(mods, " "), keyString(e.Key), commandString(e.Command)); err != nil {
			return err
		}
	}
	return nil
}

func keyString(id string) string {
	return "<key:" + id + ">"
}

func commandString(cmd any) string {
	if cmd == nil {
		return "nil"
	}
	return fmt.Sprint(cmd)
}
