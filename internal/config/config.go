package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keybind/internal/input/key"
)

// Default values.
const (
	DefaultConfigFile = "keybind.toml"
	DefaultScriptPath = "user.lua"
	DefaultScriptName = "example"
	DefaultTimeout    = "5s"
	DefaultLogLevel   = "info"
	DefaultFormat     = "text"
)

// Valid values for enumerated settings.
var (
	LogLevels = []string{"debug", "info", "warn", "error"}
	Formats   = []string{"text", "json", "yaml"}
)

// Config holds all settings for a run.
type Config struct {
	Script  ScriptConfig      `toml:"script"`
	Runtime RuntimeConfig     `toml:"runtime"`
	Log     LogConfig         `toml:"log"`
	Output  OutputConfig      `toml:"output"`
	Keys    map[string]string `toml:"keys"`
}

// ScriptConfig locates the user script.
type ScriptConfig struct {
	// Path is the script file, relative to the working directory.
	Path string `toml:"path"`
	// Name is the chunk name used in error messages.
	Name string `toml:"name"`
}

// RuntimeConfig bounds script execution.
type RuntimeConfig struct {
	// Timeout is a Go duration string; "0" disables the timeout.
	Timeout string `toml:"timeout"`
}

// LogConfig configures diagnostics logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Script: ScriptConfig{
			Path: DefaultScriptPath,
			Name: DefaultScriptName,
		},
		Runtime: RuntimeConfig{Timeout: DefaultTimeout},
		Log:     LogConfig{Level: DefaultLogLevel},
		Output:  OutputConfig{Format: DefaultFormat},
		Keys:    map[string]string{},
	}
}

// Load reads the TOML file at path on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := cfg.parse(path, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes TOML data into c, rejecting unknown settings.
func (c *Config) parse(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(c); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			perr.Line, perr.Column = decodeErr.Position()
		}
		return perr
	}
	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
	return nil
}

// Timeout returns the parsed execution timeout.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Runtime.Timeout)
	if err != nil || d < 0 {
		return 0, &ValidationError{Path: "runtime.timeout", Value: c.Runtime.Timeout, Err: ErrInvalidTimeout}
	}
	return d, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Script.Path == "" {
		errs = append(errs, &ValidationError{Path: "script.path", Value: c.Script.Path, Err: ErrMissingScript})
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	if !contains(LogLevels, c.Log.Level) {
		errs = append(errs, &ValidationError{Path: "log.level", Value: c.Log.Level, Err: ErrInvalidLevel})
	}
	if !contains(Formats, c.Output.Format) {
		errs = append(errs, &ValidationError{Path: "output.format", Value: c.Output.Format, Err: ErrInvalidFormat})
	}
	if _, err := c.KeyTable(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// KeyTable returns the default key constants extended by the [keys] section.
// Extra constants are added in name order; a name that already exists keeps
// its position and takes the configured ID.
func (c *Config) KeyTable() (*key.Table, error) {
	t := key.DefaultTable()

	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := t.Set(name, c.Keys[name]); err != nil {
			return nil, &ValidationError{Path: "keys." + name, Value: c.Keys[name], Err: err}
		}
	}
	return t, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
