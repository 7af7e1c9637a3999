package config

import "os"

// EnvPrefix is the prefix of all environment overrides.
const EnvPrefix = "KEYBIND_"

// envMapping maps environment variables to the setting they override.
var envMapping = map[string]func(c *Config, v string){
	EnvPrefix + "SCRIPT":      func(c *Config, v string) { c.Script.Path = v },
	EnvPrefix + "SCRIPT_NAME": func(c *Config, v string) { c.Script.Name = v },
	EnvPrefix + "TIMEOUT":     func(c *Config, v string) { c.Runtime.Timeout = v },
	EnvPrefix + "LOG_LEVEL":   func(c *Config, v string) { c.Log.Level = v },
	EnvPrefix + "FORMAT":      func(c *Config, v string) { c.Output.Format = v },
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays KEYBIND_* variables onto c.
// Empty values are treated as set. A nil lookup uses os.LookupEnv.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for env, apply := range envMapping {
		if v, ok := lookup(env); ok {
			apply(c, v)
		}
	}
}
