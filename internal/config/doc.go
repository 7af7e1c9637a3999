// Package config loads the settings for a binding run.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file (Load), typically keybind.toml
//  3. KEYBIND_* environment variables (ApplyEnv)
//
// Command line flags are applied by the caller after that.
//
// # File format
//
//	[script]
//	path = "user.lua"
//	name = "example"
//
//	[runtime]
//	timeout = "5s"
//
//	[log]
//	level = "info"
//
//	[output]
//	format = "text"   # text, json or yaml
//
//	[keys]
//	ESC = "escape"    # extra key constants published to scripts
package config
