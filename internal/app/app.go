// Package app wires configuration, logging, the Lua runtime, and the key
// binding API into a runnable application.
//
// Each run gets its own Lua state and binding registry. Watch mode re-runs
// the script from scratch whenever it changes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/internal/app/report"
	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/config/watcher"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/plugin/api"
	plua "github.com/dshills/keybind/internal/plugin/lua"
)

// Options configures the application.
// Empty string fields leave the configured value unchanged.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// ScriptPath overrides the user script path.
	ScriptPath string

	// ScriptName overrides the chunk name used in diagnostics.
	ScriptName string

	// Format overrides the report format.
	Format string

	// LogLevel overrides the logging verbosity.
	LogLevel string

	// Timeout overrides the script execution timeout.
	Timeout string

	// Watch re-runs the script whenever it changes.
	Watch bool

	// Stdout receives reports. Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives logs. Defaults to os.Stderr.
	Stderr io.Writer

	// Lookup reads environment overrides. Defaults to os.LookupEnv.
	Lookup config.LookupFunc
}

// Application runs user scripts and reports their bindings.
type Application struct {
	config  *config.Config
	keys    *key.Table
	timeout time.Duration
	logger  zerolog.Logger
	stdout  io.Writer
	watch   bool
}

// New creates an Application. Settings are layered as defaults, config
// file, environment, then opts.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(opts.Lookup)
	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(opts.Stderr, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &Application{
		config:  cfg,
		keys:    keys,
		timeout: timeout,
		logger:  logger,
		stdout:  stdout,
		watch:   opts.Watch,
	}, nil
}

// apply overlays the non-empty option fields onto cfg.
func (o Options) apply(cfg *config.Config) {
	if o.ScriptPath != "" {
		cfg.Script.Path = o.ScriptPath
	}
	if o.ScriptName != "" {
		cfg.Script.Name = o.ScriptName
	}
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Timeout != "" {
		cfg.Runtime.Timeout = o.Timeout
	}
}

// Config returns the effective configuration.
func (a *Application) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *Application) Logger() zerolog.Logger {
	return a.logger
}

// Run executes the script once and writes the report. In watch mode it then
// keeps re-running the script on change until ctx is cancelled; failed
// re-runs are logged and do not stop watching.
func (a *Application) Run(ctx context.Context) error {
	err := a.runAndWrite(ctx)
	if !a.watch {
		return err
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("script failed")
	}
	return a.watchScript(ctx)
}

// RunOnce executes the user script in a fresh state and returns the
// bindings it declared.
func (a *Application) RunOnce(ctx context.Context) (*report.Report, error) {
	runID := uuid.NewString()
	name := a.config.Script.Name
	log := a.logger.With().Str("run", runID).Str("script", name).Logger()
	start := time.Now()

	state, err := plua.NewState(plua.WithExecutionTimeout(a.timeout))
	if err != nil {
		return nil, err
	}
	defer state.Close()

	registry := keymap.NewRegistry()
	keys := api.NewKeyModule(a.keys)
	modules := api.NewRegistry()
	if err := modules.Register(keys); err != nil {
		return nil, err
	}
	if err := modules.Register(api.NewBindModule(keys, registry, log)); err != nil {
		return nil, err
	}
	if err := modules.InjectAll(state.LuaState()); err != nil {
		return nil, err
	}
	log.Debug().Strs("modules", modules.List()).Msg("runtime ready")

	if err := state.DoFile(ctx, a.config.Script.Path, name); err != nil {
		return nil, err
	}

	// Converting commands can run script-defined __tostring metamethods.
	var rep *report.Report
	err = state.Call(ctx, name, func(L *lua.LState) error {
		bridge := plua.NewBridge(L)
		rep = report.New(runID, name, registry.Drain(), func(cmd any) any {
			if lv, ok := cmd.(lua.LValue); ok {
				return bridge.ToGoValue(lv)
			}
			return cmd
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("bindings", rep.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("script complete")
	return rep, nil
}

func (a *Application) runAndWrite(ctx context.Context) error {
	rep, err := a.RunOnce(ctx)
	if err != nil {
		return err
	}
	if err := rep.Write(a.stdout, report.Format(a.config.Output.Format)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func (a *Application) watchScript(ctx context.Context) error {
	w, err := watcher.New(a.config.Script.Path)
	if err != nil {
		return fmt.Errorf("watching script: %w", err)
	}
	defer w.Close()

	a.logger.Info().Str("path", w.Path()).Msg("watching script")

	err = w.Run(ctx, func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			a.logger.Warn().Str("op", ev.Op.String()).Msg("script removed")
			return
		}
		a.logger.Info().Str("op", ev.Op.String()).Msg("script changed")
		if err := a.runAndWrite(ctx); err != nil {
			a.logger.Error().Err(err).Msg("script failed")
		}
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
