package vecs

import (
	"io"
	"log/slog"
	"os"
)

// Config controls interpreter execution bounds, output streams and
// diagnostics. The zero value is usable; NewEngine fills in defaults.
type Config struct {
	StepQuota      int `yaml:"step_quota"`
	RecursionLimit int `yaml:"recursion_limit"`
	// Seed makes runif, rnorm and friends reproducible. A nil Seed draws a
	// fresh seed for every execution.
	Seed *uint64 `yaml:"seed"`
	// WarnPartialMatch emits a warning whenever an argument label is matched
	// to a parameter by prefix rather than by its full name.
	WarnPartialMatch bool `yaml:"warn_partial_match"`

	Stdout io.Writer    `yaml:"-"`
	Stderr io.Writer    `yaml:"-"`
	Logger *slog.Logger `yaml:"-"`
}

const (
	defaultStepQuota      = 100000
	defaultRecursionLimit = 256
)

// Engine compiles and executes scripts. Builtins must be registered before
// the engine is shared between goroutines; after that it is read-only.
type Engine struct {
	config   Config
	builtins map[string]Value
	base     *Env
}

// NewEngine constructs an Engine with sane defaults and registers built-ins.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = defaultStepQuota
	}
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engine := &Engine{
		config:   cfg,
		builtins: make(map[string]Value),
		base:     newEnv(nil),
	}
	registerCoreBuiltins(engine)
	registerMathBuiltins(engine)
	registerStringBuiltins(engine)
	registerRandomBuiltins(engine)
	registerApplyBuiltins(engine)

	engine.define("T", NewLogical(true))
	engine.define("F", NewLogical(false))
	engine.define("pi", NewNumeric(3.141592653589793))
	return engine, nil
}

// MustNewEngine is NewEngine for callers with a static configuration.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns the effective configuration after defaults were applied.
func (e *Engine) Config() Config {
	return e.config
}

// RegisterBuiltin exposes a host function to scripts under name. Calls are
// bound against params with the same rules as user-defined functions.
func (e *Engine) RegisterBuiltin(name string, params []ParamSpec[Value], fn BuiltinFunc) {
	e.define(name, NewBuiltin(name, params, fn))
}

func (e *Engine) define(name string, val Value) {
	e.builtins[name] = val
	e.base.Define(name, val)
}

// Builtins lists the names of every registered builtin and constant.
func (e *Engine) Builtins() []string {
	return e.base.Names()
}

// IsBuiltin reports whether name is provided by the engine.
func (e *Engine) IsBuiltin(name string) bool {
	_, ok := e.builtins[name]
	return ok
}
