package vecs

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Script is a compiled program. It is immutable and may be run from several
// goroutines at once; every run gets its own global frame.
type Script struct {
	engine    *Engine
	program   *Program
	source    string
	functions []*FunctionDecl
}

// FunctionDecl is a top-level `name <- function(...)` definition.
type FunctionDecl struct {
	Name    string
	Params  []string
	Literal *FunctionLiteral
	Pos     Position
}

type RunOptions struct {
	Globals map[string]Value
	// AutoPrint prints every visible top-level result, as a prompt would.
	AutoPrint bool
	OnWarning func(Warning)
}

type CallOptions struct {
	Globals   map[string]Value
	Keywords  map[string]Value
	OnWarning func(Warning)
}

// Result is the outcome of a run. Warnings are advisory and present even
// when the run also returned an error.
type Result struct {
	Value       Value
	Visible     bool
	Warnings    []Warning
	Dropped     int
	ExecutionID string
}

func (e *Engine) Compile(source string) (*Script, error) {
	p := newParser(source)
	program, parseErrors := p.ParseProgram()
	if len(parseErrors) > 0 {
		return nil, combineErrors(parseErrors)
	}

	script := &Script{engine: e, program: program, source: source}
	for _, expr := range program.Exprs {
		assign, ok := expr.(*AssignExpr)
		if !ok {
			continue
		}
		ident, ok := assign.Target.(*Identifier)
		if !ok {
			continue
		}
		fn, ok := assign.Value.(*FunctionLiteral)
		if !ok {
			continue
		}
		params := make([]string, len(fn.Params))
		for i, param := range fn.Params {
			params[i] = param.Name
		}
		script.functions = append(script.functions, &FunctionDecl{Name: ident.Name, Params: params, Literal: fn, Pos: assign.Pos()})
	}
	return script, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := ""
	for _, err := range errs {
		if msg != "" {
			msg += "\n\n"
		}
		msg += err.Error()
	}
	return errors.New(msg)
}

// Source returns the text the script was compiled from.
func (s *Script) Source() string { return s.source }

// Functions returns the top-level function definitions in name order. A name
// defined twice is listed once, with its last definition.
func (s *Script) Functions() []*FunctionDecl {
	latest := make(map[string]*FunctionDecl, len(s.functions))
	for _, fn := range s.functions {
		latest[fn.Name] = fn
	}
	out := make([]*FunctionDecl, 0, len(latest))
	for _, fn := range latest {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Function looks up a top-level function definition by name.
func (s *Script) Function(name string) (*FunctionDecl, bool) {
	for i := len(s.functions) - 1; i >= 0; i-- {
		if s.functions[i].Name == name {
			return s.functions[i], true
		}
	}
	return nil, false
}

func (s *Script) newExecution(ctx context.Context, globals map[string]Value, onWarning func(Warning)) *Execution {
	global := newGlobalEnv(s.engine.base)
	for name, val := range globals {
		global.Define(name, val)
	}
	return newExecution(ctx, s.engine, s.source, global, onWarning)
}

// Run evaluates the script's top level in a fresh global frame.
func (s *Script) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	exec := s.newExecution(ctx, opts.Globals, opts.OnWarning)
	exec.logger.Debug("run script", "expressions", len(s.program.Exprs))
	val, visible, err := exec.runProgram(s.program, opts.AutoPrint)
	return exec.result(val, visible), err
}

// Call runs the top level and then invokes the function bound to name.
// Positional args come first; keywords follow in name order and are matched
// by label.
func (s *Script) Call(ctx context.Context, name string, args []Value, opts CallOptions) (Value, error) {
	exec := s.newExecution(ctx, opts.Globals, opts.OnWarning)
	if _, _, err := exec.runProgram(s.program, false); err != nil {
		return NewNull(), err
	}

	fn, ok := exec.global.GetFunction(name)
	if !ok {
		return NewNull(), fmt.Errorf("function %s not found", name)
	}

	callArgs := make([]CallArg[Value], 0, len(args)+len(opts.Keywords))
	for _, arg := range args {
		callArgs = append(callArgs, CallArg[Value]{Value: arg})
	}
	labels := make([]string, 0, len(opts.Keywords))
	for label := range opts.Keywords {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		callArgs = append(callArgs, CallArg[Value]{Label: label, Value: opts.Keywords[label]})
	}

	pos := Position{}
	if decl, ok := s.Function(name); ok {
		pos = decl.Pos
	}
	exec.logger.Debug("call function", "function", name, "args", len(callArgs))
	val, err := exec.callFunction(fn, name, callArgs, pos)
	if err != nil {
		if isControlSignal(err) {
			return NewNull(), exec.errorAt(pos, "%s", err.Error())
		}
		return NewNull(), err
	}
	return val, nil
}

func (exec *Execution) result(val Value, visible bool) *Result {
	return &Result{
		Value:       val,
		Visible:     visible,
		Warnings:    exec.Warnings(),
		Dropped:     exec.droppedWarnings,
		ExecutionID: exec.id,
	}
}
