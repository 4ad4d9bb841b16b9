package vecs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Execution holds the state of one run of a script or session input: the
// call stack, quotas, the random source and collected warnings.
type Execution struct {
	engine          *Engine
	source          string
	ctx             context.Context
	id              string
	quota           int
	recursionCap    int
	steps           int
	callStack       []callFrame
	global          *Env
	rng             *rand.Rand
	warnings        []Warning
	droppedWarnings int
	onWarning       func(Warning)
	logger          *slog.Logger
	stdout          io.Writer
	stderr          io.Writer
	visible         bool
	currentPos      Position
}

type callFrame struct {
	Function string
	Pos      Position
}

func newExecution(ctx context.Context, engine *Engine, source string, global *Env, onWarning func(Warning)) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := engine.config
	id := uuid.NewString()
	return &Execution{
		engine:       engine,
		source:       source,
		ctx:          ctx,
		id:           id,
		quota:        cfg.StepQuota,
		recursionCap: cfg.RecursionLimit,
		global:       global,
		rng:          newRandom(cfg.Seed),
		onWarning:    onWarning,
		logger:       cfg.Logger.With("execution_id", id),
		stdout:       cfg.Stdout,
		stderr:       cfg.Stderr,
		visible:      true,
	}
}

// ID identifies the execution in log records.
func (exec *Execution) ID() string { return exec.id }

func (exec *Execution) Stdout() io.Writer { return exec.stdout }

func (exec *Execution) Stderr() io.Writer { return exec.stderr }

// Context returns the context the execution was started with.
func (exec *Execution) Context() context.Context { return exec.ctx }

// Global returns the execution's global frame.
func (exec *Execution) Global() *Env { return exec.global }

// SetInvisible suppresses automatic printing of the current result.
func (exec *Execution) SetInvisible() { exec.visible = false }

func (exec *Execution) pushFrame(function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.newRuntimeError(runtimeErrorTypeQuota, fmt.Sprintf("recursion depth exceeded (limit %d)", exec.recursionCap), pos, nil)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// runProgram evaluates top-level expressions in order. When autoPrint is
// set, every visible result is printed the way an interactive prompt would.
func (exec *Execution) runProgram(program *Program, autoPrint bool) (Value, bool, error) {
	result := NewNull()
	visible := false
	for _, expr := range program.Exprs {
		exec.visible = true
		val, err := exec.evalExpr(expr, exec.global)
		if err != nil {
			if isControlSignal(err) {
				return NewNull(), false, exec.errorAt(expr.Pos(), "%s", err.Error())
			}
			return NewNull(), false, err
		}
		result, visible = val, exec.visible
		if autoPrint && visible {
			fmt.Fprintln(exec.stdout, val.Format())
		}
	}
	return result, visible, nil
}

func (exec *Execution) evalExpr(expr Expression, env *Env) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNull(), err
	}
	exec.currentPos = expr.Pos()

	switch e := expr.(type) {
	case *NumberLiteral:
		exec.visible = true
		return NewNumeric(e.Value), nil
	case *StringLiteral:
		exec.visible = true
		return NewCharacter(e.Value), nil
	case *LogicalLiteral:
		exec.visible = true
		return NewLogical(e.Value), nil
	case *NullLiteral:
		exec.visible = true
		return NewNull(), nil
	case *Identifier:
		return exec.evalIdentifier(e, env)
	case *FunctionLiteral:
		exec.visible = true
		return NewClosure(&Closure{Params: e.Params, Body: e.Body, Env: env, Source: e.Source}), nil
	case *BlockExpr:
		return exec.evalBlock(e, env)
	case *AssignExpr:
		return exec.evalAssign(e, env)
	case *UnaryExpr:
		return exec.evalUnary(e, env)
	case *BinaryExpr:
		return exec.evalBinary(e, env)
	case *CallExpr:
		return exec.evalCall(e, env)
	case *IndexExpr:
		return exec.evalIndex(e, env)
	case *IfExpr:
		return exec.evalIf(e, env)
	case *ForExpr:
		return exec.evalFor(e, env)
	case *WhileExpr:
		return exec.evalWhile(e, env)
	case *RepeatExpr:
		return exec.evalRepeat(e, env)
	case *BreakExpr:
		return NewNull(), errLoopBreak
	case *NextExpr:
		return NewNull(), errLoopNext
	default:
		return NewNull(), exec.errorAt(expr.Pos(), "unsupported expression %T", expr)
	}
}

func (exec *Execution) evalIdentifier(e *Identifier, env *Env) (Value, error) {
	exec.visible = true
	val, ok := env.Get(e.Name)
	if !ok {
		return NewNull(), exec.errorAt(e.Pos(), "object '%s' not found", e.Name)
	}
	if val.Kind() == KindDots {
		return NewNull(), exec.errorAt(e.Pos(), "'...' used in an incorrect context")
	}
	return val, nil
}

func (exec *Execution) evalBlock(e *BlockExpr, env *Env) (Value, error) {
	exec.visible = true
	result := NewNull()
	for _, inner := range e.Exprs {
		val, err := exec.evalExpr(inner, env)
		if err != nil {
			return NewNull(), err
		}
		result = val
	}
	return result, nil
}

func (exec *Execution) evalAssign(e *AssignExpr, env *Env) (Value, error) {
	val, err := exec.evalExpr(e.Value, env)
	if err != nil {
		return NewNull(), err
	}

	switch target := e.Target.(type) {
	case *Identifier:
		// Only a closure this assignment just created is named; values from
		// RunOptions.Globals may be shared with other executions.
		if _, fresh := e.Value.(*FunctionLiteral); fresh {
			if c := val.Closure(); c != nil && c.Name == "" {
				c.Name = target.Name
			}
		}
		exec.bind(env, target.Name, val, e.Super)
	case *IndexExpr:
		ident := target.Object.(*Identifier)
		lookup := env
		if e.Super && !env.global && env.Parent() != nil {
			lookup = env.Parent()
		}
		current, ok := lookup.Get(ident.Name)
		if !ok {
			current = NewNull()
		}
		index, err := exec.evalExpr(target.Index, env)
		if err != nil {
			return NewNull(), err
		}
		updated, err := assignIndex(current, index, val, target.Double)
		if err != nil {
			return NewNull(), exec.wrapError(err, target.Pos())
		}
		exec.bind(env, ident.Name, updated, e.Super)
	default:
		return NewNull(), exec.errorAt(e.Pos(), "invalid assignment target")
	}

	exec.visible = false
	return val, nil
}

func (exec *Execution) bind(env *Env, name string, val Value, super bool) {
	if super {
		env.SuperAssign(name, val)
		return
	}
	env.Define(name, val)
}
