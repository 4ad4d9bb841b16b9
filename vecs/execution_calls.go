package vecs

import (
	"errors"
	"fmt"
)

func (exec *Execution) evalCall(call *CallExpr, env *Env) (Value, error) {
	callee, name, err := exec.resolveCallee(call, env)
	if err != nil {
		return NewNull(), err
	}
	args, err := exec.evalCallArgs(call.Args, env)
	if err != nil {
		return NewNull(), err
	}
	return exec.callFunction(callee, name, args, call.Pos())
}

func (exec *Execution) resolveCallee(call *CallExpr, env *Env) (Value, string, error) {
	if ident, ok := call.Callee.(*Identifier); ok {
		fn, found := env.GetFunction(ident.Name)
		if !found {
			return NewNull(), "", exec.errorAt(call.Pos(), "could not find function \"%s\"", ident.Name)
		}
		return fn, ident.Name, nil
	}
	fn, err := exec.evalExpr(call.Callee, env)
	if err != nil {
		return NewNull(), "", err
	}
	if !fn.IsFunction() {
		return NewNull(), "", exec.errorAt(call.Pos(), "attempt to apply non-function")
	}
	return fn, functionName(fn), nil
}

func functionName(fn Value) string {
	switch fn.Kind() {
	case KindClosure:
		if name := fn.Closure().Name; name != "" {
			return name
		}
		return "<anonymous>"
	case KindBuiltin:
		return fn.Builtin().Name
	default:
		return "<anonymous>"
	}
}

// evalCallArgs evaluates arguments left to right. A bare ... expands to the
// arguments collected by the enclosing function, labels included.
func (exec *Execution) evalCallArgs(exprs []CallArgument, env *Env) ([]CallArg[Value], error) {
	args := make([]CallArg[Value], 0, len(exprs))
	for _, arg := range exprs {
		if ident, ok := arg.Value.(*Identifier); ok && ident.Name == DotsName && arg.Name == "" {
			dots, found := env.Get(DotsName)
			if !found || dots.Kind() != KindDots {
				return nil, exec.errorAt(ident.Pos(), "'...' used in an incorrect context")
			}
			args = append(args, dots.dotsArgs()...)
			continue
		}
		val, err := exec.evalExpr(arg.Value, env)
		if err != nil {
			return nil, err
		}
		args = append(args, CallArg[Value]{Label: arg.Name, Value: val})
	}
	return args, nil
}

// CallFunction invokes fn with already evaluated arguments. Builtins such as
// sapply use it to call back into script functions.
func (exec *Execution) CallFunction(fn Value, args []CallArg[Value], pos Position) (Value, error) {
	return exec.callFunction(fn, functionName(fn), args, pos)
}

func (exec *Execution) callFunction(fn Value, name string, args []CallArg[Value], pos Position) (Value, error) {
	switch fn.Kind() {
	case KindClosure:
		return exec.callClosure(fn.Closure(), name, args, pos)
	case KindBuiltin:
		return exec.callBuiltin(fn.Builtin(), name, args, pos)
	default:
		return NewNull(), exec.errorAt(pos, "attempt to apply non-function")
	}
}

func closureSignature(c *Closure) []ParamSpec[Value] {
	sig := make([]ParamSpec[Value], len(c.Params))
	for i, p := range c.Params {
		sig[i] = ParamSpec[Value]{Name: p.Name, HasDefault: p.Default != nil, Default: NewNull()}
	}
	return sig
}

func (exec *Execution) callClosure(c *Closure, name string, args []CallArg[Value], pos Position) (Value, error) {
	binding, err := Bind(closureSignature(c), args)
	if err != nil {
		return NewNull(), exec.bindingError(err, name, pos)
	}
	exec.notePartialMatches(name, args, binding, pos)

	if err := exec.pushFrame(name, pos); err != nil {
		return NewNull(), err
	}
	defer exec.popFrame()

	callEnv := newEnv(c.Env)
	for _, p := range c.Params {
		switch binding.Sources[p.Name] {
		case SourceDots:
			callEnv.Define(DotsName, newDots(binding.Dots))
		case SourceDefault:
		default:
			callEnv.Define(p.Name, binding.Values[p.Name])
		}
	}
	// defaults run in the new frame after supplied arguments are bound, so a
	// default may refer to any other parameter
	for _, p := range c.Params {
		if binding.Sources[p.Name] != SourceDefault {
			continue
		}
		val, err := exec.evalExpr(p.Default, callEnv)
		if err != nil {
			return NewNull(), exec.escapeFunction(err, p.Default.Pos())
		}
		callEnv.Define(p.Name, val)
	}

	val, err := exec.evalExpr(c.Body, callEnv)
	if err != nil {
		var ret *returnSignal
		if errors.As(err, &ret) {
			return ret.value, nil
		}
		return NewNull(), exec.escapeFunction(err, exec.currentPos)
	}
	return val, nil
}

// escapeFunction stops break and next from unwinding past a function
// boundary.
func (exec *Execution) escapeFunction(err error, pos Position) error {
	if err == errLoopBreak || err == errLoopNext {
		return exec.errorAt(pos, "%s", err.Error())
	}
	return err
}

func (exec *Execution) callBuiltin(b *Builtin, name string, args []CallArg[Value], pos Position) (Value, error) {
	binding, err := Bind(b.Params, args)
	if err != nil {
		return NewNull(), exec.bindingError(err, name, pos)
	}
	exec.notePartialMatches(name, args, binding, pos)

	if err := exec.pushFrame(name, pos); err != nil {
		return NewNull(), err
	}
	defer exec.popFrame()

	exec.visible = true
	val, err := b.Fn(exec, &Args{binding: binding, Call: name, Pos: pos})
	if err != nil {
		return NewNull(), exec.wrapError(err, pos)
	}
	return val, nil
}

// bindingError reports a failed argument match against the function being
// called rather than its caller.
func (exec *Execution) bindingError(err error, name string, pos Position) error {
	var failure *BindingFailure
	if !errors.As(err, &failure) {
		return exec.wrapError(err, pos)
	}
	rtErr := exec.newRuntimeError(runtimeErrorTypeBase, failure.Error(), pos, failure).(*RuntimeError)
	rtErr.Call = name
	return rtErr
}

func (exec *Execution) notePartialMatches(name string, args []CallArg[Value], binding *Binding[Value], pos Position) {
	if !exec.engine.config.WarnPartialMatch {
		return
	}
	for _, arg := range args {
		if arg.Label == "" {
			continue
		}
		if _, exact := binding.Sources[arg.Label]; exact {
			continue
		}
		for param, source := range binding.Sources {
			if source == SourcePartial && len(param) > len(arg.Label) && param[:len(arg.Label)] == arg.Label {
				exec.warnIn(name, pos, fmt.Sprintf("partial argument match of '%s' to '%s'", arg.Label, param))
				break
			}
		}
	}
}
