package vecs

import (
	"fmt"
	"math"
	"strings"
)

// Args gives a builtin access to its bound arguments.
type Args struct {
	binding *Binding[Value]
	Call    string
	Pos     Position
}

// Get returns the value bound to a declared parameter.
func (a *Args) Get(name string) Value {
	if v, ok := a.binding.Values[name]; ok {
		return v
	}
	return NewNull()
}

// Supplied reports whether the caller passed name rather than relying on its
// default.
func (a *Args) Supplied(name string) bool {
	source, ok := a.binding.Sources[name]
	return ok && source != SourceDefault
}

// Source reports how name was bound.
func (a *Args) Source(name string) ArgSource {
	return a.binding.Sources[name]
}

// Dots returns the arguments collected by the ... parameter.
func (a *Args) Dots() []CallArg[Value] {
	return a.binding.Dots
}

func (a *Args) DotValues() []Value {
	out := make([]Value, len(a.binding.Dots))
	for i, arg := range a.binding.Dots {
		out[i] = arg.Value
	}
	return out
}

func (a *Args) Number(name string) (float64, error) {
	v := a.Get(name)
	if v.Kind() != KindNumeric && v.Kind() != KindLogical {
		return 0, fmt.Errorf("invalid '%s' argument: expected a number, got %s", name, v.Kind())
	}
	if v.Len() != 1 {
		return 0, fmt.Errorf("invalid '%s' argument: expected length 1, got %d", name, v.Len())
	}
	nums, _ := v.AsNumbers()
	return nums[0], nil
}

func (a *Args) Int(name string) (int, error) {
	f, err := a.Number(name)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("invalid '%s' argument", name)
	}
	return int(f), nil
}

func (a *Args) Bool(name string) (bool, error) {
	v := a.Get(name)
	if v.Len() != 1 || (v.Kind() != KindLogical && v.Kind() != KindNumeric) {
		return false, fmt.Errorf("invalid '%s' argument: expected TRUE or FALSE", name)
	}
	bools, err := v.AsLogicals()
	if err != nil {
		return false, err
	}
	return bools[0], nil
}

func (a *Args) Text(name string) (string, error) {
	v := a.Get(name)
	if v.Kind() != KindCharacter || v.Len() != 1 {
		return "", fmt.Errorf("invalid '%s' argument: expected a single string", name)
	}
	return v.Strings()[0], nil
}

// callerName is the function that called the running builtin.
func (exec *Execution) callerName() string {
	if len(exec.callStack) < 2 {
		return ""
	}
	return exec.callStack[len(exec.callStack)-2].Function
}

// concatDots renders the ... arguments as one message, as stop() and
// warning() do.
func concatDots(values []Value) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(strings.Join(v.AsStrings(), ""))
	}
	return b.String()
}

func registerCoreBuiltins(e *Engine) {
	e.RegisterBuiltin("c", []ParamSpec[Value]{dotsParam()}, builtinCombine)
	e.RegisterBuiltin("list", []ParamSpec[Value]{dotsParam()}, builtinList)
	e.RegisterBuiltin("length", []ParamSpec[Value]{required("x")}, builtinLength)
	e.RegisterBuiltin("print", []ParamSpec[Value]{required("x"), dotsParam()}, builtinPrint)
	e.RegisterBuiltin("cat", []ParamSpec[Value]{dotsParam(), optional("sep", NewCharacter(" "))}, builtinCat)
	e.RegisterBuiltin("message", []ParamSpec[Value]{dotsParam()}, builtinMessage)
	e.RegisterBuiltin("invisible", []ParamSpec[Value]{optional("x", NewNull())}, builtinInvisible)
	e.RegisterBuiltin("return", []ParamSpec[Value]{optional("value", NewNull())}, builtinReturn)
	e.RegisterBuiltin("stop", []ParamSpec[Value]{dotsParam(), optional("call.", NewLogical(true))}, builtinStop)
	e.RegisterBuiltin("warning", []ParamSpec[Value]{dotsParam(), optional("call.", NewLogical(true))}, builtinWarning)
	e.RegisterBuiltin("is.null", []ParamSpec[Value]{required("x")}, kindPredicate(func(v Value) bool { return v.IsNull() }))
	e.RegisterBuiltin("is.numeric", []ParamSpec[Value]{required("x")}, kindPredicate(func(v Value) bool { return v.Kind() == KindNumeric }))
	e.RegisterBuiltin("is.character", []ParamSpec[Value]{required("x")}, kindPredicate(func(v Value) bool { return v.Kind() == KindCharacter }))
	e.RegisterBuiltin("is.logical", []ParamSpec[Value]{required("x")}, kindPredicate(func(v Value) bool { return v.Kind() == KindLogical }))
	e.RegisterBuiltin("is.function", []ParamSpec[Value]{required("x")}, kindPredicate(func(v Value) bool { return v.IsFunction() }))
	e.RegisterBuiltin("identical", []ParamSpec[Value]{required("x"), required("y")}, builtinIdentical)
	e.RegisterBuiltin("identity", []ParamSpec[Value]{required("x")}, builtinIdentity)
	e.RegisterBuiltin("exists", []ParamSpec[Value]{required("x")}, builtinExists)
	e.RegisterBuiltin("formalArgs", []ParamSpec[Value]{required("def")}, builtinFormalArgs)
}

func builtinCombine(exec *Execution, args *Args) (Value, error) {
	return combineValues(args.DotValues()), nil
}

// combineValues flattens values into one vector of the highest kind among
// them. Any list argument makes the result a list.
func combineValues(values []Value) Value {
	kind := KindNull
	for _, v := range values {
		switch {
		case v.Kind() == KindList || v.IsFunction():
			kind = KindList
		case kind != KindList:
			kind = higherKind(kind, v.Kind())
		}
	}

	switch kind {
	case KindNull:
		return NewNull()
	case KindList:
		var items []Value
		for _, v := range values {
			switch {
			case v.Kind() == KindList:
				items = append(items, v.List()...)
			case v.IsFunction():
				items = append(items, v)
			default:
				for i := 0; i < v.Len(); i++ {
					items = append(items, v.Element(i))
				}
			}
		}
		return listOwned(items)
	case KindCharacter:
		var out []string
		for _, v := range values {
			out = append(out, v.AsStrings()...)
		}
		return characterOwned(out)
	case KindNumeric:
		var out []float64
		for _, v := range values {
			nums, _ := v.AsNumbers()
			out = append(out, nums...)
		}
		return numericOwned(out)
	default:
		var out []bool
		for _, v := range values {
			out = append(out, v.Logicals()...)
		}
		return logicalOwned(out)
	}
}

func builtinList(exec *Execution, args *Args) (Value, error) {
	return listOwned(args.DotValues()), nil
}

func builtinLength(exec *Execution, args *Args) (Value, error) {
	return NewNumeric(float64(args.Get("x").Len())), nil
}

func builtinPrint(exec *Execution, args *Args) (Value, error) {
	x := args.Get("x")
	if _, err := fmt.Fprintln(exec.stdout, x.Format()); err != nil {
		return NewNull(), err
	}
	exec.SetInvisible()
	return x, nil
}

func builtinCat(exec *Execution, args *Args) (Value, error) {
	sep, err := args.Text("sep")
	if err != nil {
		return NewNull(), err
	}
	var parts []string
	for _, v := range args.DotValues() {
		if v.IsFunction() {
			return NewNull(), fmt.Errorf("argument of type '%s' cannot be handled by 'cat'", v.Kind())
		}
		parts = append(parts, v.AsStrings()...)
	}
	if _, err := fmt.Fprint(exec.stdout, strings.Join(parts, sep)); err != nil {
		return NewNull(), err
	}
	exec.SetInvisible()
	return NewNull(), nil
}

func builtinMessage(exec *Execution, args *Args) (Value, error) {
	if _, err := fmt.Fprintln(exec.stderr, concatDots(args.DotValues())); err != nil {
		return NewNull(), err
	}
	exec.SetInvisible()
	return NewNull(), nil
}

func builtinInvisible(exec *Execution, args *Args) (Value, error) {
	exec.SetInvisible()
	return args.Get("x"), nil
}

func builtinReturn(exec *Execution, args *Args) (Value, error) {
	return NewNull(), &returnSignal{value: args.Get("value")}
}

func builtinStop(exec *Execution, args *Args) (Value, error) {
	withCall, err := args.Bool("call.")
	if err != nil {
		return NewNull(), err
	}
	rtErr := exec.newRuntimeError(runtimeErrorTypeBase, concatDots(args.DotValues()), args.Pos, nil).(*RuntimeError)
	rtErr.Call = ""
	if withCall {
		rtErr.Call = exec.callerName()
	}
	return NewNull(), rtErr
}

func builtinWarning(exec *Execution, args *Args) (Value, error) {
	withCall, err := args.Bool("call.")
	if err != nil {
		return NewNull(), err
	}
	message := concatDots(args.DotValues())
	call := ""
	if withCall {
		call = exec.callerName()
	}
	exec.warnIn(call, args.Pos, message)
	exec.SetInvisible()
	return NewCharacter(message), nil
}

func kindPredicate(pred func(Value) bool) BuiltinFunc {
	return func(exec *Execution, args *Args) (Value, error) {
		return NewLogical(pred(args.Get("x"))), nil
	}
}

func builtinIdentical(exec *Execution, args *Args) (Value, error) {
	return NewLogical(args.Get("x").Equal(args.Get("y"))), nil
}

func builtinIdentity(exec *Execution, args *Args) (Value, error) {
	return args.Get("x"), nil
}

// builtinExists consults the global frame and the engine's builtins.
func builtinExists(exec *Execution, args *Args) (Value, error) {
	name, err := args.Text("x")
	if err != nil {
		return NewNull(), err
	}
	_, ok := exec.global.Get(name)
	return NewLogical(ok), nil
}

func builtinFormalArgs(exec *Execution, args *Args) (Value, error) {
	def := args.Get("def")
	switch def.Kind() {
	case KindClosure:
		return characterOwned(def.Closure().ParamNames()), nil
	case KindBuiltin:
		params := def.Builtin().Params
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = p.Name
		}
		return characterOwned(names), nil
	default:
		return NewNull(), fmt.Errorf("argument is not a function")
	}
}
