package vecs

import "fmt"

func registerApplyBuiltins(e *Engine) {
	e.RegisterBuiltin("lapply", []ParamSpec[Value]{required("X"), required("FUN"), dotsParam()}, builtinLapply)
	e.RegisterBuiltin("sapply", []ParamSpec[Value]{required("X"), required("FUN"), dotsParam()}, builtinSapply)
}

// applyEach calls FUN on every element of X, forwarding the extra arguments
// collected by ... after the element.
func applyEach(exec *Execution, args *Args) ([]Value, error) {
	x := args.Get("X")
	fn := args.Get("FUN")
	if !fn.IsFunction() {
		return nil, fmt.Errorf("'FUN' is not a function")
	}
	if x.IsFunction() {
		return nil, fmt.Errorf("'X' must be a vector or list")
	}
	extra := args.Dots()
	results := make([]Value, x.Len())
	for i := range results {
		callArgs := make([]CallArg[Value], 0, len(extra)+1)
		callArgs = append(callArgs, CallArg[Value]{Value: x.Element(i)})
		callArgs = append(callArgs, extra...)
		val, err := exec.CallFunction(fn, callArgs, args.Pos)
		if err != nil {
			return nil, err
		}
		results[i] = val
	}
	return results, nil
}

func builtinLapply(exec *Execution, args *Args) (Value, error) {
	results, err := applyEach(exec, args)
	if err != nil {
		return NewNull(), err
	}
	exec.visible = true
	return listOwned(results), nil
}

// builtinSapply simplifies to an atomic vector when every result is a
// length-one atomic value, and falls back to a list otherwise.
func builtinSapply(exec *Execution, args *Args) (Value, error) {
	results, err := applyEach(exec, args)
	if err != nil {
		return NewNull(), err
	}
	exec.visible = true
	if len(results) == 0 {
		return listOwned(results), nil
	}
	for _, r := range results {
		if !r.IsAtomic() || r.Len() != 1 {
			return listOwned(results), nil
		}
	}
	return combineValues(results), nil
}
