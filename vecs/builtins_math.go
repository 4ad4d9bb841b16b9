package vecs

import (
	"fmt"
	"math"
)

func registerMathBuiltins(e *Engine) {
	e.RegisterBuiltin("sum", []ParamSpec[Value]{dotsParam(), optional("na.rm", NewLogical(false))}, builtinSum)
	e.RegisterBuiltin("mean", []ParamSpec[Value]{required("x"), dotsParam()}, builtinMean)
	e.RegisterBuiltin("max", []ParamSpec[Value]{dotsParam(), optional("na.rm", NewLogical(false))}, extremum("max", math.Inf(-1), func(a, b float64) bool { return a > b }))
	e.RegisterBuiltin("min", []ParamSpec[Value]{dotsParam(), optional("na.rm", NewLogical(false))}, extremum("min", math.Inf(1), func(a, b float64) bool { return a < b }))
	e.RegisterBuiltin("sqrt", []ParamSpec[Value]{required("x")}, elementwise("sqrt", math.Sqrt))
	e.RegisterBuiltin("abs", []ParamSpec[Value]{required("x")}, elementwise("abs", math.Abs))
	e.RegisterBuiltin("exp", []ParamSpec[Value]{required("x")}, elementwise("exp", math.Exp))
	e.RegisterBuiltin("floor", []ParamSpec[Value]{required("x")}, elementwise("floor", math.Floor))
	e.RegisterBuiltin("ceiling", []ParamSpec[Value]{required("x")}, elementwise("ceiling", math.Ceil))
	e.RegisterBuiltin("log", []ParamSpec[Value]{required("x"), optional("base", NewNumeric(math.E))}, builtinLog)
	e.RegisterBuiltin("round", []ParamSpec[Value]{required("x"), optional("digits", NewNumeric(0))}, builtinRound)
	e.RegisterBuiltin("seq_len", []ParamSpec[Value]{required("length.out")}, builtinSeqLen)
	e.RegisterBuiltin("seq_along", []ParamSpec[Value]{required("along.with")}, builtinSeqAlong)
	e.RegisterBuiltin("seq", []ParamSpec[Value]{
		optional("from", NewNumeric(1)),
		optional("to", NewNumeric(1)),
		optional("by", NewNumeric(1)),
	}, builtinSeq)
	e.RegisterBuiltin("rep", []ParamSpec[Value]{required("x"), optional("times", NewNumeric(1))}, builtinRep)
}

// numericArgument coerces a logical or numeric argument for arithmetic
// builtins.
func numericArgument(fn string, v Value) ([]float64, error) {
	if v.Kind() != KindNumeric && v.Kind() != KindLogical && !v.IsNull() {
		return nil, fmt.Errorf("non-numeric argument to %s", fn)
	}
	return v.AsNumbers()
}

func builtinSum(exec *Execution, args *Args) (Value, error) {
	naRM, err := args.Bool("na.rm")
	if err != nil {
		return NewNull(), err
	}
	total := 0.0
	for _, v := range args.DotValues() {
		nums, err := numericArgument("sum", v)
		if err != nil {
			return NewNull(), err
		}
		for _, f := range nums {
			if naRM && math.IsNaN(f) {
				continue
			}
			total += f
		}
	}
	return NewNumeric(total), nil
}

func builtinMean(exec *Execution, args *Args) (Value, error) {
	x := args.Get("x")
	if x.Kind() != KindNumeric && x.Kind() != KindLogical {
		exec.Warn(args.Pos, "argument is not numeric or logical: returning NaN")
		return NewNumeric(math.NaN()), nil
	}
	nums, _ := x.AsNumbers()
	if len(nums) == 0 {
		return NewNumeric(math.NaN()), nil
	}
	total := 0.0
	for _, f := range nums {
		total += f
	}
	return NewNumeric(total / float64(len(nums))), nil
}

func extremum(name string, empty float64, better func(a, b float64) bool) BuiltinFunc {
	return func(exec *Execution, args *Args) (Value, error) {
		naRM, err := args.Bool("na.rm")
		if err != nil {
			return NewNull(), err
		}
		best := empty
		seen := false
		for _, v := range args.DotValues() {
			nums, err := numericArgument(name, v)
			if err != nil {
				return NewNull(), err
			}
			for _, f := range nums {
				if math.IsNaN(f) {
					if naRM {
						continue
					}
					return NewNumeric(math.NaN()), nil
				}
				if !seen || better(f, best) {
					best = f
					seen = true
				}
			}
		}
		if !seen {
			exec.Warn(args.Pos, "no non-missing arguments to %s; returning %s", name, formatNumber(empty))
		}
		return NewNumeric(best), nil
	}
}

func elementwise(name string, fn func(float64) float64) BuiltinFunc {
	return func(exec *Execution, args *Args) (Value, error) {
		nums, err := numericArgument(name, args.Get("x"))
		if err != nil {
			return NewNull(), err
		}
		out := make([]float64, len(nums))
		produced := false
		for i, f := range nums {
			out[i] = fn(f)
			if math.IsNaN(out[i]) && !math.IsNaN(f) {
				produced = true
			}
		}
		if produced {
			exec.Warn(args.Pos, "NaNs produced")
		}
		return numericOwned(out), nil
	}
}

func builtinLog(exec *Execution, args *Args) (Value, error) {
	nums, err := numericArgument("log", args.Get("x"))
	if err != nil {
		return NewNull(), err
	}
	base, err := args.Number("base")
	if err != nil {
		return NewNull(), err
	}
	out := make([]float64, len(nums))
	produced := false
	for i, f := range nums {
		switch base {
		case math.E:
			out[i] = math.Log(f)
		case 2:
			out[i] = math.Log2(f)
		case 10:
			out[i] = math.Log10(f)
		default:
			out[i] = math.Log(f) / math.Log(base)
		}
		if math.IsNaN(out[i]) && !math.IsNaN(f) {
			produced = true
		}
	}
	if produced {
		exec.Warn(args.Pos, "NaNs produced")
	}
	return numericOwned(out), nil
}

// builtinRound rounds half to even, matching IEC 60559.
func builtinRound(exec *Execution, args *Args) (Value, error) {
	nums, err := numericArgument("round", args.Get("x"))
	if err != nil {
		return NewNull(), err
	}
	digits, err := args.Int("digits")
	if err != nil {
		return NewNull(), err
	}
	scale := math.Pow(10, float64(digits))
	out := make([]float64, len(nums))
	for i, f := range nums {
		out[i] = math.RoundToEven(f*scale) / scale
	}
	return numericOwned(out), nil
}

func sequence(n int) Value {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return numericOwned(out)
}

func builtinSeqLen(exec *Execution, args *Args) (Value, error) {
	n, err := args.Number("length.out")
	if err != nil {
		return NewNull(), err
	}
	if n < 0 || math.IsNaN(n) {
		return NewNull(), fmt.Errorf("argument of length.out must be coercible to non-negative integer")
	}
	if n > maxVectorLength {
		return NewNull(), fmt.Errorf("result would be too long a vector")
	}
	return sequence(int(math.Ceil(n))), nil
}

func builtinSeqAlong(exec *Execution, args *Args) (Value, error) {
	return sequence(args.Get("along.with").Len()), nil
}

func builtinSeq(exec *Execution, args *Args) (Value, error) {
	from, err := args.Number("from")
	if err != nil {
		return NewNull(), err
	}
	to, err := args.Number("to")
	if err != nil {
		return NewNull(), err
	}
	by, err := args.Number("by")
	if err != nil {
		return NewNull(), err
	}
	if !args.Supplied("by") && to < from {
		by = -1
	}
	if by == 0 || math.IsNaN(by) {
		if from == to {
			return NewNumeric(from), nil
		}
		return NewNull(), fmt.Errorf("invalid '(to - from)/by' in seq(.)")
	}
	if (to-from)/by < 0 {
		return NewNull(), fmt.Errorf("wrong sign in 'by' argument")
	}
	count := math.Floor((to-from)/by+1e-10) + 1
	if count > maxVectorLength {
		return NewNull(), fmt.Errorf("result would be too long a vector")
	}
	out := make([]float64, int(count))
	for i := range out {
		out[i] = from + float64(i)*by
	}
	return numericOwned(out), nil
}

func builtinRep(exec *Execution, args *Args) (Value, error) {
	x := args.Get("x")
	times, err := args.Int("times")
	if err != nil {
		return NewNull(), err
	}
	if times < 0 {
		return NewNull(), fmt.Errorf("invalid 'times' argument")
	}
	if x.Len()*times > maxVectorLength {
		return NewNull(), fmt.Errorf("result would be too long a vector")
	}
	if x.IsFunction() {
		return NewNull(), fmt.Errorf("attempt to replicate an object of type '%s'", x.Kind())
	}
	if x.IsNull() || times == 0 {
		return subsetVector(x, NewNull())
	}
	parts := make([]Value, times)
	for i := range parts {
		parts[i] = x
	}
	if x.Kind() == KindList {
		var items []Value
		for range times {
			items = append(items, x.List()...)
		}
		return listOwned(items), nil
	}
	return combineValues(parts), nil
}
