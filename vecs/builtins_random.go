package vecs

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// newRandom returns a PCG generator. A nil seed draws one from the runtime's
// entropy source.
func newRandom(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
}

func registerRandomBuiltins(e *Engine) {
	e.RegisterBuiltin("runif", []ParamSpec[Value]{
		required("n"),
		optional("min", NewNumeric(0)),
		optional("max", NewNumeric(1)),
	}, builtinRunif)
	e.RegisterBuiltin("rnorm", []ParamSpec[Value]{
		required("n"),
		optional("mean", NewNumeric(0)),
		optional("sd", NewNumeric(1)),
	}, builtinRnorm)
	e.RegisterBuiltin("set.seed", []ParamSpec[Value]{required("seed")}, builtinSetSeed)
}

func drawCount(args *Args) (int, error) {
	n, err := args.Int("n")
	if err != nil {
		return 0, err
	}
	if n < 0 || n > maxVectorLength {
		return 0, fmt.Errorf("invalid arguments")
	}
	return n, nil
}

func builtinRunif(exec *Execution, args *Args) (Value, error) {
	n, err := drawCount(args)
	if err != nil {
		return NewNull(), err
	}
	lo, err := args.Number("min")
	if err != nil {
		return NewNull(), err
	}
	hi, err := args.Number("max")
	if err != nil {
		return NewNull(), err
	}
	if hi < lo || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		exec.Warn(args.Pos, "NAs produced")
		out := make([]float64, n)
		for i := range out {
			out[i] = math.NaN()
		}
		return numericOwned(out), nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*exec.rng.Float64()
	}
	return numericOwned(out), nil
}

func builtinRnorm(exec *Execution, args *Args) (Value, error) {
	n, err := drawCount(args)
	if err != nil {
		return NewNull(), err
	}
	mean, err := args.Number("mean")
	if err != nil {
		return NewNull(), err
	}
	sd, err := args.Number("sd")
	if err != nil {
		return NewNull(), err
	}
	if sd < 0 {
		exec.Warn(args.Pos, "NAs produced")
		sd = math.NaN()
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + sd*exec.rng.NormFloat64()
	}
	return numericOwned(out), nil
}

func builtinSetSeed(exec *Execution, args *Args) (Value, error) {
	seed, err := args.Number("seed")
	if err != nil {
		return NewNull(), err
	}
	if math.IsNaN(seed) || math.IsInf(seed, 0) {
		return NewNull(), fmt.Errorf("supplied seed is not a valid integer")
	}
	s := uint64(int64(seed))
	exec.rng = newRandom(&s)
	exec.SetInvisible()
	return NewNull(), nil
}
