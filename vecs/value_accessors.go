package vecs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Numerics returns the backing slice of a numeric vector. Callers must not
// modify it.
func (v Value) Numerics() []float64 {
	if v.kind != KindNumeric {
		return nil
	}
	return v.data.([]float64)
}

func (v Value) Logicals() []bool {
	if v.kind != KindLogical {
		return nil
	}
	return v.data.([]bool)
}

func (v Value) Strings() []string {
	if v.kind != KindCharacter {
		return nil
	}
	return v.data.([]string)
}

func (v Value) List() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.data.([]Value)
}

func (v Value) Closure() *Closure {
	if v.kind != KindClosure {
		return nil
	}
	return v.data.(*Closure)
}

func (v Value) Builtin() *Builtin {
	if v.kind != KindBuiltin {
		return nil
	}
	return v.data.(*Builtin)
}

func (v Value) dotsArgs() []CallArg[Value] {
	if v.kind != KindDots {
		return nil
	}
	return v.data.([]CallArg[Value])
}

// Element returns the i-th element (0-based) as a length-one value.
func (v Value) Element(i int) Value {
	switch v.kind {
	case KindLogical:
		return NewLogical(v.Logicals()[i])
	case KindNumeric:
		return NewNumeric(v.Numerics()[i])
	case KindCharacter:
		return NewCharacter(v.Strings()[i])
	case KindList:
		return v.List()[i]
	default:
		return v
	}
}

// AsNumbers coerces an atomic vector to doubles.
func (v Value) AsNumbers() ([]float64, error) {
	switch v.kind {
	case KindNull:
		return []float64{}, nil
	case KindNumeric:
		return v.Numerics(), nil
	case KindLogical:
		src := v.Logicals()
		out := make([]float64, len(src))
		for i, b := range src {
			if b {
				out[i] = 1
			}
		}
		return out, nil
	case KindCharacter:
		src := v.Strings()
		out := make([]float64, len(src))
		for i, s := range src {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot coerce %q to numeric", s)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot coerce %s to numeric", v.kind)
	}
}

func (v Value) AsLogicals() ([]bool, error) {
	switch v.kind {
	case KindNull:
		return []bool{}, nil
	case KindLogical:
		return v.Logicals(), nil
	case KindNumeric:
		src := v.Numerics()
		out := make([]bool, len(src))
		for i, f := range src {
			if math.IsNaN(f) {
				return nil, fmt.Errorf("cannot coerce NaN to logical")
			}
			out[i] = f != 0
		}
		return out, nil
	case KindCharacter:
		src := v.Strings()
		out := make([]bool, len(src))
		for i, s := range src {
			switch s {
			case "TRUE", "true", "T", "True":
				out[i] = true
			case "FALSE", "false", "F", "False":
				out[i] = false
			default:
				return nil, fmt.Errorf("cannot coerce %q to logical", s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot coerce %s to logical", v.kind)
	}
}

func (v Value) AsStrings() []string {
	switch v.kind {
	case KindCharacter:
		return v.Strings()
	case KindNumeric:
		src := v.Numerics()
		out := make([]string, len(src))
		for i, f := range src {
			out[i] = formatNumber(f)
		}
		return out
	case KindLogical:
		src := v.Logicals()
		out := make([]string, len(src))
		for i, b := range src {
			out[i] = formatLogical(b)
		}
		return out
	case KindList:
		src := v.List()
		out := make([]string, len(src))
		for i, item := range src {
			out[i] = strings.Join(item.AsStrings(), " ")
		}
		return out
	case KindNull:
		return []string{}
	default:
		return []string{v.String()}
	}
}

// Equal reports structural identity, as identical() does.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindNumeric:
		a, b := v.Numerics(), other.Numerics()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
				return false
			}
		}
		return true
	case KindLogical:
		a, b := v.Logicals(), other.Logicals()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case KindCharacter:
		a, b := v.Strings(), other.Strings()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case KindList:
		a, b := v.List(), other.List()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindClosure:
		return v.Closure() == other.Closure()
	case KindBuiltin:
		return v.Builtin() == other.Builtin()
	default:
		return false
	}
}
