package vecs

import (
	"fmt"
	"math"
)

// maxVectorLength bounds vectors built by ranges, seq, rep and index
// assignment.
const maxVectorLength = 10_000_000

func (exec *Execution) evalIndex(e *IndexExpr, env *Env) (Value, error) {
	object, err := exec.evalExpr(e.Object, env)
	if err != nil {
		return NewNull(), err
	}
	index, err := exec.evalExpr(e.Index, env)
	if err != nil {
		return NewNull(), err
	}
	exec.visible = true

	var result Value
	if e.Double {
		result, err = extractElement(object, index)
	} else {
		result, err = subsetVector(object, index)
	}
	if err != nil {
		return NewNull(), exec.wrapError(err, e.Pos())
	}
	return result, nil
}

// resolveIndices turns an index vector into 0-based positions of a vector of
// length n. Positive indices select, negative ones exclude and a logical
// index is recycled as a mask. Positions may exceed n.
func resolveIndices(index Value, n int) ([]int, error) {
	switch index.Kind() {
	case KindNull:
		return []int{}, nil
	case KindLogical:
		mask := index.Logicals()
		if len(mask) == 0 {
			return []int{}, nil
		}
		var out []int
		for i := 0; i < max(n, len(mask)); i++ {
			if mask[i%len(mask)] {
				out = append(out, i)
			}
		}
		return out, nil
	case KindNumeric:
		nums := index.Numerics()
		positive, negative := false, false
		for _, f := range nums {
			if math.IsNaN(f) {
				return nil, fmt.Errorf("missing subscript")
			}
			if f >= 1 {
				positive = true
			} else if f <= -1 {
				negative = true
			}
		}
		if positive && negative {
			return nil, fmt.Errorf("can't mix positive and negative subscripts")
		}
		if negative {
			excluded := make(map[int]bool, len(nums))
			for _, f := range nums {
				excluded[int(-f)-1] = true
			}
			out := make([]int, 0, n)
			for i := 0; i < n; i++ {
				if !excluded[i] {
					out = append(out, i)
				}
			}
			return out, nil
		}
		out := make([]int, 0, len(nums))
		for _, f := range nums {
			if f >= 1 {
				if f > maxVectorLength {
					return nil, fmt.Errorf("subscript too large")
				}
				out = append(out, int(f)-1)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid subscript type '%s'", index.Kind())
	}
}

func subsetVector(object, index Value) (Value, error) {
	if object.IsNull() {
		return NewNull(), nil
	}
	if !object.IsAtomic() && object.Kind() != KindList {
		return NewNull(), fmt.Errorf("object of type '%s' is not subsettable", object.Kind())
	}
	positions, err := resolveIndices(index, object.Len())
	if err != nil {
		return NewNull(), err
	}
	n := object.Len()
	for _, p := range positions {
		if p >= n {
			return NewNull(), fmt.Errorf("subscript out of bounds")
		}
	}
	switch object.Kind() {
	case KindNumeric:
		return numericOwned(pick(object.Numerics(), positions)), nil
	case KindLogical:
		return logicalOwned(pick(object.Logicals(), positions)), nil
	case KindCharacter:
		return characterOwned(pick(object.Strings(), positions)), nil
	default:
		return listOwned(pick(object.List(), positions)), nil
	}
}

func pick[T any](src []T, positions []int) []T {
	out := make([]T, len(positions))
	for i, p := range positions {
		out[i] = src[p]
	}
	return out
}

func extractElement(object, index Value) (Value, error) {
	pos, err := singleIndex(index)
	if err != nil {
		return NewNull(), err
	}
	if !object.IsAtomic() && object.Kind() != KindList {
		return NewNull(), fmt.Errorf("object of type '%s' is not subsettable", object.Kind())
	}
	if pos >= object.Len() {
		return NewNull(), fmt.Errorf("subscript out of bounds")
	}
	return object.Element(pos), nil
}

func singleIndex(index Value) (int, error) {
	if index.Kind() != KindNumeric || index.Len() != 1 {
		return 0, fmt.Errorf("[[ ]] requires a single positive numeric subscript")
	}
	f := index.Numerics()[0]
	if f < 1 || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid subscript %s", formatNumber(f))
	}
	if f > maxVectorLength {
		return 0, fmt.Errorf("subscript too large")
	}
	return int(f) - 1, nil
}

// assignIndex returns a copy of current with the indexed elements replaced
// by value. Writing past the end extends the vector with zero values.
func assignIndex(current, index, value Value, double bool) (Value, error) {
	if current.IsFunction() {
		return NewNull(), fmt.Errorf("object of type '%s' is not subsettable", current.Kind())
	}
	if !value.IsAtomic() && value.Kind() != KindList && !value.IsNull() && !double {
		return NewNull(), fmt.Errorf("incompatible types in subassignment")
	}

	var positions []int
	if double {
		pos, err := singleIndex(index)
		if err != nil {
			return NewNull(), err
		}
		positions = []int{pos}
	} else {
		var err error
		positions, err = resolveIndices(index, current.Len())
		if err != nil {
			return NewNull(), err
		}
	}
	if len(positions) == 0 {
		return current, nil
	}

	size := current.Len()
	for _, p := range positions {
		size = max(size, p+1)
	}

	kind := current.Kind()
	asList := kind == KindList || value.Kind() == KindList || (double && !value.IsAtomic())
	if asList {
		items := make([]Value, size)
		for i := range items {
			items[i] = NewNull()
		}
		for i := 0; i < current.Len(); i++ {
			items[i] = current.Element(i)
		}
		if double {
			items[positions[0]] = value
			return listOwned(items), nil
		}
		if value.Len() == 0 {
			return NewNull(), fmt.Errorf("replacement has length zero")
		}
		for i, p := range positions {
			items[p] = value.Element(i % value.Len())
		}
		return listOwned(items), nil
	}

	if value.Len() == 0 {
		return NewNull(), fmt.Errorf("replacement has length zero")
	}
	kind = higherKind(kind, value.Kind())
	switch kind {
	case KindCharacter:
		out := make([]string, size)
		copy(out, current.AsStrings())
		src := value.AsStrings()
		for i, p := range positions {
			out[p] = src[i%len(src)]
		}
		return characterOwned(out), nil
	case KindNumeric:
		out := make([]float64, size)
		cur, _ := current.AsNumbers()
		copy(out, cur)
		src, _ := value.AsNumbers()
		for i, p := range positions {
			out[p] = src[i%len(src)]
		}
		return numericOwned(out), nil
	default:
		out := make([]bool, size)
		cur, _ := current.AsLogicals()
		copy(out, cur)
		src, _ := value.AsLogicals()
		for i, p := range positions {
			out[p] = src[i%len(src)]
		}
		return logicalOwned(out), nil
	}
}

// higherKind orders atomic kinds for coercion: logical < numeric <
// character. NULL yields to anything.
func higherKind(a, b ValueKind) ValueKind {
	rank := func(k ValueKind) int {
		switch k {
		case KindLogical:
			return 1
		case KindNumeric:
			return 2
		case KindCharacter:
			return 3
		default:
			return 0
		}
	}
	if rank(a) >= rank(b) {
		return a
	}
	return b
}
