package vecs

import (
	"fmt"
	"math"
)

func (exec *Execution) evalUnary(e *UnaryExpr, env *Env) (Value, error) {
	right, err := exec.evalExpr(e.Right, env)
	if err != nil {
		return NewNull(), err
	}
	exec.visible = true

	switch e.Operator {
	case tokenMinus, tokenPlus:
		if right.Kind() != KindNumeric && right.Kind() != KindLogical {
			return NewNull(), exec.errorAt(e.Pos(), "invalid argument to unary operator")
		}
		nums, _ := right.AsNumbers()
		out := make([]float64, len(nums))
		for i, n := range nums {
			if e.Operator == tokenMinus {
				out[i] = -n
			} else {
				out[i] = n
			}
		}
		return numericOwned(out), nil
	case tokenBang:
		if right.Kind() != KindNumeric && right.Kind() != KindLogical {
			return NewNull(), exec.errorAt(e.Pos(), "invalid argument type")
		}
		bools, err := right.AsLogicals()
		if err != nil {
			return NewNull(), exec.wrapError(err, e.Pos())
		}
		out := make([]bool, len(bools))
		for i, b := range bools {
			out[i] = !b
		}
		return logicalOwned(out), nil
	default:
		return NewNull(), exec.errorAt(e.Pos(), "unsupported unary operator %s", e.Operator)
	}
}

func (exec *Execution) evalBinary(e *BinaryExpr, env *Env) (Value, error) {
	if e.Operator == tokenAndAnd || e.Operator == tokenOrOr {
		return exec.evalShortCircuit(e, env)
	}

	left, err := exec.evalExpr(e.Left, env)
	if err != nil {
		return NewNull(), err
	}
	right, err := exec.evalExpr(e.Right, env)
	if err != nil {
		return NewNull(), err
	}
	exec.visible = true

	var result Value
	switch e.Operator {
	case tokenPlus, tokenMinus, tokenAsterisk, tokenSlash, tokenCaret:
		result, err = exec.arithmetic(e, left, right)
	case tokenSpecial:
		switch e.Special {
		case "%%", "%/%":
			result, err = exec.arithmetic(e, left, right)
		case "%in%":
			result, err = valueIn(left, right)
		default:
			err = fmt.Errorf("could not find function \"%s\"", e.Special)
		}
	case tokenEQ, tokenNotEQ, tokenLT, tokenLTE, tokenGT, tokenGTE:
		result, err = exec.compare(e, left, right)
	case tokenAnd, tokenOr:
		result, err = exec.elementwiseLogical(e, left, right)
	case tokenColon:
		result, err = colonRange(left, right)
	default:
		err = fmt.Errorf("unsupported operator %s", e.Operator)
	}
	if err != nil {
		return NewNull(), exec.wrapError(err, e.Pos())
	}
	return result, nil
}

// recycledLength returns the length of an elementwise result and warns when
// the shorter operand does not divide the longer one.
func (exec *Execution) recycledLength(pos Position, n, m int) int {
	if n == 0 || m == 0 {
		return 0
	}
	longer, shorter := max(n, m), min(n, m)
	if longer%shorter != 0 {
		exec.Warn(pos, "longer object length is not a multiple of shorter object length")
	}
	return longer
}

func (exec *Execution) arithmetic(e *BinaryExpr, left, right Value) (Value, error) {
	if !isArithmeticOperand(left) || !isArithmeticOperand(right) {
		return NewNull(), fmt.Errorf("non-numeric argument to binary operator")
	}
	a, _ := left.AsNumbers()
	b, _ := right.AsNumbers()
	n := exec.recycledLength(e.Pos(), len(a), len(b))
	out := make([]float64, n)
	op := e.Operator
	if op == tokenSpecial {
		op = TokenType(e.Special)
	}
	for i := 0; i < n; i++ {
		x, y := a[i%len(a)], b[i%len(b)]
		switch op {
		case tokenPlus:
			out[i] = x + y
		case tokenMinus:
			out[i] = x - y
		case tokenAsterisk:
			out[i] = x * y
		case tokenSlash:
			out[i] = x / y
		case tokenCaret:
			out[i] = math.Pow(x, y)
		case "%%":
			out[i] = floorMod(x, y)
		case "%/%":
			out[i] = math.Floor(x / y)
		}
	}
	return numericOwned(out), nil
}

func isArithmeticOperand(v Value) bool {
	switch v.Kind() {
	case KindNumeric, KindLogical, KindNull:
		return true
	default:
		return false
	}
}

// floorMod follows the sign of the divisor, as %% does.
func floorMod(x, y float64) float64 {
	if y == 0 {
		return math.NaN()
	}
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func (exec *Execution) compare(e *BinaryExpr, left, right Value) (Value, error) {
	if !left.IsAtomic() && !left.IsNull() || !right.IsAtomic() && !right.IsNull() {
		return NewNull(), fmt.Errorf("comparison is possible only for atomic types")
	}
	if left.Kind() == KindCharacter || right.Kind() == KindCharacter {
		a, b := left.AsStrings(), right.AsStrings()
		n := exec.recycledLength(e.Pos(), len(a), len(b))
		out := make([]bool, n)
		for i := 0; i < n; i++ {
			out[i] = compareOrdered(e.Operator, a[i%len(a)], b[i%len(b)])
		}
		return logicalOwned(out), nil
	}
	a, _ := left.AsNumbers()
	b, _ := right.AsNumbers()
	n := exec.recycledLength(e.Pos(), len(a), len(b))
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = compareOrdered(e.Operator, a[i%len(a)], b[i%len(b)])
	}
	return logicalOwned(out), nil
}

func compareOrdered[T float64 | string](op TokenType, x, y T) bool {
	switch op {
	case tokenEQ:
		return x == y
	case tokenNotEQ:
		return x != y
	case tokenLT:
		return x < y
	case tokenLTE:
		return x <= y
	case tokenGT:
		return x > y
	case tokenGTE:
		return x >= y
	default:
		return false
	}
}

func (exec *Execution) elementwiseLogical(e *BinaryExpr, left, right Value) (Value, error) {
	if left.Kind() == KindCharacter || right.Kind() == KindCharacter {
		return NewNull(), fmt.Errorf("operations are possible only for numeric or logical types")
	}
	a, err := left.AsLogicals()
	if err != nil {
		return NewNull(), err
	}
	b, err := right.AsLogicals()
	if err != nil {
		return NewNull(), err
	}
	n := exec.recycledLength(e.Pos(), len(a), len(b))
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		if e.Operator == tokenAnd {
			out[i] = a[i%len(a)] && b[i%len(b)]
		} else {
			out[i] = a[i%len(a)] || b[i%len(b)]
		}
	}
	return logicalOwned(out), nil
}

func (exec *Execution) evalShortCircuit(e *BinaryExpr, env *Env) (Value, error) {
	left, err := exec.scalarLogical(e.Left, env, e.Operator)
	if err != nil {
		return NewNull(), err
	}
	exec.visible = true
	if e.Operator == tokenAndAnd && !left {
		return NewLogical(false), nil
	}
	if e.Operator == tokenOrOr && left {
		return NewLogical(true), nil
	}
	right, err := exec.scalarLogical(e.Right, env, e.Operator)
	if err != nil {
		return NewNull(), err
	}
	exec.visible = true
	return NewLogical(right), nil
}

func (exec *Execution) scalarLogical(expr Expression, env *Env, op TokenType) (bool, error) {
	val, err := exec.evalExpr(expr, env)
	if err != nil {
		return false, err
	}
	if val.Len() != 1 {
		return false, exec.errorAt(expr.Pos(), "'length = %d' in coercion to 'logical(1)' for %s", val.Len(), op)
	}
	if val.Kind() != KindLogical && val.Kind() != KindNumeric {
		return false, exec.errorAt(expr.Pos(), "invalid '%s' type in 'x %s y'", val.Kind(), op)
	}
	bools, err := val.AsLogicals()
	if err != nil {
		return false, exec.wrapError(err, expr.Pos())
	}
	return bools[0], nil
}

func colonRange(left, right Value) (Value, error) {
	if left.Len() == 0 || right.Len() == 0 {
		return NewNull(), fmt.Errorf("argument of length 0")
	}
	a, err := left.AsNumbers()
	if err != nil {
		return NewNull(), err
	}
	b, err := right.AsNumbers()
	if err != nil {
		return NewNull(), err
	}
	from, to := a[0], b[0]
	if math.IsNaN(from) || math.IsNaN(to) || math.Abs(to-from) > maxVectorLength {
		return NewNull(), fmt.Errorf("result would be too long a vector")
	}
	var out []float64
	if from <= to {
		for v := from; v <= to; v++ {
			out = append(out, v)
		}
	} else {
		for v := from; v >= to; v-- {
			out = append(out, v)
		}
	}
	return numericOwned(out), nil
}

func valueIn(left, right Value) (Value, error) {
	if !left.IsAtomic() && !left.IsNull() || !right.IsAtomic() && !right.IsNull() {
		return NewNull(), fmt.Errorf("'match' requires vector arguments")
	}
	table := make(map[string]bool, right.Len())
	for _, s := range right.AsStrings() {
		table[s] = true
	}
	items := left.AsStrings()
	out := make([]bool, len(items))
	for i, s := range items {
		out[i] = table[s]
	}
	return logicalOwned(out), nil
}
