package vecs

func NewNull() Value { return Value{kind: KindNull} }

func NewNumeric(values ...float64) Value {
	return Value{kind: KindNumeric, data: append([]float64{}, values...)}
}

func NewLogical(values ...bool) Value {
	return Value{kind: KindLogical, data: append([]bool{}, values...)}
}

func NewCharacter(values ...string) Value {
	return Value{kind: KindCharacter, data: append([]string{}, values...)}
}

func NewList(values ...Value) Value {
	return Value{kind: KindList, data: append([]Value{}, values...)}
}

func NewClosure(c *Closure) Value {
	return Value{kind: KindClosure, data: c}
}

func NewBuiltin(name string, params []ParamSpec[Value], fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Params: params, Fn: fn}}
}

// numericOwned wraps a slice the caller will not touch again.
func numericOwned(values []float64) Value {
	return Value{kind: KindNumeric, data: values}
}

func logicalOwned(values []bool) Value {
	return Value{kind: KindLogical, data: values}
}

func characterOwned(values []string) Value {
	return Value{kind: KindCharacter, data: values}
}

func listOwned(values []Value) Value {
	return Value{kind: KindList, data: values}
}

func newDots(args []CallArg[Value]) Value {
	return Value{kind: KindDots, data: append([]CallArg[Value]{}, args...)}
}

// Param builders used when declaring builtin signatures.

func required(name string) ParamSpec[Value] {
	return ParamSpec[Value]{Name: name}
}

func optional(name string, def Value) ParamSpec[Value] {
	return ParamSpec[Value]{Name: name, HasDefault: true, Default: def}
}

func dotsParam() ParamSpec[Value] {
	return ParamSpec[Value]{Name: DotsName}
}
