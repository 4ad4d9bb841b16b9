package vecs

type ValueKind int

const (
	KindNull ValueKind = iota
	KindLogical
	KindNumeric
	KindCharacter
	KindList
	KindClosure
	KindBuiltin
	// KindDots carries the arguments collected by a frame's ... parameter.
	KindDots
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindLogical:
		return "logical"
	case KindNumeric:
		return "numeric"
	case KindCharacter:
		return "character"
	case KindList:
		return "list"
	case KindClosure:
		return "closure"
	case KindBuiltin:
		return "builtin"
	case KindDots:
		return "..."
	default:
		return "unknown"
	}
}

// Value is an immutable runtime value. Atomic kinds are always vectors; a
// scalar is a vector of length one.
type Value struct {
	kind ValueKind
	data any
}

// Closure is a user-defined function together with the environment it was
// defined in.
type Closure struct {
	Name   string
	Params []Param
	Body   Expression
	Env    *Env
	Source string
}

// Builtin is a host function. Params is bound against call-site arguments
// exactly as a closure's formals are.
type Builtin struct {
	Name   string
	Params []ParamSpec[Value]
	Fn     BuiltinFunc
}

type BuiltinFunc func(exec *Execution, args *Args) (Value, error)

// Signature returns the parameter specs used to bind calls to the builtin.
func (b *Builtin) Signature() []ParamSpec[Value] {
	return b.Params
}

// ParamNames lists the closure's formal parameter names in order.
func (c *Closure) ParamNames() []string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name
	}
	return names
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) IsFunction() bool {
	return v.kind == KindClosure || v.kind == KindBuiltin
}

func (v Value) IsAtomic() bool {
	switch v.kind {
	case KindLogical, KindNumeric, KindCharacter:
		return true
	default:
		return false
	}
}

// Len reports the vector length; NULL has length zero and functions have
// length one.
func (v Value) Len() int {
	switch v.kind {
	case KindNull:
		return 0
	case KindLogical:
		return len(v.data.([]bool))
	case KindNumeric:
		return len(v.data.([]float64))
	case KindCharacter:
		return len(v.data.([]string))
	case KindList:
		return len(v.data.([]Value))
	case KindDots:
		return len(v.data.([]CallArg[Value]))
	default:
		return 1
	}
}
