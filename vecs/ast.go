package vecs

type Node interface {
	Pos() Position
}

// Expression is any node of the syntax tree; the language has no statements
// that are not also expressions.
type Expression interface {
	Node
	exprNode()
}

type Program struct {
	Exprs []Expression
}

func (p *Program) Pos() Position {
	if len(p.Exprs) == 0 {
		return Position{}
	}
	return p.Exprs[0].Pos()
}

// Param is a formal parameter of a function literal. Default is nil when the
// parameter has no default expression.
type Param struct {
	Name    string
	Default Expression
}

type FunctionLiteral struct {
	Params   []Param
	Body     Expression
	Source   string
	position Position
}

func (e *FunctionLiteral) exprNode()     {}
func (e *FunctionLiteral) Pos() Position { return e.position }

type Identifier struct {
	Name     string
	position Position
}

func (e *Identifier) exprNode()     {}
func (e *Identifier) Pos() Position { return e.position }

type NumberLiteral struct {
	Value    float64
	position Position
}

func (e *NumberLiteral) exprNode()     {}
func (e *NumberLiteral) Pos() Position { return e.position }

type StringLiteral struct {
	Value    string
	position Position
}

func (e *StringLiteral) exprNode()     {}
func (e *StringLiteral) Pos() Position { return e.position }

type LogicalLiteral struct {
	Value    bool
	position Position
}

func (e *LogicalLiteral) exprNode()     {}
func (e *LogicalLiteral) Pos() Position { return e.position }

type NullLiteral struct {
	position Position
}

func (e *NullLiteral) exprNode()     {}
func (e *NullLiteral) Pos() Position { return e.position }

type UnaryExpr struct {
	Operator TokenType
	Right    Expression
	position Position
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.position }

// BinaryExpr covers arithmetic, comparison, logical, range and %op%
// operators. Special carries the literal of a %op% operator.
type BinaryExpr struct {
	Left     Expression
	Operator TokenType
	Special  string
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

type AssignExpr struct {
	Target   Expression
	Value    Expression
	Super    bool
	position Position
}

func (e *AssignExpr) exprNode()     {}
func (e *AssignExpr) Pos() Position { return e.position }

// CallArgument is one argument at a call site. Name is empty for positional
// arguments.
type CallArgument struct {
	Name  string
	Value Expression
}

type CallExpr struct {
	Callee   Expression
	Args     []CallArgument
	position Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }

// IndexExpr is x[i] or, when Double is set, x[[i]].
type IndexExpr struct {
	Object   Expression
	Index    Expression
	Double   bool
	position Position
}

func (e *IndexExpr) exprNode()     {}
func (e *IndexExpr) Pos() Position { return e.position }

type BlockExpr struct {
	Exprs    []Expression
	position Position
}

func (e *BlockExpr) exprNode()     {}
func (e *BlockExpr) Pos() Position { return e.position }

type IfExpr struct {
	Condition  Expression
	Consequent Expression
	Alternate  Expression
	position   Position
}

func (e *IfExpr) exprNode()     {}
func (e *IfExpr) Pos() Position { return e.position }

type ForExpr struct {
	Iterator string
	Iterable Expression
	Body     Expression
	position Position
}

func (e *ForExpr) exprNode()     {}
func (e *ForExpr) Pos() Position { return e.position }

type WhileExpr struct {
	Condition Expression
	Body      Expression
	position  Position
}

func (e *WhileExpr) exprNode()     {}
func (e *WhileExpr) Pos() Position { return e.position }

type RepeatExpr struct {
	Body     Expression
	position Position
}

func (e *RepeatExpr) exprNode()     {}
func (e *RepeatExpr) Pos() Position { return e.position }

type BreakExpr struct {
	position Position
}

func (e *BreakExpr) exprNode()     {}
func (e *BreakExpr) Pos() Position { return e.position }

type NextExpr struct {
	position Position
}

func (e *NextExpr) exprNode()     {}
func (e *NextExpr) Pos() Position { return e.position }
