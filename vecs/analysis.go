package vecs

import (
	"fmt"
	"sort"
)

// Finding is a static diagnostic produced by Analyze.
type Finding struct {
	Function string
	Pos      Position
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%d:%d: %s", f.Pos.Line, f.Pos.Column, f.Message)
}

// Analyze reports variables a function reads from the global frame rather
// than receiving as arguments, and expressions that follow an unconditional
// return(). Names provided by the engine are not reported. Names in call
// position are function lookups and are not reported either.
func (s *Script) Analyze() []Finding {
	a := &analyzer{engine: s.engine}
	for _, expr := range s.program.Exprs {
		a.walk(expr, nil, "")
	}
	sort.SliceStable(a.findings, func(i, j int) bool {
		pi, pj := a.findings[i].Pos, a.findings[j].Pos
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		if pi.Column != pj.Column {
			return pi.Column < pj.Column
		}
		return a.findings[i].Message < a.findings[j].Message
	})
	return a.findings
}

type analyzer struct {
	engine   *Engine
	findings []Finding
}

// scope holds the names local to one function literal.
type scope struct {
	name     string
	locals   map[string]bool
	reported map[string]bool
	parent   *scope
}

func (sc *scope) binds(name string) bool {
	for s := sc; s != nil; s = s.parent {
		if s.locals[name] {
			return true
		}
	}
	return false
}

func (a *analyzer) enterFunction(fn *FunctionLiteral, parent *scope, name string) *scope {
	if name == "" {
		name = "<anonymous>"
	}
	sc := &scope{name: name, locals: make(map[string]bool), reported: make(map[string]bool), parent: parent}
	for _, p := range fn.Params {
		sc.locals[p.Name] = true
	}
	collectLocals(fn.Body, sc.locals)
	return sc
}

// collectLocals records names a function body assigns with <- or = and its
// loop variables. Nested function literals have their own frames.
func collectLocals(expr Expression, locals map[string]bool) {
	switch e := expr.(type) {
	case *AssignExpr:
		if !e.Super {
			switch target := e.Target.(type) {
			case *Identifier:
				locals[target.Name] = true
			case *IndexExpr:
				if ident, ok := target.Object.(*Identifier); ok {
					locals[ident.Name] = true
				}
			}
		}
		collectLocals(e.Value, locals)
	case *ForExpr:
		locals[e.Iterator] = true
		collectLocals(e.Iterable, locals)
		collectLocals(e.Body, locals)
	case *BlockExpr:
		for _, inner := range e.Exprs {
			collectLocals(inner, locals)
		}
	case *IfExpr:
		collectLocals(e.Condition, locals)
		collectLocals(e.Consequent, locals)
		if e.Alternate != nil {
			collectLocals(e.Alternate, locals)
		}
	case *WhileExpr:
		collectLocals(e.Condition, locals)
		collectLocals(e.Body, locals)
	case *RepeatExpr:
		collectLocals(e.Body, locals)
	case *UnaryExpr:
		collectLocals(e.Right, locals)
	case *BinaryExpr:
		collectLocals(e.Left, locals)
		collectLocals(e.Right, locals)
	case *CallExpr:
		collectLocals(e.Callee, locals)
		for _, arg := range e.Args {
			collectLocals(arg.Value, locals)
		}
	case *IndexExpr:
		collectLocals(e.Object, locals)
		collectLocals(e.Index, locals)
	}
}

func (a *analyzer) read(name string, pos Position, sc *scope) {
	if sc == nil || name == DotsName || sc.binds(name) || a.engine.IsBuiltin(name) {
		return
	}
	if sc.reported[name] {
		return
	}
	sc.reported[name] = true
	a.findings = append(a.findings, Finding{
		Function: sc.name,
		Pos:      pos,
		Message:  fmt.Sprintf("%s depends on global variable %s", sc.name, name),
	})
}

func (a *analyzer) walk(expr Expression, sc *scope, assignedName string) {
	switch e := expr.(type) {
	case nil:
	case *Identifier:
		a.read(e.Name, e.Pos(), sc)
	case *FunctionLiteral:
		inner := a.enterFunction(e, sc, assignedName)
		for _, p := range e.Params {
			if p.Default != nil {
				a.walk(p.Default, inner, "")
			}
		}
		a.walk(e.Body, inner, "")
	case *AssignExpr:
		name := ""
		switch target := e.Target.(type) {
		case *Identifier:
			name = target.Name
		case *IndexExpr:
			if e.Super {
				if ident, ok := target.Object.(*Identifier); ok {
					a.read(ident.Name, ident.Pos(), sc)
				}
			}
			a.walk(target.Index, sc, "")
		}
		a.walk(e.Value, sc, name)
	case *BlockExpr:
		a.walkSequence(e.Exprs, sc)
	case *IfExpr:
		a.walk(e.Condition, sc, "")
		a.walk(e.Consequent, sc, "")
		a.walk(e.Alternate, sc, "")
	case *ForExpr:
		a.walk(e.Iterable, sc, "")
		a.walk(e.Body, sc, "")
	case *WhileExpr:
		a.walk(e.Condition, sc, "")
		a.walk(e.Body, sc, "")
	case *RepeatExpr:
		a.walk(e.Body, sc, "")
	case *UnaryExpr:
		a.walk(e.Right, sc, "")
	case *BinaryExpr:
		a.walk(e.Left, sc, "")
		a.walk(e.Right, sc, "")
	case *CallExpr:
		if _, ok := e.Callee.(*Identifier); !ok {
			a.walk(e.Callee, sc, "")
		}
		for _, arg := range e.Args {
			a.walk(arg.Value, sc, "")
		}
	case *IndexExpr:
		a.walk(e.Object, sc, "")
		a.walk(e.Index, sc, "")
	}
}

func (a *analyzer) walkSequence(exprs []Expression, sc *scope) {
	for i, expr := range exprs {
		a.walk(expr, sc, "")
		if isReturnCall(expr) && i+1 < len(exprs) && sc != nil {
			a.findings = append(a.findings, Finding{
				Function: sc.name,
				Pos:      exprs[i+1].Pos(),
				Message:  "unreachable expression",
			})
			for _, rest := range exprs[i+1:] {
				a.walk(rest, sc, "")
			}
			return
		}
	}
}

func isReturnCall(expr Expression) bool {
	call, ok := expr.(*CallExpr)
	if !ok {
		return false
	}
	ident, ok := call.Callee.(*Identifier)
	return ok && ident.Name == "return"
}
