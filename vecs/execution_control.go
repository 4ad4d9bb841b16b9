package vecs

func (exec *Execution) evalCondition(expr Expression, env *Env, construct string) (bool, error) {
	cond, err := exec.evalExpr(expr, env)
	if err != nil {
		return false, err
	}
	switch {
	case cond.Len() == 0:
		return false, exec.errorAt(expr.Pos(), "argument is of length zero")
	case cond.Len() > 1:
		return false, exec.errorAt(expr.Pos(), "the condition has length > 1")
	}
	switch cond.Kind() {
	case KindLogical, KindNumeric:
		values, err := cond.AsLogicals()
		if err != nil {
			return false, exec.errorAt(expr.Pos(), "missing value where TRUE/FALSE needed")
		}
		return values[0], nil
	case KindCharacter:
		values, err := cond.AsLogicals()
		if err != nil {
			return false, exec.errorAt(expr.Pos(), "argument is not interpretable as logical")
		}
		return values[0], nil
	default:
		return false, exec.errorAt(expr.Pos(), "argument of type '%s' is not interpretable as logical in %s", cond.Kind(), construct)
	}
}

func (exec *Execution) evalIf(e *IfExpr, env *Env) (Value, error) {
	ok, err := exec.evalCondition(e.Condition, env, "if")
	if err != nil {
		return NewNull(), err
	}
	if ok {
		return exec.evalExpr(e.Consequent, env)
	}
	if e.Alternate != nil {
		return exec.evalExpr(e.Alternate, env)
	}
	exec.visible = false
	return NewNull(), nil
}

// runLoopBody evaluates one iteration and reports whether the loop should
// stop.
func (exec *Execution) runLoopBody(body Expression, env *Env) (bool, error) {
	_, err := exec.evalExpr(body, env)
	switch err {
	case nil, errLoopNext:
		return false, nil
	case errLoopBreak:
		return true, nil
	default:
		return true, err
	}
}

func (exec *Execution) evalFor(e *ForExpr, env *Env) (Value, error) {
	iterable, err := exec.evalExpr(e.Iterable, env)
	if err != nil {
		return NewNull(), err
	}
	switch iterable.Kind() {
	case KindNull, KindLogical, KindNumeric, KindCharacter, KindList:
	default:
		return NewNull(), exec.errorAt(e.Iterable.Pos(), "invalid for() loop sequence")
	}

	// the sequence is evaluated once; reassigning it inside the body does
	// not change the iteration
	n := iterable.Len()
	for i := 0; i < n; i++ {
		env.Define(e.Iterator, iterable.Element(i))
		stop, err := exec.runLoopBody(e.Body, env)
		if err != nil {
			return NewNull(), err
		}
		if stop {
			break
		}
	}
	exec.visible = false
	return NewNull(), nil
}

func (exec *Execution) evalWhile(e *WhileExpr, env *Env) (Value, error) {
	for {
		ok, err := exec.evalCondition(e.Condition, env, "while")
		if err != nil {
			return NewNull(), err
		}
		if !ok {
			break
		}
		stop, err := exec.runLoopBody(e.Body, env)
		if err != nil {
			return NewNull(), err
		}
		if stop {
			break
		}
	}
	exec.visible = false
	return NewNull(), nil
}

func (exec *Execution) evalRepeat(e *RepeatExpr, env *Env) (Value, error) {
	for {
		stop, err := exec.runLoopBody(e.Body, env)
		if err != nil {
			return NewNull(), err
		}
		if stop {
			break
		}
	}
	exec.visible = false
	return NewNull(), nil
}
