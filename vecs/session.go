package vecs

import (
	"context"
	"math/rand/v2"
)

// Session evaluates successive inputs against one persistent global frame,
// the way an interactive prompt does. It is not safe for concurrent use.
type Session struct {
	engine *Engine
	global *Env
	rng    *rand.Rand
}

func (e *Engine) NewSession() *Session {
	s := &Session{engine: e}
	s.Reset()
	return s
}

// Eval parses and evaluates src. Definitions persist into later calls even
// when src fails partway through.
func (s *Session) Eval(ctx context.Context, src string) (*Result, error) {
	p := newParser(src)
	program, parseErrors := p.ParseProgram()
	if len(parseErrors) > 0 {
		return &Result{Value: NewNull()}, combineErrors(parseErrors)
	}

	exec := newExecution(ctx, s.engine, src, s.global, nil)
	exec.rng = s.rng
	val, visible, err := exec.runProgram(program, false)
	// set.seed replaces the generator
	s.rng = exec.rng
	return exec.result(val, visible), err
}

// Globals returns a snapshot of the names the session has defined.
func (s *Session) Globals() map[string]Value {
	out := make(map[string]Value, len(s.global.values))
	for name, val := range s.global.values {
		out[name] = val
	}
	return out
}

// Reset discards every definition and reseeds the random source.
func (s *Session) Reset() {
	s.global = newGlobalEnv(s.engine.base)
	s.rng = newRandom(s.engine.config.Seed)
}
