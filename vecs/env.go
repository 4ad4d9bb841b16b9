package vecs

import "sort"

// Env is one frame of the environment chain. A closure keeps the frame it
// was defined in as the parent of every frame created for its calls, so
// lookups follow the program text and never the call stack.
type Env struct {
	parent *Env
	values map[string]Value
	global bool
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

func newGlobalEnv(base *Env) *Env {
	env := newEnv(base)
	env.global = true
	return env
}

// NewEnv returns an empty frame enclosed by parent, which may be nil.
func NewEnv(parent *Env) *Env {
	return newEnv(parent)
}

func (e *Env) Parent() *Env {
	return e.parent
}

func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// GetFunction resolves name for use in call position, skipping bindings
// that are not functions.
func (e *Env) GetFunction(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok && val.IsFunction() {
			return val, true
		}
	}
	return Value{}, false
}

// Lookup reports the frame that binds name.
func (e *Env) Lookup(name string) (*Env, bool) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			return env, true
		}
	}
	return nil, false
}

func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// SuperAssign rebinds name in the nearest enclosing frame that already
// defines it, starting at the parent. When no frame does, the name is
// defined in the global frame.
func (e *Env) SuperAssign(name string, val Value) {
	start := e.parent
	if start == nil || e.global {
		start = e
	}
	// frames above the global one belong to the engine and stay read-only
	for env := start; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return
		}
		if env.global {
			break
		}
	}
	e.Global().values[name] = val
}

// Global returns the global frame of the chain, or the outermost frame when
// the chain has no global frame.
func (e *Env) Global() *Env {
	env := e
	for !env.global && env.parent != nil {
		env = env.parent
	}
	return env
}

// Names lists the names bound directly in this frame, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Env) CloneShallow() *Env {
	clone := newEnv(e.parent)
	for k, v := range e.values {
		clone.values[k] = v
	}
	return clone
}
