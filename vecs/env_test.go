package vecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvLookupFollowsParents(t *testing.T) {
	base := NewEnv(nil)
	base.Define("pi", NewNumeric(3))
	global := newGlobalEnv(base)
	global.Define("x", NewNumeric(1))
	local := NewEnv(global)
	local.Define("x", NewNumeric(2))

	val, ok := local.Get("x")
	require.True(t, ok)
	require.True(t, val.Equal(NewNumeric(2)))

	val, ok = local.Get("pi")
	require.True(t, ok)
	require.True(t, val.Equal(NewNumeric(3)))

	frame, ok := local.Lookup("pi")
	require.True(t, ok)
	require.Same(t, base, frame)

	_, ok = local.Get("missing")
	require.False(t, ok)
	require.Same(t, global, local.Global())
}

func TestEnvGetFunctionSkipsNonFunctions(t *testing.T) {
	base := NewEnv(nil)
	base.Define("c", NewBuiltin("c", []ParamSpec[Value]{dotsParam()}, builtinCombine))
	local := NewEnv(newGlobalEnv(base))
	local.Define("c", NewNumeric(5))

	fn, ok := local.GetFunction("c")
	require.True(t, ok)
	require.True(t, fn.IsFunction())

	_, ok = local.GetFunction("nothing")
	require.False(t, ok)
}

func TestEnvSuperAssignRebindsNearestEnclosingFrame(t *testing.T) {
	global := newGlobalEnv(NewEnv(nil))
	global.Define("count", NewNumeric(0))
	outer := NewEnv(global)
	outer.Define("count", NewNumeric(10))
	inner := NewEnv(outer)

	inner.SuperAssign("count", NewNumeric(11))

	val, _ := outer.Get("count")
	require.True(t, val.Equal(NewNumeric(11)))
	val, _ = global.Get("count")
	require.True(t, val.Equal(NewNumeric(0)))
	require.Empty(t, inner.Names())
}

func TestEnvSuperAssignSkipsTheCurrentFrame(t *testing.T) {
	global := newGlobalEnv(NewEnv(nil))
	fn := NewEnv(global)
	fn.Define("total", NewNumeric(1))

	fn.SuperAssign("total", NewNumeric(2))

	local := fn.values["total"]
	require.True(t, local.Equal(NewNumeric(1)))
	val, ok := global.values["total"]
	require.True(t, ok)
	require.True(t, val.Equal(NewNumeric(2)))
}

func TestEnvSuperAssignNeverWritesTheBaseFrame(t *testing.T) {
	base := NewEnv(nil)
	base.Define("pi", NewNumeric(3.14))
	global := newGlobalEnv(base)
	fn := NewEnv(global)

	fn.SuperAssign("pi", NewNumeric(3))
	global.SuperAssign("pi", NewNumeric(4))

	val := base.values["pi"]
	require.True(t, val.Equal(NewNumeric(3.14)))
	val = global.values["pi"]
	require.True(t, val.Equal(NewNumeric(4)))
}

func TestEnvNamesAreSorted(t *testing.T) {
	env := NewEnv(nil)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		env.Define(name, NewNull())
	}
	require.Equal(t, []string{"alpha", "mid", "zeta"}, env.Names())

	clone := env.CloneShallow()
	clone.Define("extra", NewNull())
	require.Len(t, env.Names(), 3)
	require.Len(t, clone.Names(), 4)
}
