package vecs

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func param(name string) ParamSpec[int] {
	return ParamSpec[int]{Name: name}
}

func paramWithDefault(name string, def int) ParamSpec[int] {
	return ParamSpec[int]{Name: name, HasDefault: true, Default: def}
}

func pos(v int) CallArg[int] {
	return CallArg[int]{Value: v}
}

func named(label string, v int) CallArg[int] {
	return CallArg[int]{Label: label, Value: v}
}

func mustBind(t *testing.T, sig []ParamSpec[int], args []CallArg[int]) *Binding[int] {
	t.Helper()
	binding, err := Bind(sig, args)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	return binding
}

func bindFailure(t *testing.T, sig []ParamSpec[int], args []CallArg[int]) *BindingFailure {
	t.Helper()
	binding, err := Bind(sig, args)
	if err == nil {
		t.Fatalf("expected binding failure, got %+v", binding)
	}
	if !errors.Is(err, ErrBinding) {
		t.Fatalf("expected ErrBinding, got %v", err)
	}
	var failure *BindingFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *BindingFailure, got %T", err)
	}
	return failure
}

func TestBindExactNamesAreOrderIndependent(t *testing.T) {
	sig := []ParamSpec[int]{param("alpha"), param("beta"), param("gamma")}
	positional := mustBind(t, sig, []CallArg[int]{pos(1), pos(2), pos(3)})

	orders := [][]CallArg[int]{
		{named("alpha", 1), named("beta", 2), named("gamma", 3)},
		{named("gamma", 3), named("alpha", 1), named("beta", 2)},
		{named("beta", 2), named("gamma", 3), named("alpha", 1)},
	}
	for i, args := range orders {
		got := mustBind(t, sig, args)
		if diff := cmp.Diff(positional.Values, got.Values); diff != "" {
			t.Fatalf("order %d: values mismatch (-positional +named):\n%s", i, diff)
		}
		for _, name := range []string{"alpha", "beta", "gamma"} {
			if got.Sources[name] != SourceExact {
				t.Fatalf("order %d: expected %s bound exactly, got %s", i, name, got.Sources[name])
			}
		}
	}
}

func TestBindAbbreviation(t *testing.T) {
	sig := []ParamSpec[int]{param("longname_x"), param("y")}
	got := mustBind(t, sig, []CallArg[int]{named("y", 7), named("l", 6)})

	want := &Binding[int]{
		Values:  map[string]int{"longname_x": 6, "y": 7},
		Sources: map[string]ArgSource{"longname_x": SourcePartial, "y": SourceExact},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("binding mismatch (-want +got):\n%s", diff)
	}
}

func TestBindPositional(t *testing.T) {
	sig := []ParamSpec[int]{param("longname_x"), param("y")}
	got := mustBind(t, sig, []CallArg[int]{pos(7), pos(8)})

	want := map[string]int{"longname_x": 7, "y": 8}
	if diff := cmp.Diff(want, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestBindDefault(t *testing.T) {
	got := mustBind(t, []ParamSpec[int]{paramWithDefault("x", 99)}, nil)
	if diff := cmp.Diff(map[string]int{"x": 99}, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got.Sources["x"] != SourceDefault {
		t.Fatalf("expected default source, got %s", got.Sources["x"])
	}
}

func TestBindMissingArgument(t *testing.T) {
	failure := bindFailure(t, []ParamSpec[int]{param("x")}, nil)
	want := &BindingFailure{Kind: MissingArgument, Name: "x"}
	if diff := cmp.Diff(want, failure); diff != "" {
		t.Fatalf("failure mismatch (-want +got):\n%s", diff)
	}
	if failure.Error() != "missing required argument: x" {
		t.Fatalf("unexpected message %q", failure.Error())
	}
}

func TestBindAmbiguousLabel(t *testing.T) {
	failure := bindFailure(t, []ParamSpec[int]{param("xa"), param("xb")}, []CallArg[int]{named("x", 1)})
	want := &BindingFailure{Kind: AmbiguousLabel, Label: "x", Candidates: []string{"xa", "xb"}}
	if diff := cmp.Diff(want, failure); diff != "" {
		t.Fatalf("failure mismatch (-want +got):\n%s", diff)
	}
}

func TestBindTooManyArguments(t *testing.T) {
	failure := bindFailure(t, []ParamSpec[int]{param("a"), param("b")}, []CallArg[int]{pos(1), pos(2), pos(3)})
	if failure.Kind != TooManyArguments || failure.Count != 3 || failure.Expected != 2 {
		t.Fatalf("expected TooManyArguments(3, 2), got %+v", failure)
	}
	if failure.Error() != "too many arguments: got 3, expected at most 2" {
		t.Fatalf("unexpected message %q", failure.Error())
	}
}

func TestBindIsIdempotent(t *testing.T) {
	sig := []ParamSpec[int]{param("longname_x"), paramWithDefault("y", 3), param(DotsName)}
	args := []CallArg[int]{named("lo", 1), pos(2), pos(4), named("z", 5)}

	first := mustBind(t, sig, args)
	second := mustBind(t, sig, args)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated bind differs (-first +second):\n%s", diff)
	}
	if args[0].Label != "lo" || len(args) != 4 {
		t.Fatalf("bind mutated its arguments: %+v", args)
	}
}

func TestBindUnknownLabel(t *testing.T) {
	failure := bindFailure(t, []ParamSpec[int]{param("x")}, []CallArg[int]{named("y", 1)})
	if failure.Kind != UnknownLabel || failure.Label != "y" {
		t.Fatalf("expected UnknownLabel(y), got %+v", failure)
	}
}

func TestBindPrefixOfExactlyBoundParameterIsUnknown(t *testing.T) {
	sig := []ParamSpec[int]{param("value"), paramWithDefault("other", 0)}
	failure := bindFailure(t, sig, []CallArg[int]{named("val", 2), named("value", 1)})
	if failure.Kind != UnknownLabel || failure.Label != "val" {
		t.Fatalf("expected UnknownLabel(val), got %+v", failure)
	}
}

func TestBindDuplicateBinding(t *testing.T) {
	cases := []struct {
		name string
		args []CallArg[int]
	}{
		{name: "exact twice", args: []CallArg[int]{named("value", 1), named("value", 2)}},
		{name: "two prefixes", args: []CallArg[int]{named("va", 1), named("val", 2)}},
	}
	sig := []ParamSpec[int]{param("value"), paramWithDefault("other", 0)}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			failure := bindFailure(t, sig, tc.args)
			if failure.Kind != DuplicateBinding || failure.Name != "value" {
				t.Fatalf("expected DuplicateBinding(value), got %+v", failure)
			}
		})
	}
}

func TestBindPartialIgnoresExactlyBoundParameters(t *testing.T) {
	// "x" would be ambiguous between xa and xb, but xa is already taken by
	// its full name so only xb is still open.
	sig := []ParamSpec[int]{param("xa"), param("xb")}
	got := mustBind(t, sig, []CallArg[int]{named("x", 2), named("xa", 1)})
	if diff := cmp.Diff(map[string]int{"xa": 1, "xb": 2}, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestBindPartialIgnoresParametersClaimedByEarlierPrefix(t *testing.T) {
	// "xa" takes xab, which leaves "x" with a single open candidate.
	sig := []ParamSpec[int]{param("xab"), param("xb")}
	got := mustBind(t, sig, []CallArg[int]{named("xa", 1), named("x", 2)})

	want := &Binding[int]{
		Values:  map[string]int{"xab": 1, "xb": 2},
		Sources: map[string]ArgSource{"xab": SourcePartial, "xb": SourcePartial},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("binding mismatch (-want +got):\n%s", diff)
	}
}

func TestBindPositionalFillsRemainingSlotsInOrder(t *testing.T) {
	sig := []ParamSpec[int]{param("a"), param("b"), param("c")}
	got := mustBind(t, sig, []CallArg[int]{pos(10), named("b", 20), pos(30)})
	if diff := cmp.Diff(map[string]int{"a": 10, "b": 20, "c": 30}, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestBindDotsCollectsUnmatchedArguments(t *testing.T) {
	sig := []ParamSpec[int]{param("x"), param(DotsName), paramWithDefault("sep", 0)}
	got := mustBind(t, sig, []CallArg[int]{pos(1), pos(2), named("s", 3), named("sep", 4), named("extra", 5)})

	want := &Binding[int]{
		Values: map[string]int{"x": 1, "sep": 4},
		Sources: map[string]ArgSource{
			"x":      SourcePositional,
			"sep":    SourceExact,
			DotsName: SourceDots,
		},
		Dots: []CallArg[int]{pos(2), named("s", 3), named("extra", 5)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("binding mismatch (-want +got):\n%s", diff)
	}
}

func TestBindParametersAfterDotsRequireExactLabels(t *testing.T) {
	sig := []ParamSpec[int]{param(DotsName), paramWithDefault("collapse", 0)}
	got := mustBind(t, sig, []CallArg[int]{named("coll", 1)})
	if got.Values["collapse"] != 0 || got.Sources["collapse"] != SourceDefault {
		t.Fatalf("expected collapse to keep its default, got %+v", got)
	}
	if len(got.Dots) != 1 || got.Dots[0].Label != "coll" {
		t.Fatalf("expected coll in dots, got %+v", got.Dots)
	}
}

func TestBindingFailureMessages(t *testing.T) {
	cases := []struct {
		failure *BindingFailure
		want    string
	}{
		{&BindingFailure{Kind: MissingArgument, Name: "x"}, "missing required argument: x"},
		{&BindingFailure{Kind: UnknownLabel, Label: "zz"}, "unknown argument label: zz"},
		{&BindingFailure{Kind: AmbiguousLabel, Label: "x", Candidates: []string{"xa", "xb"}}, "ambiguous partial match: x matches xa, xb"},
		{&BindingFailure{Kind: DuplicateBinding, Name: "x"}, "parameter bound more than once: x"},
	}
	for _, tc := range cases {
		if got := tc.failure.Error(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestBindConcurrentCallsShareNoState(t *testing.T) {
	sig := []ParamSpec[int]{param("first"), paramWithDefault("second", -1)}
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			binding, err := Bind(sig, []CallArg[int]{named("f", i)})
			if err != nil {
				errs <- err
				return
			}
			if binding.Values["first"] != i || binding.Values["second"] != -1 {
				errs <- fmt.Errorf("goroutine %d got %+v", i, binding.Values)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
