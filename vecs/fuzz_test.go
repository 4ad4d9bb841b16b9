package vecs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func FuzzCompileScriptDoesNotPanic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("f <- function(x, y = 2) x + y"))
	f.Add([]byte("f <- function(x, x) 1"))
	f.Add([]byte("g(a = , 1"))
	f.Add([]byte("if (TRUE) {\n  1\n}\nelse 2"))
	f.Add([]byte("x[[1]][2] <<- 3 -> y"))

	f.Fuzz(func(t *testing.T, raw []byte) {
		engine := MustNewEngine(Config{})
		script, err := engine.Compile(string(raw))
		if err == nil {
			_ = script.Analyze()
		}
	})
}

func FuzzSessionEvalDoesNotPanic(f *testing.F) {
	f.Add("1:10 * c(1, 2)")
	f.Add("f <- function(...) list(...); f(a = 1, 2)")
	f.Add("x <- c(1, 2, 3); x[-1]; x[c(TRUE, FALSE)]")
	f.Add("repeat { break }")
	f.Add("g <- function(n) g(n + 1); g(1)")
	f.Add(`paste("a", 1:3, sep = "", collapse = "+")`)

	f.Fuzz(func(t *testing.T, src string) {
		if len(src) > 2048 {
			src = src[:2048]
		}
		engine := MustNewEngine(Config{StepQuota: 2000, RecursionLimit: 32})
		session := engine.NewSession()
		result, _ := session.Eval(context.Background(), src)
		if result == nil {
			t.Fatalf("eval returned a nil result")
		}
	})
}

func FuzzBindLabels(f *testing.F) {
	f.Add("alpha beta", "al")
	f.Add("xa xb", "x")
	f.Add("value other", "value value")
	f.Add("... sep", "s se sep")

	f.Fuzz(func(t *testing.T, names string, labels string) {
		var sig []ParamSpec[int]
		seen := make(map[string]bool)
		for _, name := range strings.Fields(names) {
			if seen[name] {
				continue
			}
			seen[name] = true
			sig = append(sig, ParamSpec[int]{Name: name, HasDefault: len(sig)%2 == 1})
		}
		var args []CallArg[int]
		for i, label := range strings.Fields(labels) {
			args = append(args, CallArg[int]{Label: label, Value: i})
			args = append(args, CallArg[int]{Value: -i})
		}

		first, firstErr := Bind(sig, args)
		second, secondErr := Bind(sig, args)
		if (firstErr == nil) != (secondErr == nil) {
			t.Fatalf("bind is not deterministic: %v vs %v", firstErr, secondErr)
		}
		if firstErr != nil {
			if !errors.Is(firstErr, ErrBinding) {
				t.Fatalf("unexpected error type %T", firstErr)
			}
			if first != nil {
				t.Fatalf("failed bind returned a binding")
			}
			return
		}
		if len(first.Values) != len(second.Values) || len(first.Dots) != len(second.Dots) {
			t.Fatalf("bind is not deterministic: %+v vs %+v", first, second)
		}
		for _, p := range sig {
			if p.Name == DotsName {
				continue
			}
			if _, ok := first.Values[p.Name]; !ok {
				t.Fatalf("parameter %s left unbound", p.Name)
			}
		}
	})
}
