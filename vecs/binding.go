package vecs

import (
	"errors"
	"fmt"
	"strings"
)

// DotsName is the reserved parameter name for the variadic slot.
const DotsName = "..."

// ParamSpec declares one formal parameter of a function signature.
type ParamSpec[V any] struct {
	Name       string
	HasDefault bool
	Default    V
}

// CallArg is one argument supplied at a call site. An empty Label means the
// argument was passed positionally.
type CallArg[V any] struct {
	Label string
	Value V
}

// ArgSource records how a parameter received its value.
type ArgSource int

const (
	SourceExact ArgSource = iota + 1
	SourcePartial
	SourcePositional
	SourceDefault
	SourceDots
)

func (s ArgSource) String() string {
	switch s {
	case SourceExact:
		return "exact"
	case SourcePartial:
		return "partial"
	case SourcePositional:
		return "positional"
	case SourceDefault:
		return "default"
	case SourceDots:
		return "dots"
	default:
		return "unbound"
	}
}

// Binding is the successful result of Bind. Values holds one entry per
// declared parameter other than the variadic slot; arguments collected by
// the variadic slot are kept in Dots in call order.
type Binding[V any] struct {
	Values  map[string]V
	Sources map[string]ArgSource
	Dots    []CallArg[V]
}

// FailureKind classifies a binding failure.
type FailureKind int

const (
	MissingArgument FailureKind = iota + 1
	UnknownLabel
	AmbiguousLabel
	DuplicateBinding
	TooManyArguments
)

func (k FailureKind) String() string {
	switch k {
	case MissingArgument:
		return "MissingArgument"
	case UnknownLabel:
		return "UnknownLabel"
	case AmbiguousLabel:
		return "AmbiguousLabel"
	case DuplicateBinding:
		return "DuplicateBinding"
	case TooManyArguments:
		return "TooManyArguments"
	default:
		return "BindingFailure"
	}
}

// ErrBinding matches every *BindingFailure through errors.Is.
var ErrBinding = errors.New("argument binding failed")

// BindingFailure explains why a call's arguments could not be matched to a
// signature. Only the fields relevant to Kind are set.
type BindingFailure struct {
	Kind       FailureKind
	Name       string
	Label      string
	Candidates []string
	Count      int
	Expected   int
}

func (f *BindingFailure) Error() string {
	switch f.Kind {
	case MissingArgument:
		return fmt.Sprintf("missing required argument: %s", f.Name)
	case UnknownLabel:
		return fmt.Sprintf("unknown argument label: %s", f.Label)
	case AmbiguousLabel:
		return fmt.Sprintf("ambiguous partial match: %s matches %s", f.Label, strings.Join(f.Candidates, ", "))
	case DuplicateBinding:
		return fmt.Sprintf("parameter bound more than once: %s", f.Name)
	case TooManyArguments:
		return fmt.Sprintf("too many arguments: got %d, expected at most %d", f.Count, f.Expected)
	default:
		return ErrBinding.Error()
	}
}

func (f *BindingFailure) Is(target error) bool {
	return target == ErrBinding
}

// Bind matches args to sig in three fixed passes: exact labels, then unique
// label prefixes, then positions. Parameters left over take their defaults.
// Each pass only considers parameters that are still unbound. Parameters
// declared after the variadic slot match by exact label only, and arguments
// nothing else claims are collected by the variadic slot when there is one.
//
// Bind does not mutate its inputs and keeps no state between calls.
func Bind[V any](sig []ParamSpec[V], args []CallArg[V]) (*Binding[V], error) {
	dotsAt := -1
	for i, p := range sig {
		if p.Name == DotsName {
			dotsAt = i
			break
		}
	}

	bound := make([]bool, len(sig))
	values := make(map[string]V, len(sig))
	sources := make(map[string]ArgSource, len(sig))
	consumed := make([]bool, len(args))
	inDots := make([]bool, len(args))

	for ai, arg := range args {
		if arg.Label == "" || arg.Label == DotsName {
			continue
		}
		for pi, p := range sig {
			if pi == dotsAt || p.Name != arg.Label {
				continue
			}
			if bound[pi] {
				return nil, &BindingFailure{Kind: DuplicateBinding, Name: p.Name}
			}
			bound[pi] = true
			values[p.Name] = arg.Value
			sources[p.Name] = SourceExact
			consumed[ai] = true
			break
		}
	}

	// A prefix only competes for parameters that are still unbound. A label
	// that matches nothing open but abbreviates a parameter an earlier prefix
	// already claimed is a duplicate, not an unknown label.
	eligible := func(pi int) bool {
		return pi != dotsAt && (dotsAt < 0 || pi < dotsAt)
	}
	claimed := make([]bool, len(sig))
	for ai, arg := range args {
		if consumed[ai] || arg.Label == "" {
			continue
		}
		var matches []int
		for pi, p := range sig {
			if !bound[pi] && eligible(pi) && strings.HasPrefix(p.Name, arg.Label) {
				matches = append(matches, pi)
			}
		}
		switch len(matches) {
		case 0:
			for pi, p := range sig {
				if claimed[pi] && strings.HasPrefix(p.Name, arg.Label) {
					return nil, &BindingFailure{Kind: DuplicateBinding, Name: p.Name}
				}
			}
			if dotsAt >= 0 {
				inDots[ai] = true
				consumed[ai] = true
				continue
			}
			return nil, &BindingFailure{Kind: UnknownLabel, Label: arg.Label}
		case 1:
			pi := matches[0]
			name := sig[pi].Name
			bound[pi] = true
			claimed[pi] = true
			values[name] = arg.Value
			sources[name] = SourcePartial
			consumed[ai] = true
		default:
			candidates := make([]string, len(matches))
			for i, pi := range matches {
				candidates[i] = sig[pi].Name
			}
			return nil, &BindingFailure{Kind: AmbiguousLabel, Label: arg.Label, Candidates: candidates}
		}
	}

	var slots []int
	for pi := range sig {
		if dotsAt >= 0 && pi >= dotsAt {
			break
		}
		if !bound[pi] {
			slots = append(slots, pi)
		}
	}
	positional := 0
	next := 0
	for ai, arg := range args {
		if consumed[ai] {
			continue
		}
		positional++
		if next < len(slots) {
			pi := slots[next]
			next++
			bound[pi] = true
			values[sig[pi].Name] = arg.Value
			sources[sig[pi].Name] = SourcePositional
			continue
		}
		if dotsAt >= 0 {
			inDots[ai] = true
		}
	}
	if dotsAt < 0 && positional > len(slots) {
		return nil, &BindingFailure{Kind: TooManyArguments, Count: positional, Expected: len(slots)}
	}

	for pi, p := range sig {
		if pi == dotsAt {
			sources[DotsName] = SourceDots
			continue
		}
		if bound[pi] {
			continue
		}
		if !p.HasDefault {
			return nil, &BindingFailure{Kind: MissingArgument, Name: p.Name}
		}
		values[p.Name] = p.Default
		sources[p.Name] = SourceDefault
	}

	// the variadic slot keeps call-site order
	var dots []CallArg[V]
	for ai, arg := range args {
		if inDots[ai] {
			dots = append(dots, arg)
		}
	}
	return &Binding[V]{Values: values, Sources: sources, Dots: dots}, nil
}
