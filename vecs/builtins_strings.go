package vecs

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func registerStringBuiltins(e *Engine) {
	e.RegisterBuiltin("paste", []ParamSpec[Value]{
		dotsParam(),
		optional("sep", NewCharacter(" ")),
		optional("collapse", NewNull()),
	}, builtinPaste)
	e.RegisterBuiltin("paste0", []ParamSpec[Value]{dotsParam(), optional("collapse", NewNull())}, builtinPaste)
	e.RegisterBuiltin("nchar", []ParamSpec[Value]{required("x")}, builtinNchar)
	e.RegisterBuiltin("toupper", []ParamSpec[Value]{required("x")}, mapStrings(strings.ToUpper))
	e.RegisterBuiltin("tolower", []ParamSpec[Value]{required("x")}, mapStrings(strings.ToLower))
}

// builtinPaste serves paste and paste0; paste0 simply has no sep parameter.
func builtinPaste(exec *Execution, args *Args) (Value, error) {
	sep := ""
	if _, declared := args.binding.Sources["sep"]; declared {
		var err error
		if sep, err = args.Text("sep"); err != nil {
			return NewNull(), err
		}
	}

	var columns [][]string
	width := 0
	for _, v := range args.DotValues() {
		if v.IsFunction() {
			return NewNull(), fmt.Errorf("cannot coerce type '%s' to vector of type 'character'", v.Kind())
		}
		strs := v.AsStrings()
		if len(strs) == 0 {
			continue
		}
		columns = append(columns, strs)
		width = max(width, len(strs))
	}

	rows := make([]string, width)
	for i := range rows {
		parts := make([]string, len(columns))
		for j, col := range columns {
			parts[j] = col[i%len(col)]
		}
		rows[i] = strings.Join(parts, sep)
	}

	collapse := args.Get("collapse")
	if collapse.IsNull() {
		return characterOwned(rows), nil
	}
	joiner, err := args.Text("collapse")
	if err != nil {
		return NewNull(), err
	}
	return NewCharacter(strings.Join(rows, joiner)), nil
}

func builtinNchar(exec *Execution, args *Args) (Value, error) {
	x := args.Get("x")
	if x.IsFunction() {
		return NewNull(), fmt.Errorf("'nchar()' requires a character vector")
	}
	strs := x.AsStrings()
	out := make([]float64, len(strs))
	for i, s := range strs {
		out[i] = float64(utf8.RuneCountInString(s))
	}
	return numericOwned(out), nil
}

func mapStrings(fn func(string) string) BuiltinFunc {
	return func(exec *Execution, args *Args) (Value, error) {
		x := args.Get("x")
		if !x.IsAtomic() && !x.IsNull() {
			return NewNull(), fmt.Errorf("non-character argument")
		}
		strs := x.AsStrings()
		out := make([]string, len(strs))
		for i, s := range strs {
			out[i] = fn(s)
		}
		return characterOwned(out), nil
	}
}
