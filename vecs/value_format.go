package vecs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const printWidth = 80

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', 7, 64)
	}
}

func formatLogical(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// String renders the value compactly on one line.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindCharacter:
		quoted := make([]string, v.Len())
		for i, s := range v.Strings() {
			quoted[i] = strconv.Quote(s)
		}
		return strings.Join(quoted, " ")
	case KindNumeric, KindLogical:
		return strings.Join(v.AsStrings(), " ")
	case KindList:
		parts := make([]string, v.Len())
		for i, item := range v.List() {
			parts[i] = item.String()
		}
		return "list(" + strings.Join(parts, ", ") + ")"
	case KindClosure:
		if src := v.Closure().Source; src != "" {
			return src
		}
		return "function(" + strings.Join(v.Closure().ParamNames(), ", ") + ")"
	case KindBuiltin:
		return formatBuiltinSignature(v.Builtin())
	case KindDots:
		return "<...>"
	default:
		return "<unknown>"
	}
}

func formatBuiltinSignature(b *Builtin) string {
	parts := make([]string, len(b.Params))
	for i, p := range b.Params {
		if p.HasDefault {
			parts[i] = p.Name + " = " + p.Default.String()
		} else {
			parts[i] = p.Name
		}
	}
	return fmt.Sprintf("function (%s)", strings.Join(parts, ", "))
}

// Format renders the value the way print() shows it, including the [n]
// element index at the start of every line.
func (v Value) Format() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindLogical, KindNumeric:
		if v.Len() == 0 {
			return v.kind.String() + "(0)"
		}
		return formatVector(v.AsStrings(), true)
	case KindCharacter:
		if v.Len() == 0 {
			return "character(0)"
		}
		quoted := make([]string, v.Len())
		for i, s := range v.Strings() {
			quoted[i] = strconv.Quote(s)
		}
		return formatVector(quoted, false)
	case KindList:
		if v.Len() == 0 {
			return "list()"
		}
		var b strings.Builder
		for i, item := range v.List() {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "[[%d]]\n%s", i+1, item.Format())
		}
		return b.String()
	default:
		return v.String()
	}
}

func formatVector(items []string, alignRight bool) string {
	width := 0
	for _, item := range items {
		if len(item) > width {
			width = len(item)
		}
	}
	labelWidth := len(fmt.Sprintf("[%d]", len(items)))
	perLine := (printWidth - labelWidth) / (width + 1)
	if perLine < 1 {
		perLine = 1
	}

	var b strings.Builder
	for start := 0; start < len(items); start += perLine {
		if start > 0 {
			b.WriteString("\n")
		}
		label := fmt.Sprintf("[%d]", start+1)
		b.WriteString(strings.Repeat(" ", labelWidth-len(label)))
		b.WriteString(label)
		end := min(start+perLine, len(items))
		for _, item := range items[start:end] {
			b.WriteString(" ")
			pad := strings.Repeat(" ", width-len(item))
			if alignRight {
				b.WriteString(pad + item)
			} else {
				b.WriteString(item + pad)
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}
