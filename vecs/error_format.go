package vecs

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// codeFrameContext is how many lines above the failing one are shown.
	codeFrameContext = 1
	// codeFrameWidth is the widest slice of a line shown before it is clipped
	// around the caret.
	codeFrameWidth = 72
)

// formatCodeFrame renders the lines leading up to pos with their numbers and
// a caret under the failing column:
//
//	1: total <- 0
//	2: total <- total + )
//	                    ^
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	target := []rune(strings.TrimRight(lines[pos.Line-1], "\r"))
	column := min(max(pos.Column, 1), len(target)+1)
	start := codeFrameStart(len(target), column)

	width := len(strconv.Itoa(pos.Line))
	var b strings.Builder
	for n := max(pos.Line-codeFrameContext, 1); n <= pos.Line; n++ {
		text := []rune(strings.TrimRight(lines[n-1], "\r"))
		row := strings.TrimRight(fmt.Sprintf("%*d: %s", width, n, clipLine(text, start)), " ")
		b.WriteString(row)
		b.WriteString("\n")
	}

	// Tabs are kept so the caret lines up with the source as displayed.
	b.WriteString(strings.Repeat(" ", width+2))
	if start > 0 {
		b.WriteString("   ")
	}
	for _, r := range target[start : column-1] {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	b.WriteString("^")
	return b.String()
}

// codeFrameStart picks the first rune to show so that column stays visible
// on lines wider than codeFrameWidth.
func codeFrameStart(length, column int) int {
	if length <= codeFrameWidth {
		return 0
	}
	start := column - 1 - codeFrameWidth/2
	if start+codeFrameWidth > length {
		start = length - codeFrameWidth
	}
	return max(start, 0)
}

func clipLine(text []rune, start int) string {
	if start >= len(text) {
		if start > 0 {
			return "..."
		}
		return ""
	}
	end := min(start+codeFrameWidth, len(text))
	out := string(text[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out += "..."
	}
	return out
}
