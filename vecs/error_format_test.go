package vecs

import (
	"fmt"
	"strings"
	"testing"
)

func TestFormatCodeFrame(t *testing.T) {
	var tenLines []string
	for i := 1; i <= 10; i++ {
		tenLines = append(tenLines, fmt.Sprintf("l%d", i))
	}

	cases := []struct {
		name   string
		source string
		pos    Position
		want   string
	}{
		{
			name:   "first line",
			source: "x <- )",
			pos:    Position{Line: 1, Column: 6},
			want:   "1: x <- )\n" + strings.Repeat(" ", 3+5) + "^",
		},
		{
			name:   "previous line shown",
			source: "total <- 0\ntotal <- total + )\n",
			pos:    Position{Line: 2, Column: 18},
			want:   "1: total <- 0\n2: total <- total + )\n" + strings.Repeat(" ", 3+17) + "^",
		},
		{
			name:   "gutter aligned",
			source: strings.Join(tenLines, "\n"),
			pos:    Position{Line: 10, Column: 1},
			want:   " 9: l9\n10: l10\n    ^",
		},
		{
			name:   "tabs kept under caret",
			source: "\tx <- )",
			pos:    Position{Line: 1, Column: 7},
			want:   "1: \tx <- )\n   \t     ^",
		},
		{
			name:   "column past end of line",
			source: "f(1,",
			pos:    Position{Line: 1, Column: 40},
			want:   "1: f(1,\n" + strings.Repeat(" ", 3+4) + "^",
		},
		{name: "no source", source: "", pos: Position{Line: 1, Column: 1}, want: ""},
		{name: "line out of range", source: "x", pos: Position{Line: 3, Column: 1}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatCodeFrame(tc.source, tc.pos); got != tc.want {
				t.Fatalf("expected\n%s\ngot\n%s", tc.want, got)
			}
		})
	}
}

func TestFormatCodeFrameClipsLongLines(t *testing.T) {
	source := strings.Repeat("a", 100) + "b" + strings.Repeat("a", 99)
	got := strings.Split(formatCodeFrame(source, Position{Line: 1, Column: 101}), "\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	wantRow := "1: ..." + strings.Repeat("a", 36) + "b" + strings.Repeat("a", 35) + "..."
	if got[0] != wantRow {
		t.Fatalf("unexpected row %q", got[0])
	}
	if got[1] != strings.Repeat(" ", 6+36)+"^" {
		t.Fatalf("caret is not under b: %q", got[1])
	}
}
