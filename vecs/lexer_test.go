package vecs

import "testing"

func lexAll(input string) []Token {
	l := newLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens
		}
	}
}

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func expectTokenTypes(t *testing.T, input string, want ...TokenType) {
	t.Helper()
	got := tokenTypes(lexAll(input))
	if len(got) != len(want) {
		t.Fatalf("lex %q: expected %v, got %v", input, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lex %q: token %d expected %s, got %s (all: %v)", input, i, want[i], got[i], got)
		}
	}
}

func TestLexerAssignmentOperators(t *testing.T) {
	expectTokenTypes(t, "x <- 1; y <<- 2; 3 -> z; w = 4",
		tokenIdent, tokenLeftAssign, tokenNumber, tokenSemicolon,
		tokenIdent, tokenSuperAssign, tokenNumber, tokenSemicolon,
		tokenNumber, tokenRightAssign, tokenIdent, tokenSemicolon,
		tokenIdent, tokenEqAssign, tokenNumber, tokenEOF,
	)
	expectTokenTypes(t, "x < -1", tokenIdent, tokenLT, tokenMinus, tokenNumber, tokenEOF)
}

func TestLexerNewlinesInsideParensAreIgnored(t *testing.T) {
	expectTokenTypes(t, "f(a,\n  b)\n{\n  x\n}",
		tokenIdent, tokenLParen, tokenIdent, tokenComma, tokenIdent, tokenRParen, tokenNewline,
		tokenLBrace, tokenNewline, tokenIdent, tokenNewline, tokenRBrace, tokenEOF,
	)
}

func TestLexerCollapsesBlankLinesAndComments(t *testing.T) {
	expectTokenTypes(t, "a\n\n# comment\n\nb", tokenIdent, tokenNewline, tokenIdent, tokenEOF)
}

func TestLexerIdentifiersWithDots(t *testing.T) {
	tokens := lexAll("na.rm .hidden ... set.seed")
	want := []string{"na.rm", ".hidden", "...", "set.seed"}
	for i, lit := range want {
		if tokens[i].Type != tokenIdent || tokens[i].Literal != lit {
			t.Fatalf("token %d: expected ident %q, got %s %q", i, lit, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	cases := map[string]string{
		"42":     "42",
		"3.25":   "3.25",
		".5":     ".5",
		"1e3":    "1e3",
		"2.5e-2": "2.5e-2",
		"10L":    "10",
	}
	for input, want := range cases {
		tokens := lexAll(input)
		if tokens[0].Type != tokenNumber || tokens[0].Literal != want {
			t.Fatalf("lex %q: expected number %q, got %s %q", input, want, tokens[0].Type, tokens[0].Literal)
		}
		if tokens[1].Type != tokenEOF {
			t.Fatalf("lex %q: trailing token %s", input, tokens[1].Type)
		}
	}
}

func TestLexerStringsAndSpecialOperators(t *testing.T) {
	tokens := lexAll(`'it\'s' "a\tb" x %in% y %% 2`)
	if tokens[0].Literal != "it's" || tokens[1].Literal != "a\tb" {
		t.Fatalf("unexpected strings %q %q", tokens[0].Literal, tokens[1].Literal)
	}
	if tokens[3].Type != tokenSpecial || tokens[3].Literal != "%in%" {
		t.Fatalf("expected %%in%%, got %s %q", tokens[3].Type, tokens[3].Literal)
	}
	if tokens[5].Type != tokenSpecial || tokens[5].Literal != "%%" {
		t.Fatalf("expected %%%%, got %s %q", tokens[5].Type, tokens[5].Literal)
	}

	bad := lexAll(`"open`)
	if bad[0].Type != tokenIllegal {
		t.Fatalf("expected illegal token for unterminated string, got %s", bad[0].Type)
	}
}

func TestLexerPositionsAndOffsets(t *testing.T) {
	tokens := lexAll("x <- 1\n  yy")
	yy := tokens[4]
	if yy.Literal != "yy" || yy.Pos.Line != 2 || yy.Pos.Column != 3 {
		t.Fatalf("unexpected position for yy: %+v", yy)
	}
	if yy.Offset != 9 || yy.End != 11 {
		t.Fatalf("unexpected offsets for yy: %d..%d", yy.Offset, yy.End)
	}
}
