package vecs

import (
	"fmt"
	"strings"
)

type parseError struct {
	pos    Position
	msg    string
	source string
}

func (e *parseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.pos.Line, e.pos.Column, e.msg)
	if frame := formatCodeFrame(e.source, e.pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addParseError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)))
}

func (p *parser) errorUnexpected(tok Token) {
	if tok.Type == tokenIllegal && tok.Literal != "" && len(tok.Literal) > 1 {
		p.addParseError(tok.Pos, tok.Literal)
		return
	}
	p.addParseError(tok.Pos, fmt.Sprintf("unexpected %s", tokenLabel(tok)))
}

func (p *parser) addParseError(pos Position, msg string) {
	p.errors = append(p.errors, &parseError{pos: pos, msg: msg, source: p.source})
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case tokenIllegal:
		return fmt.Sprintf("input %q", tok.Literal)
	case tokenEOF:
		return "end of input"
	case tokenNewline:
		return "end of line"
	case tokenIdent:
		return "symbol"
	case tokenNumber:
		return "numeric constant"
	case tokenString:
		return "string constant"
	case tokenSpecial:
		return fmt.Sprintf("%q", tok.Literal)
	case tokenFunction, tokenIf, tokenElse, tokenFor, tokenIn, tokenWhile, tokenRepeat,
		tokenBreak, tokenNext, tokenTrue, tokenFalse, tokenNull, tokenInf, tokenNaN:
		return fmt.Sprintf("'%s'", tok.Literal)
	default:
		return fmt.Sprintf("%q", string(tok.Type))
	}
}
