package vecs

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune

	// open delimiters; newlines are insignificant while the innermost one
	// is a paren or bracket
	nesting []rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	var r rune
	var w int
	for i := 0; i <= n; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w = utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
	return 0
}

func (l *lexer) newlinesSignificant() bool {
	if len(l.nesting) == 0 {
		return true
	}
	return l.nesting[len(l.nesting)-1] == '{'
}

func (l *lexer) push(open rune) {
	l.nesting = append(l.nesting, open)
}

func (l *lexer) pop() {
	if len(l.nesting) > 0 {
		l.nesting = l.nesting[:len(l.nesting)-1]
	}
}

func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	start := l.currentOffset()
	tok := Token{Pos: Position{Line: l.line, Column: l.column}, Offset: start}

	switch l.ch {
	case 0:
		tok.Type = tokenEOF
		tok.Literal = ""
		tok.End = start
		return tok
	case '\n':
		// collapse blank lines and comment-only lines into one token
		for l.ch == '\n' {
			l.readRune()
			l.skipWhitespaceAndComments()
		}
		tok.Type = tokenNewline
		tok.Literal = "\n"
	case '+':
		l.single(&tok, tokenPlus)
	case '-':
		if l.peekRune() == '>' {
			l.readRune()
			l.single(&tok, tokenRightAssign)
		} else {
			l.single(&tok, tokenMinus)
		}
	case '*':
		l.single(&tok, tokenAsterisk)
	case '/':
		l.single(&tok, tokenSlash)
	case '^':
		l.single(&tok, tokenCaret)
	case '\\':
		l.single(&tok, tokenBackslash)
	case '%':
		literal, ok := l.readSpecialOperator()
		if !ok {
			tok.Type = tokenIllegal
			tok.Literal = "unterminated %operator%"
		} else {
			tok.Type = tokenSpecial
			tok.Literal = literal
		}
	case '(':
		l.push('(')
		l.single(&tok, tokenLParen)
	case ')':
		l.pop()
		l.single(&tok, tokenRParen)
	case '{':
		l.push('{')
		l.single(&tok, tokenLBrace)
	case '}':
		l.pop()
		l.single(&tok, tokenRBrace)
	case '[':
		if l.peekRune() == '[' {
			l.readRune()
			l.push('[')
			l.push('[')
			l.single(&tok, tokenLBracket2)
		} else {
			l.push('[')
			l.single(&tok, tokenLBracket)
		}
	case ']':
		l.pop()
		l.single(&tok, tokenRBracket)
	case ',':
		l.single(&tok, tokenComma)
	case ';':
		l.single(&tok, tokenSemicolon)
	case ':':
		l.single(&tok, tokenColon)
	case '!':
		if l.peekRune() == '=' {
			l.readRune()
			l.single(&tok, tokenNotEQ)
		} else {
			l.single(&tok, tokenBang)
		}
	case '=':
		if l.peekRune() == '=' {
			l.readRune()
			l.single(&tok, tokenEQ)
		} else {
			l.single(&tok, tokenEqAssign)
		}
	case '>':
		if l.peekRune() == '=' {
			l.readRune()
			l.single(&tok, tokenGTE)
		} else {
			l.single(&tok, tokenGT)
		}
	case '<':
		switch {
		case l.peekRune() == '=':
			l.readRune()
			l.single(&tok, tokenLTE)
		case l.peekRune() == '-':
			l.readRune()
			l.single(&tok, tokenLeftAssign)
		case l.peekRune() == '<' && l.peekRuneN(1) == '-':
			l.readRune()
			l.readRune()
			l.single(&tok, tokenSuperAssign)
		default:
			l.single(&tok, tokenLT)
		}
	case '&':
		if l.peekRune() == '&' {
			l.readRune()
			l.single(&tok, tokenAndAnd)
		} else {
			l.single(&tok, tokenAnd)
		}
	case '|':
		if l.peekRune() == '|' {
			l.readRune()
			l.single(&tok, tokenOrOr)
		} else {
			l.single(&tok, tokenOr)
		}
	case '"', '\'':
		literal, err := l.readString(l.ch)
		if err != "" {
			tok.Type = tokenIllegal
			tok.Literal = err
		} else {
			tok.Type = tokenString
			tok.Literal = literal
		}
	default:
		switch {
		case unicode.IsDigit(l.ch) || (l.ch == '.' && unicode.IsDigit(l.peekRune())):
			tok.Type = tokenNumber
			tok.Literal = l.readNumber()
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
		default:
			tok.Type = tokenIllegal
			tok.Literal = string(l.ch)
			l.readRune()
		}
	}

	tok.End = l.currentOffset()
	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) single(tok *Token, tt TokenType) {
	tok.Type = tt
	tok.Literal = string(tt)
	l.readRune()
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readRune()
			continue
		case '\n':
			if l.newlinesSignificant() {
				return
			}
			l.readRune()
			continue
		case '#':
			l.skipComment()
			continue
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readNumber() string {
	var sb strings.Builder
	hasDot := l.ch == '.'
	hasExp := false

	// current rune is part of the number
	sb.WriteRune(l.ch)

	for {
		r := l.peekRune()
		switch {
		case unicode.IsDigit(r):
			l.readRune()
			sb.WriteRune(r)
		case r == '.' && !hasDot && !hasExp:
			hasDot = true
			l.readRune()
			sb.WriteRune('.')
		case (r == 'e' || r == 'E') && !hasExp:
			next := l.peekRuneN(1)
			if !unicode.IsDigit(next) && !((next == '+' || next == '-') && unicode.IsDigit(l.peekRuneN(2))) {
				goto done
			}
			hasExp = true
			l.readRune()
			sb.WriteRune('e')
			if next == '+' || next == '-' {
				l.readRune()
				sb.WriteRune(next)
			}
		case r == 'L':
			// integer suffix; every number is stored as a double
			l.readRune()
			goto done
		default:
			goto done
		}
	}

done:
	l.readRune()
	return sb.String()
}

func (l *lexer) readSpecialOperator() (string, bool) {
	start := l.currentOffset()
	for {
		l.readRune()
		switch l.ch {
		case 0, '\n':
			return "", false
		case '%':
			literal := l.input[start:l.offset]
			l.readRune()
			return literal, true
		}
	}
}

func (l *lexer) readString(quote rune) (string, string) {
	var sb strings.Builder

	for {
		l.readRune()
		switch l.ch {
		case 0:
			return "", "unterminated string"
		case quote:
			l.readRune()
			return sb.String(), ""
		case '\\':
			next := l.peekRune()
			switch next {
			case '"', '\'', '\\':
				l.readRune()
				sb.WriteRune(next)
			case 'n':
				l.readRune()
				sb.WriteByte('\n')
			case 't':
				l.readRune()
				sb.WriteByte('\t')
			default:
				l.readRune()
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '.'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}

func lookupIdent(ident string) TokenType {
	switch ident {
	case "function":
		return tokenFunction
	case "if":
		return tokenIf
	case "else":
		return tokenElse
	case "for":
		return tokenFor
	case "in":
		return tokenIn
	case "while":
		return tokenWhile
	case "repeat":
		return tokenRepeat
	case "break":
		return tokenBreak
	case "next":
		return tokenNext
	case "TRUE":
		return tokenTrue
	case "FALSE":
		return tokenFalse
	case "NULL":
		return tokenNull
	case "Inf":
		return tokenInf
	case "NaN":
		return tokenNaN
	}
	return tokenIdent
}
