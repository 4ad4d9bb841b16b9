package vecs

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	source string
	tokens []Token
	index  int

	curToken  Token
	peekToken Token

	// depth of enclosing braces; `else` may only follow a line break inside
	// a block
	braceDepth int

	errors []error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(input string) *parser {
	l := newLexer(input)
	p := &parser{source: input}
	for {
		tok := l.NextToken()
		p.tokens = append(p.tokens, tok)
		if tok.Type == tokenEOF {
			break
		}
	}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenNumber, p.parseNumberLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenTrue, p.parseLogicalLiteral)
	p.registerPrefix(tokenFalse, p.parseLogicalLiteral)
	p.registerPrefix(tokenNull, p.parseNullLiteral)
	p.registerPrefix(tokenInf, p.parseSpecialNumber)
	p.registerPrefix(tokenNaN, p.parseSpecialNumber)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenLBrace, p.parseBlockExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)
	p.registerPrefix(tokenPlus, p.parsePrefixExpression)
	p.registerPrefix(tokenBang, p.parseNotExpression)
	p.registerPrefix(tokenFunction, p.parseFunctionLiteral)
	p.registerPrefix(tokenBackslash, p.parseFunctionLiteral)
	p.registerPrefix(tokenIf, p.parseIfExpression)
	p.registerPrefix(tokenFor, p.parseForExpression)
	p.registerPrefix(tokenWhile, p.parseWhileExpression)
	p.registerPrefix(tokenRepeat, p.parseRepeatExpression)
	p.registerPrefix(tokenBreak, p.parseBreakExpression)
	p.registerPrefix(tokenNext, p.parseNextExpression)

	for _, tt := range []TokenType{
		tokenPlus, tokenMinus, tokenAsterisk, tokenSlash, tokenCaret, tokenSpecial, tokenColon,
		tokenEQ, tokenNotEQ, tokenLT, tokenLTE, tokenGT, tokenGTE,
		tokenAnd, tokenAndAnd, tokenOr, tokenOrOr,
	} {
		p.infixFns[tt] = p.parseInfixExpression
	}
	p.infixFns[tokenLeftAssign] = p.parseAssignExpression
	p.infixFns[tokenSuperAssign] = p.parseAssignExpression
	p.infixFns[tokenEqAssign] = p.parseAssignExpression
	p.infixFns[tokenRightAssign] = p.parseRightAssignExpression
	p.infixFns[tokenLParen] = p.parseCallExpression
	p.infixFns[tokenLBracket] = p.parseIndexExpression
	p.infixFns[tokenLBracket2] = p.parseIndexExpression

	p.curToken = p.tokens[0]
	p.peekToken = p.tokenAt(1)

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) tokenAt(i int) Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) nextToken() {
	if p.index < len(p.tokens)-1 {
		p.index++
	}
	p.curToken = p.tokens[p.index]
	p.peekToken = p.tokenAt(p.index + 1)
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, tokenLabel(Token{Type: tt, Literal: string(tt)}))
	return false
}

func (p *parser) skipPeekNewlines() {
	for p.peekToken.Type == tokenNewline {
		p.nextToken()
	}
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) ParseProgram() (*Program, []error) {
	program := &Program{}

	for p.curToken.Type != tokenEOF {
		if p.curToken.Type == tokenNewline || p.curToken.Type == tokenSemicolon {
			p.nextToken()
			continue
		}
		expr := p.parseExpression(lowestPrec)
		if expr == nil {
			// resynchronise at the next line so one mistake yields one error
			p.skipToLineEnd()
			if len(p.errors) > 8 {
				break
			}
			continue
		}
		program.Exprs = append(program.Exprs, expr)
		switch p.peekToken.Type {
		case tokenNewline, tokenSemicolon, tokenEOF:
			p.nextToken()
		default:
			p.errorUnexpected(p.peekToken)
			p.nextToken()
			p.skipToLineEnd()
		}
	}

	return program, p.errors
}

func (p *parser) skipToLineEnd() {
	for p.curToken.Type != tokenEOF && p.curToken.Type != tokenNewline && p.curToken.Type != tokenSemicolon {
		p.nextToken()
	}
}

// exprEnd is the byte offset just past the current token.
func (p *parser) exprEnd() int {
	return p.curToken.End
}
