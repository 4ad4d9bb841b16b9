package vecs

import (
	"math"
	"strconv"
)

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	return &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseNumberLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addParseError(p.curToken.Pos, "invalid numeric constant")
		return nil
	}
	return &NumberLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseSpecialNumber() Expression {
	value := math.Inf(1)
	if p.curToken.Type == tokenNaN {
		value = math.NaN()
	}
	return &NumberLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseLogicalLiteral() Expression {
	return &LogicalLiteral{Value: p.curToken.Type == tokenTrue, position: p.curToken.Pos}
}

func (p *parser) parseNullLiteral() Expression {
	return &NullLiteral{position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parsePrefixExpression() Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(precUnary)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: tok.Type, Right: right, position: tok.Pos}
}

func (p *parser) parseNotExpression() Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(precNot)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: tok.Type, Right: right, position: tok.Pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	tok := p.curToken
	precedence := precedences[tok.Type]
	if rightAssociative[tok.Type] {
		precedence--
	}
	p.skipPeekNewlines()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	expr := &BinaryExpr{Left: left, Operator: tok.Type, Right: right, position: tok.Pos}
	if tok.Type == tokenSpecial {
		expr.Special = tok.Literal
	}
	return expr
}

func (p *parser) parseAssignExpression(target Expression) Expression {
	tok := p.curToken
	if !isAssignable(target) {
		p.addParseError(tok.Pos, "invalid assignment target")
		return nil
	}
	p.skipPeekNewlines()
	p.nextToken()
	value := p.parseExpression(precedences[tok.Type] - 1)
	if value == nil {
		return nil
	}
	return &AssignExpr{Target: assignTarget(target), Value: value, Super: tok.Type == tokenSuperAssign, position: tok.Pos}
}

func (p *parser) parseRightAssignExpression(value Expression) Expression {
	tok := p.curToken
	p.skipPeekNewlines()
	p.nextToken()
	target := p.parseExpression(precRightAssign)
	if target == nil {
		return nil
	}
	if !isAssignable(target) {
		p.addParseError(tok.Pos, "invalid assignment target")
		return nil
	}
	return &AssignExpr{Target: assignTarget(target), Value: value, position: tok.Pos}
}

// assignTarget turns "x" <- 1 into x <- 1.
func assignTarget(target Expression) Expression {
	if lit, ok := target.(*StringLiteral); ok {
		return &Identifier{Name: lit.Value, position: lit.position}
	}
	return target
}

func (p *parser) parseBlockExpression() Expression {
	pos := p.curToken.Pos
	p.braceDepth++
	defer func() { p.braceDepth-- }()

	block := &BlockExpr{position: pos}
	p.nextToken()
	for {
		switch p.curToken.Type {
		case tokenNewline, tokenSemicolon:
			p.nextToken()
			continue
		case tokenRBrace:
			return block
		case tokenEOF:
			p.errorExpected(p.curToken, "'}'")
			return nil
		}
		expr := p.parseExpression(lowestPrec)
		if expr == nil {
			return nil
		}
		block.Exprs = append(block.Exprs, expr)
		switch p.peekToken.Type {
		case tokenNewline, tokenSemicolon, tokenRBrace:
			p.nextToken()
		default:
			p.errorUnexpected(p.peekToken)
			return nil
		}
	}
}

func (p *parser) parseIfExpression() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	p.skipPeekNewlines()
	p.nextToken()
	consequent := p.parseExpression(lowestPrec)
	if consequent == nil {
		return nil
	}

	expr := &IfExpr{Condition: condition, Consequent: consequent, position: pos}
	if p.peekToken.Type == tokenNewline && p.braceDepth > 0 && p.tokenAt(p.index+2).Type == tokenElse {
		p.nextToken()
	}
	if p.peekToken.Type != tokenElse {
		return expr
	}
	p.nextToken()
	p.skipPeekNewlines()
	p.nextToken()
	alternate := p.parseExpression(lowestPrec)
	if alternate == nil {
		return nil
	}
	expr.Alternate = alternate
	return expr
}

func (p *parser) parseForExpression() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	iterator := p.curToken.Literal
	if !p.expectPeek(tokenIn) {
		return nil
	}
	p.nextToken()
	iterable := p.parseExpression(lowestPrec)
	if iterable == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	p.skipPeekNewlines()
	p.nextToken()
	body := p.parseExpression(lowestPrec)
	if body == nil {
		return nil
	}
	return &ForExpr{Iterator: iterator, Iterable: iterable, Body: body, position: pos}
}

func (p *parser) parseWhileExpression() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	p.skipPeekNewlines()
	p.nextToken()
	body := p.parseExpression(lowestPrec)
	if body == nil {
		return nil
	}
	return &WhileExpr{Condition: condition, Body: body, position: pos}
}

func (p *parser) parseRepeatExpression() Expression {
	pos := p.curToken.Pos
	p.skipPeekNewlines()
	p.nextToken()
	body := p.parseExpression(lowestPrec)
	if body == nil {
		return nil
	}
	return &RepeatExpr{Body: body, position: pos}
}

func (p *parser) parseBreakExpression() Expression {
	return &BreakExpr{position: p.curToken.Pos}
}

func (p *parser) parseNextExpression() Expression {
	return &NextExpr{position: p.curToken.Pos}
}
