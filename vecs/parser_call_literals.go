package vecs

import "fmt"

func (p *parser) parseCallExpression(function Expression) Expression {
	if function == nil {
		return nil
	}
	expr := &CallExpr{Callee: function, position: function.Pos()}
	args := []CallArgument{}

	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		expr.Args = args
		return expr
	}

	p.nextToken()
	if !p.parseCallArgument(&args) {
		return nil
	}

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		if !p.parseCallArgument(&args) {
			return nil
		}
	}

	if !p.expectPeek(tokenRParen) {
		return nil
	}

	expr.Args = args
	return expr
}

func (p *parser) parseCallArgument(args *[]CallArgument) bool {
	if isLabelToken(p.curToken) && p.peekToken.Type == tokenEqAssign {
		name := p.curToken.Literal
		p.nextToken()
		p.nextToken()
		if p.curToken.Type == tokenComma || p.curToken.Type == tokenRParen {
			p.addParseError(p.curToken.Pos, fmt.Sprintf("missing value for argument %s", name))
			return false
		}
		value := p.parseExpression(precEqAssign)
		if value == nil {
			return false
		}
		*args = append(*args, CallArgument{Name: name, Value: value})
		return true
	}

	if p.curToken.Type == tokenComma || p.curToken.Type == tokenRParen {
		p.errorUnexpected(p.curToken)
		return false
	}
	expr := p.parseExpression(precEqAssign)
	if expr == nil {
		return false
	}
	*args = append(*args, CallArgument{Value: expr})
	return true
}

func isLabelToken(tok Token) bool {
	switch tok.Type {
	case tokenIdent, tokenString:
		return tok.Literal != ""
	default:
		return false
	}
}

func (p *parser) parseIndexExpression(object Expression) Expression {
	tok := p.curToken
	double := tok.Type == tokenLBracket2
	p.nextToken()
	index := p.parseExpression(lowestPrec)
	if index == nil {
		return nil
	}
	if !p.expectPeek(tokenRBracket) {
		return nil
	}
	if double && !p.expectPeek(tokenRBracket) {
		return nil
	}
	return &IndexExpr{Object: object, Index: index, Double: double, position: tok.Pos}
}

func (p *parser) parseFunctionLiteral() Expression {
	start := p.curToken
	if !p.expectPeek(tokenLParen) {
		return nil
	}

	params := []Param{}
	seen := make(map[string]bool)
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
	} else {
		for {
			p.nextToken()
			if p.curToken.Type != tokenIdent {
				p.errorExpected(p.curToken, "parameter name")
				return nil
			}
			param := Param{Name: p.curToken.Literal}
			if seen[param.Name] {
				if param.Name == DotsName {
					p.addParseError(p.curToken.Pos, "only one ... parameter is allowed")
				} else {
					p.addParseError(p.curToken.Pos, fmt.Sprintf("repeated formal argument '%s'", param.Name))
				}
				return nil
			}
			seen[param.Name] = true
			if p.peekToken.Type == tokenEqAssign {
				if param.Name == DotsName {
					p.addParseError(p.peekToken.Pos, "... cannot have a default value")
					return nil
				}
				p.nextToken()
				p.nextToken()
				param.Default = p.parseExpression(precEqAssign)
				if param.Default == nil {
					return nil
				}
			}
			params = append(params, param)
			if p.peekToken.Type != tokenComma {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(tokenRParen) {
			return nil
		}
	}

	p.skipPeekNewlines()
	p.nextToken()
	body := p.parseExpression(lowestPrec)
	if body == nil {
		return nil
	}
	return &FunctionLiteral{
		Params:   params,
		Body:     body,
		Source:   p.source[start.Offset:p.exprEnd()],
		position: start.Pos,
	}
}
