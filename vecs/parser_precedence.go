package vecs

func isAssignable(expr Expression) bool {
	switch target := expr.(type) {
	case *Identifier, *StringLiteral:
		return true
	case *IndexExpr:
		_, ok := target.Object.(*Identifier)
		return ok
	default:
		return false
	}
}

const (
	lowestPrec = iota
	precEqAssign
	precLeftAssign
	precRightAssign
	precOr
	precAnd
	precNot
	precComparison
	precSum
	precProduct
	precSpecial
	precRange
	precUnary
	precPower
	precCall
)

var precedences = map[TokenType]int{
	tokenEqAssign:    precEqAssign,
	tokenLeftAssign:  precLeftAssign,
	tokenSuperAssign: precLeftAssign,
	tokenRightAssign: precRightAssign,
	tokenOr:          precOr,
	tokenOrOr:        precOr,
	tokenAnd:         precAnd,
	tokenAndAnd:      precAnd,
	tokenEQ:          precComparison,
	tokenNotEQ:       precComparison,
	tokenLT:          precComparison,
	tokenLTE:         precComparison,
	tokenGT:          precComparison,
	tokenGTE:         precComparison,
	tokenPlus:        precSum,
	tokenMinus:       precSum,
	tokenAsterisk:    precProduct,
	tokenSlash:       precProduct,
	tokenSpecial:     precSpecial,
	tokenColon:       precRange,
	tokenCaret:       precPower,
	tokenLParen:      precCall,
	tokenLBracket:    precCall,
	tokenLBracket2:   precCall,
}

// rightAssociative operators bind their right operand at one level lower so
// that a chain groups from the right.
var rightAssociative = map[TokenType]bool{
	tokenEqAssign:    true,
	tokenLeftAssign:  true,
	tokenSuperAssign: true,
	tokenCaret:       true,
}
