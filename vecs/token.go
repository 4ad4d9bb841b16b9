package vecs

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"
	tokenNewline TokenType = "NEWLINE"

	tokenIdent  TokenType = "IDENT"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenLeftAssign  TokenType = "<-"
	tokenSuperAssign TokenType = "<<-"
	tokenRightAssign TokenType = "->"
	tokenEqAssign    TokenType = "="
	tokenPlus        TokenType = "+"
	tokenMinus       TokenType = "-"
	tokenBang        TokenType = "!"
	tokenAsterisk    TokenType = "*"
	tokenSlash       TokenType = "/"
	tokenCaret       TokenType = "^"
	tokenSpecial     TokenType = "%%"
	tokenLT          TokenType = "<"
	tokenGT          TokenType = ">"
	tokenLTE         TokenType = "<="
	tokenGTE         TokenType = ">="
	tokenEQ          TokenType = "=="
	tokenNotEQ       TokenType = "!="
	tokenAnd         TokenType = "&"
	tokenAndAnd      TokenType = "&&"
	tokenOr          TokenType = "|"
	tokenOrOr        TokenType = "||"
	tokenColon       TokenType = ":"
	tokenBackslash   TokenType = "\\"

	tokenComma     TokenType = ","
	tokenSemicolon TokenType = ";"
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenLBracket  TokenType = "["
	tokenLBracket2 TokenType = "[["
	tokenRBracket  TokenType = "]"

	tokenFunction TokenType = "FUNCTION"
	tokenIf       TokenType = "IF"
	tokenElse     TokenType = "ELSE"
	tokenFor      TokenType = "FOR"
	tokenIn       TokenType = "IN"
	tokenWhile    TokenType = "WHILE"
	tokenRepeat   TokenType = "REPEAT"
	tokenBreak    TokenType = "BREAK"
	tokenNext     TokenType = "NEXT"
	tokenTrue     TokenType = "TRUE"
	tokenFalse    TokenType = "FALSE"
	tokenNull     TokenType = "NULL"
	tokenInf      TokenType = "INF"
	tokenNaN      TokenType = "NAN"
)

// Token captures lexical information for the parser. Offset and End are byte
// offsets into the source, End being exclusive.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	Offset  int
	End     int
}

// Position identifies a line and column in the source file.
type Position struct {
	Line   int
	Column int
}
