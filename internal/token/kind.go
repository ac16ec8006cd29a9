package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	// Type keywords.
	KwInt   // int
	KwFloat // float
	KwVoid  // void
	KwBool  // bool

	KwIf     // if
	KwThen   // then
	KwElse   // else
	KwReturn // return
	KwTrue   // true
	KwFalse  // false

	IntLit
	FloatLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	Gt        // >
	Semicolon // ;
	Comma     // ,
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwInt:     "int",
	KwFloat:   "float",
	KwVoid:    "void",
	KwBool:    "bool",
	KwIf:      "if",
	KwThen:    "then",
	KwElse:    "else",
	KwReturn:  "return",
	KwTrue:    "true",
	KwFalse:   "false",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Assign:    "=",
	EqEq:      "==",
	Bang:      "!",
	BangEq:    "!=",
	Lt:        "<",
	Gt:        ">",
	Semicolon: ";",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
}

// String returns the lexeme for keywords and punctuation and the kind name otherwise.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
