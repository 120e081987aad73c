package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown char, malformed number).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit is a binary, decimal or hexadecimal integer literal.
	IntLit
	// FloatLit is a decimal floating point literal.
	FloatLit
	// StringLit is a double-quoted string literal; see Token.Parts.
	StringLit
	// Directive is '#' immediately followed by an identifier: #import, #string, #type_info_none.
	Directive

	KwStruct // struct
	KwNull   // null
	KwTrue   // true
	KwFalse  // false
	KwIota   // iota

	Colon       // :
	ColonColon  // ::
	ColonAssign // :=
	Assign      // =
	Comma       // ,
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	Dot         // .
	DotDot      // ..
	DotLBrace   // .{
	DotLBracket // .[

	Semicolon // ;
	Newline   // \n, \r\n or \r
	Nul       // a literal 0x00 byte
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	Directive:   "Directive",
	KwStruct:    "KwStruct",
	KwNull:      "KwNull",
	KwTrue:      "KwTrue",
	KwFalse:     "KwFalse",
	KwIota:      "KwIota",
	Colon:       "Colon",
	ColonColon:  "ColonColon",
	ColonAssign: "ColonAssign",
	Assign:      "Assign",
	Comma:       "Comma",
	LParen:      "LParen",
	RParen:      "RParen",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	Dot:         "Dot",
	DotDot:      "DotDot",
	DotLBrace:   "DotLBrace",
	DotLBracket: "DotLBracket",
	Semicolon:   "Semicolon",
	Newline:     "Newline",
	Nul:         "Nul",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTerminator reports whether k can end a declaration.
func (k Kind) IsTerminator() bool {
	switch k {
	case Newline, Semicolon, Nul, EOF:
		return true
	default:
		return false
	}
}
