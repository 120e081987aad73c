package cst

// Kind tags a syntax node. The named kinds are the stable consumer-facing
// schema; Token marks anonymous punctuation, keyword and terminator leaves.
type Kind uint8

const (
	KindInvalid Kind = iota
	SourceFile
	ImportDeclaration
	ConstDeclaration
	VarDeclaration
	Identifier
	TypeIdentifier
	FieldIdentifier
	ImportIdentifier
	DirectiveIdentifier
	StructType
	StructBlock
	FieldDeclaration
	StructLiteral
	StructValue
	KeyedElement
	ArrayType
	ArrayViewType
	ImplicitLengthArrayType
	ArrayLiteral
	ArrayValue
	InterpretedStringLiteral
	IntLiteral
	FloatLiteral
	Null
	True
	False
	Iota
	Comment
	Note
	Directive
	Error

	Token
	EscapeSequence
	StringContent
	ArgumentList
	QualifiedType
)

var kindNames = [...]string{
	KindInvalid:              "Invalid",
	SourceFile:               "SourceFile",
	ImportDeclaration:        "ImportDeclaration",
	ConstDeclaration:         "ConstDeclaration",
	VarDeclaration:           "VarDeclaration",
	Identifier:               "Identifier",
	TypeIdentifier:           "TypeIdentifier",
	FieldIdentifier:          "FieldIdentifier",
	ImportIdentifier:         "ImportIdentifier",
	DirectiveIdentifier:      "DirectiveIdentifier",
	StructType:               "StructType",
	StructBlock:              "StructBlock",
	FieldDeclaration:         "FieldDeclaration",
	StructLiteral:            "StructLiteral",
	StructValue:              "StructValue",
	KeyedElement:             "KeyedElement",
	ArrayType:                "ArrayType",
	ArrayViewType:            "ArrayViewType",
	ImplicitLengthArrayType:  "ImplicitLengthArrayType",
	ArrayLiteral:             "ArrayLiteral",
	ArrayValue:               "ArrayValue",
	InterpretedStringLiteral: "InterpretedStringLiteral",
	IntLiteral:               "IntLiteral",
	FloatLiteral:             "FloatLiteral",
	Null:                     "Null",
	True:                     "True",
	False:                    "False",
	Iota:                     "Iota",
	Comment:                  "Comment",
	Note:                     "Note",
	Directive:                "Directive",
	Error:                    "Error",
	Token:                    "Token",
	EscapeSequence:           "EscapeSequence",
	StringContent:            "StringContent",
	ArgumentList:             "ArgumentList",
	QualifiedType:            "QualifiedType",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Named reports whether the kind shows up in S-expressions.
func (k Kind) Named() bool {
	return k != Token && k != KindInvalid
}

// IsExtra reports whether nodes of this kind live in Tree.Extras.
func (k Kind) IsExtra() bool {
	return k == Comment || k == Note
}

// Supertype is one of the closed variant groups of the grammar.
type Supertype uint8

const (
	SuperNone Supertype = iota
	SuperType
	SuperExpression
	SuperStatement
)

func (s Supertype) String() string {
	switch s {
	case SuperType:
		return "_type"
	case SuperExpression:
		return "_expression"
	case SuperStatement:
		return "_statement"
	}
	return ""
}

// Supertype returns the group k belongs to; every kind is in at most one.
func (k Kind) Supertype() Supertype {
	switch k {
	case TypeIdentifier, StructType, ArrayType, ArrayViewType, ImplicitLengthArrayType, QualifiedType:
		return SuperType
	case Identifier, StructLiteral, ArrayLiteral, InterpretedStringLiteral,
		IntLiteral, FloatLiteral, Null, True, False, Iota:
		return SuperExpression
	case ConstDeclaration, VarDeclaration:
		return SuperStatement
	}
	return SuperNone
}

// Members lists the kinds of a supertype group in schema order.
func (s Supertype) Members() []Kind {
	var out []Kind
	for k := SourceFile; k <= QualifiedType; k++ {
		if k.Supertype() == s {
			out = append(out, k)
		}
	}
	return out
}
