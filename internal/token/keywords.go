package token

var keywords = map[string]Kind{
	"struct": KwStruct,
	"null":   KwNull,
	"true":   KwTrue,
	"false":  KwFalse,
	"iota":   KwIota,
}

// LookupKeyword reports whether ident is a reserved word. Keywords are
// case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Import modifiers are contextual: they only carry meaning after "#import ,".
const (
	ModifierFile   = "file"
	ModifierDir    = "dir"
	ModifierString = "string"
)

// Well-known directive names, used for suggestions on typos.
const (
	DirectiveImport = "#import"
	DirectiveString = "#string"
)

// KnownDirectives lists directives the parser recognises in some position.
var KnownDirectives = []string{
	DirectiveImport,
	DirectiveString,
	"#type_info_none",
	"#type_info_procedures_are_void_pointers",
	"#type_info_no_size_complaint",
	"#no_padding",
}
