package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexInvalidEscape            Code = 1006
	LexCommentTooDeep           Code = 1007

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectType         Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectIdentifier   Code = 2005
	SynExpectTerminator   Code = 2006
	SynExpectImportPath   Code = 2007
	SynUntypedLiteral     Code = 2008
	SynExpectKeyedElement Code = 2009
	SynMaxNesting         Code = 2010

	IOLoadFileError Code = 4001

	// Project
	ProjInfo             Code = 5000
	ProjUnknownConfigKey Code = 5001
	ProjMissingImport    Code = 5002
	ProjSelfImport       Code = 5003
	ProjImportCycle      Code = 5004
	ProjInvalidManifest  Code = 5005
	ProjDependencyFailed Code = 5007
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexTokenTooLong:             "Token too long",
	LexInvalidEscape:            "Invalid escape sequence",
	LexCommentTooDeep:           "Block comment nested too deeply",

	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedDelimiter:  "Unclosed delimiter",
	SynExpectType:         "Expected type",
	SynExpectExpression:   "Expected expression",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectTerminator:   "Expected end of declaration",
	SynExpectImportPath:   "Expected import path",
	SynUntypedLiteral:     "Struct literal without type",
	SynExpectKeyedElement: "Expected keyed element",
	SynMaxNesting:         "Maximum nesting depth exceeded",

	IOLoadFileError: "I/O load file error",

	ProjInfo:             "Project information",
	ProjUnknownConfigKey: "Unknown manifest key",
	ProjMissingImport:    "Imported file not found",
	ProjSelfImport:       "File imports itself",
	ProjImportCycle:      "Import cycle detected",
	ProjInvalidManifest:  "Invalid manifest",
	ProjDependencyFailed: "Imported file has errors",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
