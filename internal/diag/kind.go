package diag

// ErrorKind is the coarse classification consumers of the parser switch on.
// Several codes share a kind; codes without a dedicated kind fall back to
// KindUnexpectedToken.
type ErrorKind uint8

const (
	KindNone ErrorKind = iota
	KindUnterminatedString
	KindUnterminatedComment
	KindInvalidEscapeSequence
	KindUnexpectedToken
	KindMaxNestingExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnterminatedString:
		return "UnterminatedString"
	case KindUnterminatedComment:
		return "UnterminatedComment"
	case KindInvalidEscapeSequence:
		return "InvalidEscapeSequence"
	case KindUnexpectedToken:
		return "UnexpectedToken"
	case KindMaxNestingExceeded:
		return "MaxNestingExceeded"
	}
	return "None"
}

// Kind maps a lexical or syntax code onto its error kind. Project and I/O
// codes are not parse errors and report KindNone.
func (c Code) Kind() ErrorKind {
	switch c {
	case LexUnterminatedString:
		return KindUnterminatedString
	case LexUnterminatedBlockComment:
		return KindUnterminatedComment
	case LexInvalidEscape:
		return KindInvalidEscapeSequence
	case LexCommentTooDeep, SynMaxNesting:
		return KindMaxNestingExceeded
	case LexInfo, SynInfo:
		return KindNone
	}
	if c >= 1000 && c < 3000 {
		return KindUnexpectedToken
	}
	return KindNone
}
