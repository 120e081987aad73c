package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"jaiparse/internal/source"
	"jaiparse/internal/token"
)

type TriviaOutput struct {
	Kind  string `json:"kind"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type TokenOutput struct {
	Kind         string         `json:"kind"`
	Text         string         `json:"text,omitempty"`
	Start        uint32         `json:"start"`
	End          uint32         `json:"end"`
	Leading      []TriviaOutput `json:"leading,omitempty"`
	Unterminated bool           `json:"unterminated,omitempty"`
}

// FormatTokensPretty prints one token per line with its position and the
// kinds of its leading trivia. Whitespace-only trivia is left out unless
// withSpace is set.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, withSpace bool) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		var leading []string
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaSpace && !withSpace {
				continue
			}
			leading = append(leading, tr.Kind.String())
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if tok.Unterminated() {
			sb.WriteString(" unterminated")
		}
		if len(leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(leading, ", "))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		to := TokenOutput{
			Kind:         tok.Kind.String(),
			Text:         tok.Text,
			Start:        tok.Span.Start,
			End:          tok.Span.End,
			Unterminated: tok.Unterminated(),
		}
		for _, tr := range tok.Leading {
			to.Leading = append(to.Leading, TriviaOutput{Kind: tr.Kind.String(), Start: tr.Span.Start, End: tr.Span.End})
		}
		out = append(out, to)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
