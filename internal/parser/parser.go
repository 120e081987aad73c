package parser

import (
	"context"
	"strconv"

	"fortio.org/safecast"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/lexer"
	"jaiparse/internal/source"
	"jaiparse/internal/token"
	"jaiparse/internal/trace"
)

// Parser holds the state for one file. Tokens are lexed up front so that
// lookahead across newlines is a slice index.
type Parser struct {
	toks    []token.Token
	pos     int
	taken   int // index past the last token that became a leaf
	b       *cst.Builder
	opts    Options
	rep     diag.Reporter
	errs    int
	sig     []bool // newline significance per open context
	depth   int
	aborted bool
	aliases *source.Interner
}

// Parse lexes and parses src as a single file.
func Parse(src []byte, opts Options) (*cst.Tree, []diag.Diagnostic) {
	return ParseFile(context.Background(), &source.File{ID: opts.File, Content: src}, opts)
}

// ParseFile is Parse for a loaded file. Lexing and parsing are traced as
// separate pass spans when ctx carries a tracer.
func ParseFile(ctx context.Context, file *source.File, opts Options) (*cst.Tree, []diag.Diagnostic) {
	opts.File = file.ID
	opts = opts.withDefaults()

	bag := diag.NewBag(opts.MaxDiagnostics)
	// recovery may revisit a span the lexer already reported on
	rep := diag.NewDedupReporter(diag.MultiReporter{diag.BagReporter{Bag: bag}, opts.Reporter})

	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	sp := trace.Begin(tr, trace.ScopePass, "lex", parent)
	toks := lexer.Tokenize(file, lexer.Options{
		Reporter:        rep,
		MaxNestingDepth: opts.MaxNestingDepth,
	})
	sp.WithExtra("tokens", strconv.Itoa(len(toks))).End("")

	sp = trace.Begin(tr, trace.ScopePass, "parse", parent)
	tree := parseTokens(file.Content, toks, rep, opts)
	sp.WithExtra("nodes", strconv.Itoa(tree.Len())).End("")

	bag.Sort()
	return tree, bag.Items()
}

func parseTokens(src []byte, toks []token.Token, rep diag.Reporter, opts Options) *cst.Tree {
	capHint, err := safecast.Conv[uint](len(toks) * 2)
	if err != nil {
		capHint = 0
	}
	p := &Parser{
		toks:    toks,
		b:       cst.NewBuilder(src, opts.File, capHint),
		opts:    opts,
		rep:     rep,
		sig:     []bool{true},
		aliases: source.NewNFCInterner(),
	}
	p.collectExtras()
	collectAliases(toks, p.aliases)
	p.parseSourceFile()
	return p.b.Finish()
}

// collectExtras turns every comment and note into an extra node.
func (p *Parser) collectExtras() {
	for _, tok := range p.toks {
		for _, tv := range tok.Leading {
			switch tv.Kind {
			case token.TriviaLineComment, token.TriviaBlockComment:
				p.b.Extra(cst.Comment, tv.Span)
			case token.TriviaNote:
				p.b.Extra(cst.Note, tv.Span)
			}
		}
	}
}

// parseSourceFile parses items until EOF. Stray terminators become anonymous
// children of the root.
func (p *Parser) parseSourceFile() {
	for {
		switch p.cur().Kind {
		case token.EOF:
			return
		case token.Newline, token.Semicolon, token.Nul:
			p.bump(cst.Token)
			continue
		}

		fr := p.frame()
		m := p.b.Open()
		ok := p.parseItem(m)
		if p.aborted {
			p.abortRest(m)
			return
		}
		if ok && !p.atTerminator() {
			p.unexpected(diag.SynExpectTerminator, "newline or ';' after declaration")
			ok = false
		}
		if !ok {
			p.recover(m, fr, false)
		}
	}
}
