package parser

import (
	"io"

	"github.com/heathj/htmltok/parser/diag"
	"github.com/heathj/htmltok/parser/input"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Options configures a Parser, and the tokenizer and sink it creates.
type Options struct {
	// ContentModel is the initial content model, NormalContent by default.
	ContentModel ContentModel
	// LastStartTag names the element whose end tag closes the initial raw
	// content, as when tokenizing the inside of a <script>.
	LastStartTag string
	// Charset is the encoding of the input. Empty means UTF-8.
	Charset string
	// Scripting makes noscript a raw text element.
	Scripting bool
	// Coalesce merges adjacent Characters tokens.
	Coalesce bool
	// ErrorContext attaches the source line of each parse error.
	ErrorContext   bool
	EntityResolver EntityResolver
	Logger         *logrus.Entry
}

func (o Options) logger() *logrus.Entry {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// Result is the outcome of a Parse.
type Result struct {
	Tokens []Token
	Errors []*diag.ParseError
}

// Parser wires an input stream, a tokenizer and a TokenSink together.
type Parser struct {
	Tokenizer *HTMLTokenizer
	Sink      *TokenSink
	input     *input.Stream
	opts      Options
	parsed    bool
}

// NewParser reads all of r, decoding it with opts.Charset.
func NewParser(r io.Reader, opts Options) (*Parser, error) {
	in, err := input.NewReader(r, opts.Charset)
	if err != nil {
		return nil, errors.Wrap(err, "creating parser")
	}
	return newParser(in, opts), nil
}

// NewParserString creates a Parser over a string.
func NewParserString(s string, opts Options) *Parser {
	return newParser(input.NewString(s), opts)
}

func newParser(in *input.Stream, opts Options) *Parser {
	sink := NewTokenSink(opts)
	return &Parser{
		Tokenizer: NewHTMLTokenizer(in, sink, opts),
		Sink:      sink,
		input:     in,
		opts:      opts,
	}
}

// Parse tokenizes the whole input. A Parser can only be used once.
func (p *Parser) Parse() (*Result, error) {
	if p.parsed {
		return nil, errors.New("parser: input already parsed")
	}
	p.parsed = true
	p.Tokenizer.Tokenize()

	errs := p.Sink.Errors.Errors()
	if p.opts.ErrorContext {
		for _, e := range errs {
			e.Context = p.input.Context(e.Offset)
		}
	}
	return &Result{Tokens: p.Sink.Tokens, Errors: errs}, nil
}

// Tokenize is a shortcut for tokenizing s with the default options.
func Tokenize(s string) ([]Token, []*diag.ParseError) {
	res, _ := NewParserString(s, Options{}).Parse()
	return res.Tokens, res.Errors
}
