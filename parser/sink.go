package parser

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/heathj/htmltok/parser/diag"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/atom"
)

type namespace uint

const (
	htmlNamespace namespace = iota
	mathmlNamespace
	svgNamespace
)

func (n namespace) String() string {
	switch n {
	case mathmlNamespace:
		return "math"
	case svgNamespace:
		return "svg"
	}
	return "html"
}

type openElement struct {
	name string
	ns   namespace
}

// contentModels lists the HTML elements whose text is not lexed as normal
// content. noscript is only raw when scripting is enabled.
var contentModels = map[atom.Atom]ContentModel{
	atom.Title:     EscapableRawContent,
	atom.Textarea:  EscapableRawContent,
	atom.Style:     RawContent,
	atom.Xmp:       RawContent,
	atom.Iframe:    RawContent,
	atom.Noembed:   RawContent,
	atom.Noframes:  RawContent,
	atom.Script:    ScriptContent,
	atom.Plaintext: PlaintextContent,
}

var voidElements = map[atom.Atom]bool{
	atom.Area:     true,
	atom.Base:     true,
	atom.Basefont: true,
	atom.Bgsound:  true,
	atom.Br:       true,
	atom.Col:      true,
	atom.Embed:    true,
	atom.Frame:    true,
	atom.Hr:       true,
	atom.Img:      true,
	atom.Input:    true,
	atom.Keygen:   true,
	atom.Link:     true,
	atom.Meta:     true,
	atom.Param:    true,
	atom.Source:   true,
	atom.Track:    true,
	atom.Wbr:      true,
}

// htmlIntegrationPoints are the foreign elements whose children are HTML
// again.
var htmlIntegrationPoints = map[namespace]map[string]bool{
	svgNamespace:    {"foreignobject": true, "desc": true, "title": true},
	mathmlNamespace: {"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true, "annotation-xml": true},
}

type sinkHandler func(t Token)

// TokenSink is a TokenConsumer that records tokens and parse errors. It does
// not build a tree, but it keeps a stack of open elements so it can make the
// decisions tree construction makes for the tokenizer: switching the content
// model after raw text elements, acknowledging self-closing void and foreign
// elements, and allowing CDATA sections in foreign content.
type TokenSink struct {
	Tokens []Token
	Errors *diag.Bag

	tokenizer           *HTMLTokenizer
	scriptingEnabled    bool
	coalesce            bool
	stackOfOpenElements *arraystack.Stack
	lastStartTagForeign bool
	mappings            map[TokenType]sinkHandler
	log                 *logrus.Entry
}

// NewTokenSink creates a TokenSink. Scripting and Coalesce are taken from
// opts.
func NewTokenSink(opts Options) *TokenSink {
	s := &TokenSink{
		Errors:              diag.NewBag(),
		scriptingEnabled:    opts.Scripting,
		coalesce:            opts.Coalesce,
		stackOfOpenElements: arraystack.New(),
		log:                 opts.logger().WithField("component", "sink"),
	}
	s.createMappings()
	return s
}

func (s *TokenSink) createMappings() {
	s.mappings = map[TokenType]sinkHandler{
		StartTagToken: s.startTagHandler,
		EndTagToken:   s.endTagHandler,
	}
}

// StartTokenization remembers the tokenizer so content models can be
// switched.
func (s *TokenSink) StartTokenization(t *HTMLTokenizer) {
	s.tokenizer = t
}

// HandleToken records t and updates the open element stack.
func (s *TokenSink) HandleToken(t Token) {
	s.record(t)
	if h, ok := s.mappings[t.Type()]; ok {
		h(t)
	}
}

func (s *TokenSink) record(t Token) {
	if c, ok := t.(Characters); ok && s.coalesce && len(s.Tokens) > 0 {
		if last, ok := s.Tokens[len(s.Tokens)-1].(Characters); ok {
			s.Tokens[len(s.Tokens)-1] = Characters{Data: last.Data + c.Data}
			return
		}
	}
	s.Tokens = append(s.Tokens, t)
}

// ReportParseError adds err to the Errors bag.
func (s *TokenSink) ReportParseError(err *diag.ParseError) {
	s.Errors.Add(err)
}

// IsCdataSectionAllowed reports whether the current node is a foreign
// element.
func (s *TokenSink) IsCdataSectionAllowed() bool {
	cur, ok := s.currentNode()
	return ok && cur.ns != htmlNamespace
}

// IsSelfClosingAcknowledged accepts the self-closing flag on void elements and
// on any element in foreign content.
func (s *TokenSink) IsSelfClosingAcknowledged(tagName string) bool {
	return s.lastStartTagForeign || voidElements[atom.Lookup([]byte(tagName))]
}

func (s *TokenSink) currentNode() (openElement, bool) {
	v, ok := s.stackOfOpenElements.Peek()
	if !ok {
		return openElement{}, false
	}
	return v.(openElement), true
}

// namespaceFor decides the namespace of a new element from its name and the
// current node.
func (s *TokenSink) namespaceFor(name string) namespace {
	switch name {
	case "svg":
		return svgNamespace
	case "math":
		return mathmlNamespace
	}
	cur, ok := s.currentNode()
	if !ok || cur.ns == htmlNamespace || htmlIntegrationPoints[cur.ns][cur.name] {
		return htmlNamespace
	}
	return cur.ns
}

func (s *TokenSink) startTagHandler(t Token) {
	tag := t.(StartTag)
	ns := s.namespaceFor(tag.Name)
	s.lastStartTagForeign = ns != htmlNamespace

	if ns != htmlNamespace {
		if !tag.SelfClosing {
			s.stackOfOpenElements.Push(openElement{name: tag.Name, ns: ns})
		}
		return
	}

	a := atom.Lookup([]byte(tag.Name))
	if voidElements[a] {
		return
	}
	s.stackOfOpenElements.Push(openElement{name: tag.Name, ns: ns})

	m, ok := contentModels[a]
	if a == atom.Noscript && s.scriptingEnabled {
		m, ok = RawContent, true
	}
	if ok && s.tokenizer != nil {
		s.log.WithFields(logrus.Fields{"tag": tag.Name, "model": m}).Debug("switching content model")
		s.tokenizer.SetContentModel(m)
	}
}

// endTagHandler pops the stack up to and including the nearest element with
// the same name. Unmatched end tags are ignored.
func (s *TokenSink) endTagHandler(t Token) {
	tag := t.(EndTag)
	for i, v := range s.stackOfOpenElements.Values() {
		if v.(openElement).name != tag.Name {
			continue
		}
		for ; i >= 0; i-- {
			s.stackOfOpenElements.Pop()
		}
		return
	}
}

// Depth returns the number of open elements.
func (s *TokenSink) Depth() int {
	return s.stackOfOpenElements.Size()
}
