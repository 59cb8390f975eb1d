package parser

import (
	"strconv"
	"strings"
)

// TokenType identifies the variant of a Token.
type TokenType uint

const (
	StartTagToken TokenType = iota
	EndTagToken
	CommentToken
	DoctypeToken
	CharactersToken
	EndOfInputToken
)

func (t TokenType) String() string {
	switch t {
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	case DoctypeToken:
		return "Doctype"
	case CharactersToken:
		return "Characters"
	case EndOfInputToken:
		return "EndOfInput"
	}
	return "TokenType(" + strconv.Itoa(int(t)) + ")"
}

// Token is a concrete token that is ready to be emitted. It is one of
// StartTag, EndTag, Comment, Doctype, Characters or EndOfInput.
type Token interface {
	Type() TokenType
	String() string
}

// Attribute is a name/value pair of a tag. Names are ASCII lower case.
type Attribute struct {
	Name  string
	Value string
}

// StartTag is an opening tag. Attribute names are unique and kept in source
// order.
type StartTag struct {
	Name        string
	Attributes  []Attribute
	SelfClosing bool
}

// EndTag is a closing tag. Attributes and SelfClosing are only ever set by
// malformed input.
type EndTag struct {
	Name        string
	Attributes  []Attribute
	SelfClosing bool
}

// Comment holds the text between the comment delimiters.
type Comment struct {
	Data string
}

// Doctype is a document type declaration. A nil identifier was absent, which
// is different from an empty one.
type Doctype struct {
	Name        string
	PublicID    *string
	SystemID    *string
	ForceQuirks bool
}

// Characters is a run of text.
type Characters struct {
	Data string
}

// EndOfInput is always the last token.
type EndOfInput struct{}

func (StartTag) Type() TokenType   { return StartTagToken }
func (EndTag) Type() TokenType     { return EndTagToken }
func (Comment) Type() TokenType    { return CommentToken }
func (Doctype) Type() TokenType    { return DoctypeToken }
func (Characters) Type() TokenType { return CharactersToken }
func (EndOfInput) Type() TokenType { return EndOfInputToken }

// Attr returns the value of the named attribute.
func (t StartTag) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (t StartTag) String() string {
	return formatTag("<", t.Name, t.Attributes, t.SelfClosing)
}

func (t EndTag) String() string {
	return formatTag("</", t.Name, t.Attributes, t.SelfClosing)
}

func formatTag(open, name string, attrs []Attribute, selfClosing bool) string {
	var sb strings.Builder
	sb.WriteString(open)
	sb.WriteString(name)
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(a.Value))
	}
	if selfClosing {
		sb.WriteByte('/')
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t Comment) String() string {
	return "<!--" + t.Data + "-->"
}

func (t Doctype) String() string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(t.Name)
	if t.PublicID != nil {
		sb.WriteString(" PUBLIC ")
		sb.WriteString(strconv.Quote(*t.PublicID))
	}
	if t.SystemID != nil {
		if t.PublicID == nil {
			sb.WriteString(" SYSTEM")
		}
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(*t.SystemID))
	}
	sb.WriteByte('>')
	if t.ForceQuirks {
		sb.WriteString(" quirks")
	}
	return sb.String()
}

func (t Characters) String() string {
	return strconv.Quote(t.Data)
}

func (EndOfInput) String() string {
	return "EOF"
}

type attributeBuilder struct {
	name    strings.Builder
	value   strings.Builder
	invalid bool
}

// TokenBuilder builds the token in progress during the tokenization phase.
type TokenBuilder struct {
	kind        TokenType
	name        strings.Builder
	data        strings.Builder
	attributes  []*attributeBuilder
	publicID    strings.Builder
	systemID    strings.Builder
	hasPublicID bool
	hasSystemID bool
	selfClosing bool
	forceQuirks bool
	tempBuffer  strings.Builder
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// reset clears everything but the temp buffer, which has its own life cycle.
func (t *TokenBuilder) reset(kind TokenType) {
	t.kind = kind
	t.name.Reset()
	t.data.Reset()
	t.attributes = nil
	t.publicID.Reset()
	t.systemID.Reset()
	t.hasPublicID = false
	t.hasSystemID = false
	t.selfClosing = false
	t.forceQuirks = false
}

// NewStartTag starts a new start tag token.
func (t *TokenBuilder) NewStartTag() {
	t.reset(StartTagToken)
}

// NewEndTag starts a new end tag token.
func (t *TokenBuilder) NewEndTag() {
	t.reset(EndTagToken)
}

// NewComment starts a new, empty comment token.
func (t *TokenBuilder) NewComment() {
	t.reset(CommentToken)
}

// NewDoctype starts a new doctype token with both identifiers missing.
func (t *TokenBuilder) NewDoctype() {
	t.reset(DoctypeToken)
}

// Kind returns the type of the token in progress.
func (t *TokenBuilder) Kind() TokenType {
	return t.kind
}

// WriteName appends a character to the tag or doctype name.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// Name returns the tag or doctype name gathered so far.
func (t *TokenBuilder) Name() string {
	return t.name.String()
}

// WriteData appends a character to the comment data.
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// WriteDataString appends text to the comment data.
func (t *TokenBuilder) WriteDataString(s string) {
	t.data.WriteString(s)
}

// NewAttribute starts a new attribute whose name begins with r.
func (t *TokenBuilder) NewAttribute(r rune) {
	a := &attributeBuilder{}
	a.name.WriteRune(r)
	t.attributes = append(t.attributes, a)
}

func (t *TokenBuilder) currentAttribute() *attributeBuilder {
	if len(t.attributes) == 0 {
		t.attributes = append(t.attributes, &attributeBuilder{})
	}
	return t.attributes[len(t.attributes)-1]
}

// WriteAttributeName appends a character to the current attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.currentAttribute().name.WriteRune(r)
}

// WriteAttributeValue appends a character to the current attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.currentAttribute().value.WriteRune(r)
}

// WriteAttributeValueString appends text to the current attribute's value.
func (t *TokenBuilder) WriteAttributeValueString(s string) {
	t.currentAttribute().value.WriteString(s)
}

// InvalidateDuplicateAttribute compares the current attribute's name with
// the names before it, newest first. On a match the current attribute is
// marked invalid, so it is dropped when the token is built, and its name is
// returned.
func (t *TokenBuilder) InvalidateDuplicateAttribute() (string, bool) {
	n := len(t.attributes)
	if n < 2 {
		return "", false
	}
	cur := t.attributes[n-1]
	name := cur.name.String()
	for i := n - 2; i >= 0; i-- {
		if t.attributes[i].name.String() == name {
			cur.invalid = true
			return name, true
		}
	}
	return "", false
}

// EnablePublicIdentifier marks the public identifier as present and empty.
func (t *TokenBuilder) EnablePublicIdentifier() {
	t.hasPublicID = true
	t.publicID.Reset()
}

// WritePublicIdentifier appends a character to the public identifier.
func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	t.publicID.WriteRune(r)
}

// EnableSystemIdentifier marks the system identifier as present and empty.
func (t *TokenBuilder) EnableSystemIdentifier() {
	t.hasSystemID = true
	t.systemID.Reset()
}

// WriteSystemIdentifier appends a character to the system identifier.
func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	t.systemID.WriteRune(r)
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes to the force-quirks flag to "set".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// WriteTempBuffer appends a character to the temporary buffer.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the temporary buffer to be used by some other state.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer just returns the string version of the current buffer contents.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// Token creates a token of the current kind from the builder contents.
// Attributes invalidated as duplicates are left out.
func (t *TokenBuilder) Token() Token {
	switch t.kind {
	case StartTagToken:
		return StartTag{
			Name:        t.name.String(),
			Attributes:  t.buildAttributes(),
			SelfClosing: t.selfClosing,
		}
	case EndTagToken:
		return EndTag{
			Name:        t.name.String(),
			Attributes:  t.buildAttributes(),
			SelfClosing: t.selfClosing,
		}
	case CommentToken:
		return Comment{Data: t.data.String()}
	case DoctypeToken:
		d := Doctype{
			Name:        t.name.String(),
			ForceQuirks: t.forceQuirks,
		}
		if t.hasPublicID {
			id := t.publicID.String()
			d.PublicID = &id
		}
		if t.hasSystemID {
			id := t.systemID.String()
			d.SystemID = &id
		}
		return d
	}
	return nil
}

func (t *TokenBuilder) buildAttributes() []Attribute {
	var attrs []Attribute
	for _, a := range t.attributes {
		if a.invalid {
			continue
		}
		attrs = append(attrs, Attribute{Name: a.name.String(), Value: a.value.String()})
	}
	return attrs
}
