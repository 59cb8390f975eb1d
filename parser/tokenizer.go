package parser

import (
	"github.com/heathj/htmltok/parser/diag"
	"github.com/heathj/htmltok/parser/entity"
	"github.com/heathj/htmltok/parser/input"
	"github.com/sirupsen/logrus"
)

// HTMLTokenizer holds state for the various state of the tokenizer.
type HTMLTokenizer struct {
	done                       bool
	currentState               tokenizerState
	stateOverridden            bool
	inStep                     bool
	plaintext                  bool
	input                      *input.Stream
	consumer                   TokenConsumer
	entities                   EntityResolver
	tokenBuilder               *TokenBuilder
	lastEmittedStartTagName    string
	additionalAllowedCharacter rune
	log                        *logrus.Entry
}

// NewHTMLTokenizer creates a tokenizer that reads from in and hands tokens
// and parse errors to consumer.
func NewHTMLTokenizer(in *input.Stream, consumer TokenConsumer, opts Options) *HTMLTokenizer {
	p := &HTMLTokenizer{
		input:                   in,
		consumer:                consumer,
		entities:                opts.EntityResolver,
		tokenBuilder:            newTokenBuilder(),
		lastEmittedStartTagName: opts.LastStartTag,
		log:                     opts.logger().WithField("component", "tokenizer"),
	}
	if p.entities == nil {
		p.entities = entity.Resolver{}
	}
	p.SetContentModel(opts.ContentModel)
	return p
}

// Tokenize runs the state machine until EndOfInput has been emitted. The
// stream is closed first, so everything appended to it is tokenized.
func (p *HTMLTokenizer) Tokenize() {
	p.input.Close()
	p.consumer.StartTokenization(p)
	for !p.done {
		p.step()
	}
}

// Done reports whether EndOfInput has been emitted.
func (p *HTMLTokenizer) Done() bool {
	return p.done
}

// SetContentModel switches the content model for the characters that follow.
// Called from HandleToken it overrides the state the tokenizer would
// otherwise return to. Once PlaintextContent is selected it cannot be left.
func (p *HTMLTokenizer) SetContentModel(m ContentModel) {
	if p.plaintext {
		return
	}
	if m == PlaintextContent {
		p.plaintext = true
	}
	p.currentState = m.state()
	if p.inStep {
		p.stateOverridden = true
	}
}

// step reads one code point and runs the handler of the current state.
func (p *HTMLTokenizer) step() {
	r, err := p.input.Next()
	eof := err != nil
	state := p.currentState

	if p.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		p.log.WithFields(logrus.Fields{
			"state": state,
			"rune":  string(r),
			"eof":   eof,
		}).Trace("step")
	}

	p.inStep = true
	p.stateOverridden = false
	reconsume, next := p.stateToParser(state)(r, eof)
	p.inStep = false

	if reconsume && !eof {
		p.input.PushBack(r)
	}
	if !p.stateOverridden {
		p.currentState = next
	}
	if !reconsume && next == state {
		p.input.Commit()
	}
}

// ParseError reports a parse error at the most recently consumed character.
func (p *HTMLTokenizer) ParseError(code diag.Code, details diag.Details) {
	loc := p.input.Position()
	err := &diag.ParseError{
		Code:    code,
		Details: details,
		Offset:  loc.Offset,
		Line:    loc.Line,
		Column:  loc.Column,
	}
	p.log.WithFields(logrus.Fields{
		"code":   code,
		"line":   loc.Line,
		"column": loc.Column,
	}).Debug("parse error")
	p.consumer.ReportParseError(err)
}

func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		switch t := token.(type) {
		case StartTag:
			p.lastEmittedStartTagName = t.Name
		case EndTag:
			if len(t.Attributes) > 0 {
				p.ParseError(diag.AttributesInEndTag, nil)
			}
			if t.SelfClosing {
				p.ParseError(diag.SelfClosingFlagOnEndTag, nil)
			}
		case EndOfInput:
			p.done = true
		}

		p.consumer.HandleToken(token)

		if t, ok := token.(StartTag); ok && t.SelfClosing && !p.consumer.IsSelfClosingAcknowledged(t.Name) {
			p.ParseError(diag.NonVoidElementWithTrailingSlash, diag.Details{"name": t.Name})
		}
	}
}

func (p *HTMLTokenizer) emitCharacters(s string) {
	if s != "" {
		p.emit(Characters{Data: s})
	}
}

// emitCurrentToken emits the token in progress and returns the normal
// content state. A content model switch made by the consumer while handling
// the token takes precedence.
func (p *HTMLTokenizer) emitCurrentToken() tokenizerState {
	p.emit(p.tokenBuilder.Token())
	return dataState
}

// characterReference resolves the reference after an ampersand, falling back
// to a literal '&'.
func (p *HTMLTokenizer) characterReference(additionalAllowed rune) string {
	if s, ok := p.entities.Resolve(p.input, p, additionalAllowed); ok {
		return s
	}
	return "&"
}

// isAppropriateEndTag compares the temp buffer with the name of the last
// start tag that was emitted.
func (p *HTMLTokenizer) isAppropriateEndTag() bool {
	return p.lastEmittedStartTagName != "" && toLowerASCII(p.tokenBuilder.TempBuffer()) == p.lastEmittedStartTagName
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 0x20
	}
	return r
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 0x20
		}
	}
	return string(b)
}

// a stateHandler is a func that takes in a rune and a bool representing the
// end of input, and returns whether the rune must be reconsumed together with
// the next state to transition to.
type parserStateHandler func(in rune, eof bool) (bool, tokenizerState)

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case characterReferenceInDataState:
		return p.characterReferenceInDataStateParser
	case rcDataState:
		return p.rcDataStateParser
	case characterReferenceInRcDataState:
		return p.characterReferenceInRcDataStateParser
	case rawTextState:
		return p.rawTextStateParser
	case scriptDataState:
		return p.scriptDataStateParser
	case plaintextState:
		return p.plaintextStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case rcDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case characterReferenceInAttributeValueState:
		return p.characterReferenceInAttributeValueStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case commentEndBangState:
		return p.commentEndBangStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case cdataSectionState:
		return p.cdataSectionStateParser
	}

	return nil
}

type tokenizerState uint

const (
	dataState tokenizerState = iota
	characterReferenceInDataState
	rcDataState
	characterReferenceInRcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	characterReferenceInAttributeValueState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	numTokenizerStates
)

var stateNames = [numTokenizerStates]string{
	"data",
	"characterReferenceInData",
	"rcData",
	"characterReferenceInRcData",
	"rawText",
	"scriptData",
	"plaintext",
	"tagOpen",
	"endTagOpen",
	"tagName",
	"rcDataLessThanSign",
	"rcDataEndTagOpen",
	"rcDataEndTagName",
	"rawTextLessThanSign",
	"rawTextEndTagOpen",
	"rawTextEndTagName",
	"scriptDataLessThanSign",
	"scriptDataEndTagOpen",
	"scriptDataEndTagName",
	"scriptDataEscapeStart",
	"scriptDataEscapeStartDash",
	"scriptDataEscaped",
	"scriptDataEscapedDash",
	"scriptDataEscapedDashDash",
	"scriptDataEscapedLessThanSign",
	"scriptDataEscapedEndTagOpen",
	"scriptDataEscapedEndTagName",
	"scriptDataDoubleEscapeStart",
	"scriptDataDoubleEscaped",
	"scriptDataDoubleEscapedDash",
	"scriptDataDoubleEscapedDashDash",
	"scriptDataDoubleEscapedLessThanSign",
	"scriptDataDoubleEscapeEnd",
	"beforeAttributeName",
	"attributeName",
	"afterAttributeName",
	"beforeAttributeValue",
	"attributeValueDoubleQuoted",
	"attributeValueSingleQuoted",
	"attributeValueUnquoted",
	"characterReferenceInAttributeValue",
	"afterAttributeValueQuoted",
	"selfClosingStartTag",
	"bogusComment",
	"markupDeclarationOpen",
	"commentStart",
	"commentStartDash",
	"comment",
	"commentEndDash",
	"commentEnd",
	"commentEndBang",
	"doctype",
	"beforeDoctypeName",
	"doctypeName",
	"afterDoctypeName",
	"afterDoctypePublicKeyword",
	"beforeDoctypePublicIdentifier",
	"doctypePublicIdentifierDoubleQuoted",
	"doctypePublicIdentifierSingleQuoted",
	"afterDoctypePublicIdentifier",
	"betweenDoctypePublicAndSystemIdentifiers",
	"afterDoctypeSystemKeyword",
	"beforeDoctypeSystemIdentifier",
	"doctypeSystemIdentifierDoubleQuoted",
	"doctypeSystemIdentifierSingleQuoted",
	"afterDoctypeSystemIdentifier",
	"bogusDoctype",
	"cdataSection",
}

func (s tokenizerState) String() string {
	if s < numTokenizerStates {
		return stateNames[s]
	}
	return "unknown"
}
