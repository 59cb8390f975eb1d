package parser

import (
	"github.com/heathj/htmltok/parser/diag"
)

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.BareLessThanSignAtEOF, nil)
		p.emitCharacters("<")
		return true, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		p.tokenBuilder.NewStartTag()
		p.tokenBuilder.WriteName(toLowerRune(r))
		return false, tagNameState
	case r == '>':
		p.ParseError(diag.ExpectedTagNameButGotRightBracket, nil)
		p.emitCharacters("<>")
		return false, dataState
	case r == '?':
		p.ParseError(diag.ExpectedTagNameButGotQuestionMark, nil)
		p.tokenBuilder.NewComment()
		return true, bogusCommentState
	default:
		p.ParseError(diag.ExpectedTagName, nil)
		p.emitCharacters("<")
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.ExpectedClosingTagButGotEOF, nil)
		p.emitCharacters("</")
		return true, dataState
	}
	switch {
	case isASCIIAlpha(r):
		p.tokenBuilder.NewEndTag()
		p.tokenBuilder.WriteName(toLowerRune(r))
		return false, tagNameState
	case r == '>':
		p.ParseError(diag.ExpectedClosingTagButGotRightBracket, nil)
		return false, dataState
	default:
		p.ParseError(diag.ExpectedClosingTagButGotChar, diag.Details{"data": r})
		p.tokenBuilder.NewComment()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFInTagName, nil)
		return true, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, p.emitCurrentToken()
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteName('\uFFFD')
		return false, tagNameState
	default:
		p.tokenBuilder.WriteName(toLowerRune(r))
		return false, tagNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.ExpectedAttributeNameButGotEOF, nil)
		return true, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, p.emitCurrentToken()
	case '"', '\'', '<', '=':
		p.ParseError(diag.InvalidCharacterInAttributeName, nil)
		p.tokenBuilder.NewAttribute(r)
		return false, attributeNameState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.NewAttribute('\uFFFD')
		return false, attributeNameState
	default:
		p.tokenBuilder.NewAttribute(toLowerRune(r))
		return false, attributeNameState
	}
}

// attributeNameStateParser checks the finished name for duplicates whenever
// it leaves the state. End of input still emits the tag gathered so far.
func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	var (
		next       = attributeNameState
		shouldEmit bool
	)
	if eof {
		p.ParseError(diag.EOFInAttributeName, nil)
		shouldEmit = true
	} else {
		switch r {
		case '=':
			next = beforeAttributeValueState
		case '>':
			shouldEmit = true
		case '\t', '\n', '\f', ' ':
			next = afterAttributeNameState
		case '/':
			next = selfClosingStartTagState
		case '"', '\'', '<':
			p.ParseError(diag.InvalidCharacterInAttributeName, nil)
			p.tokenBuilder.WriteAttributeName(r)
			return false, attributeNameState
		case '\u0000':
			p.ParseError(diag.InvalidCodepoint, nil)
			p.tokenBuilder.WriteAttributeName('\uFFFD')
			return false, attributeNameState
		default:
			p.tokenBuilder.WriteAttributeName(toLowerRune(r))
			return false, attributeNameState
		}
	}

	if name, dup := p.tokenBuilder.InvalidateDuplicateAttribute(); dup {
		p.ParseError(diag.DuplicateAttribute, diag.Details{"name": name})
	}
	if shouldEmit {
		return eof, p.emitCurrentToken()
	}
	return false, next
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.ExpectedEndOfTagButGotEOF, nil)
		return true, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterAttributeNameState
	case '=':
		return false, beforeAttributeValueState
	case '>':
		return false, p.emitCurrentToken()
	case '/':
		return false, selfClosingStartTagState
	case '"', '\'', '<':
		p.ParseError(diag.InvalidCharacterAfterAttributeName, nil)
		p.tokenBuilder.NewAttribute(r)
		return false, attributeNameState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.NewAttribute('\uFFFD')
		return false, attributeNameState
	default:
		p.tokenBuilder.NewAttribute(toLowerRune(r))
		return false, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.ExpectedAttributeValueButGotEOF, nil)
		return true, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeValueState
	case '"':
		return false, attributeValueDoubleQuotedState
	case '\'':
		return false, attributeValueSingleQuotedState
	case '&':
		return true, attributeValueUnquotedState
	case '>':
		p.ParseError(diag.ExpectedAttributeValueButGotRightBracket, nil)
		return false, p.emitCurrentToken()
	case '=', '<', '`':
		p.ParseError(diag.UnexpectedCharacterInUnquotedAttributeValue, nil)
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
		return false, attributeValueUnquotedState
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.quotedAttributeValue(r, eof, '"', attributeValueDoubleQuotedState, diag.EOFInAttributeValueDoubleQuote)
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.quotedAttributeValue(r, eof, '\'', attributeValueSingleQuotedState, diag.EOFInAttributeValueSingleQuote)
}

func (p *HTMLTokenizer) quotedAttributeValue(r rune, eof bool, quote rune, self tokenizerState, eofCode diag.Code) (bool, tokenizerState) {
	if eof {
		p.ParseError(eofCode, nil)
		return true, dataState
	}
	switch r {
	case quote:
		return false, afterAttributeValueQuotedState
	case '&':
		p.additionalAllowedCharacter = quote
		return false, characterReferenceInAttributeValueState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
		return false, self
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		p.tokenBuilder.WriteAttributeValueString(p.input.ScanUntil(string(quote) + "&\x00"))
		return false, self
	}
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFInAttributeValueNoQuotes, nil)
		return true, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '&':
		p.additionalAllowedCharacter = '>'
		return false, characterReferenceInAttributeValueState
	case '>':
		return false, p.emitCurrentToken()
	case '"', '\'', '=', '<', '`':
		p.ParseError(diag.UnexpectedCharacterInUnquotedAttributeValue, nil)
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
		return false, attributeValueUnquotedState
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		p.tokenBuilder.WriteAttributeValueString(p.input.ScanUntil("\t\n\f &>\"'=<`\x00"))
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) characterReferenceInAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		p.input.PushBack(r)
	}
	p.tokenBuilder.WriteAttributeValueString(p.characterReference(p.additionalAllowedCharacter))
	switch p.additionalAllowedCharacter {
	case '"':
		return false, attributeValueDoubleQuotedState
	case '\'':
		return false, attributeValueSingleQuotedState
	default:
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFAfterAttributeValue, nil)
		return true, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '>':
		return false, p.emitCurrentToken()
	case '/':
		return false, selfClosingStartTagState
	default:
		p.ParseError(diag.UnexpectedCharacterAfterAttributeValue, nil)
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.UnexpectedEOFAfterSolidusInTag, nil)
		return true, dataState
	}
	if r == '>' {
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentToken()
	}
	p.ParseError(diag.UnexpectedCharacterAfterSolidusInTag, nil)
	return true, beforeAttributeNameState
}
