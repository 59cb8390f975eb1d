package parser

import (
	"github.com/heathj/htmltok/parser/diag"
)

// emitQuirksDoctype forces quirks mode on the doctype in progress and emits
// it. It is the recovery for every truncated or malformed doctype.
func (p *HTMLTokenizer) emitQuirksDoctype(code diag.Code, eof bool) (bool, tokenizerState) {
	p.ParseError(code, nil)
	p.tokenBuilder.EnableForceQuirks()
	return eof, p.emitCurrentToken()
}

func (p *HTMLTokenizer) bogusDoctypeQuirks(code diag.Code) (bool, tokenizerState) {
	p.ParseError(code, nil)
	p.tokenBuilder.EnableForceQuirks()
	return false, bogusDoctypeState
}

func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.ExpectedDoctypeNameButGotEOF, true)
	}
	if isWhitespace(r) {
		return false, beforeDoctypeNameState
	}
	p.ParseError(diag.NeedSpaceAfterDoctype, nil)
	return true, beforeDoctypeNameState
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.ExpectedDoctypeNameButGotEOF, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypeNameState
	case '>':
		return p.emitQuirksDoctype(diag.ExpectedDoctypeNameButGotRightBracket, false)
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteName('\uFFFD')
		return false, doctypeNameState
	default:
		p.tokenBuilder.WriteName(toLowerRune(r))
		return false, doctypeNameState
	}
}

func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctypeName, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterDoctypeNameState
	case '>':
		return false, p.emitCurrentToken()
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteName('\uFFFD')
		return false, doctypeNameState
	default:
		p.tokenBuilder.WriteName(toLowerRune(r))
		return false, doctypeNameState
	}
}

// afterDoctypeNameStateParser looks ahead for the PUBLIC and SYSTEM keywords.
// On a mismatch everything after the offending character is pushed back and
// the bogus doctype state takes over.
func (p *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterDoctypeNameState
	case '>':
		return false, p.emitCurrentToken()
	}

	p.input.PushBack(r)
	if keyword, ok := p.input.TakeFixed(6); ok {
		switch toLowerASCII(keyword) {
		case "public":
			return false, afterDoctypePublicKeywordState
		case "system":
			return false, afterDoctypeSystemKeywordState
		}
		p.input.PushBackString(keyword)
	}
	p.input.Next()
	p.ParseError(diag.ExpectedSpaceOrRightBracketInDoctype, diag.Details{"data": r})
	p.tokenBuilder.EnableForceQuirks()
	return false, bogusDoctypeState
}

func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypePublicIdentifierState
	case '"', '\'':
		p.ParseError(diag.UnexpectedCharInDoctype, nil)
		return true, beforeDoctypePublicIdentifierState
	default:
		return true, beforeDoctypePublicIdentifierState
	}
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypePublicIdentifierState
	case '"':
		p.tokenBuilder.EnablePublicIdentifier()
		return false, doctypePublicIdentifierDoubleQuotedState
	case '\'':
		p.tokenBuilder.EnablePublicIdentifier()
		return false, doctypePublicIdentifierSingleQuotedState
	case '>':
		return p.emitQuirksDoctype(diag.UnexpectedEndOfDoctype, false)
	default:
		return p.bogusDoctypeQuirks(diag.UnexpectedCharInDoctype)
	}
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '"', doctypePublicIdentifierDoubleQuotedState, afterDoctypePublicIdentifierState, p.tokenBuilder.WritePublicIdentifier)
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '\'', doctypePublicIdentifierSingleQuotedState, afterDoctypePublicIdentifierState, p.tokenBuilder.WritePublicIdentifier)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '"', doctypeSystemIdentifierDoubleQuotedState, afterDoctypeSystemIdentifierState, p.tokenBuilder.WriteSystemIdentifier)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '\'', doctypeSystemIdentifierSingleQuotedState, afterDoctypeSystemIdentifierState, p.tokenBuilder.WriteSystemIdentifier)
}

func (p *HTMLTokenizer) doctypeIdentifier(r rune, eof bool, quote rune, self, after tokenizerState, write func(rune)) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case quote:
		return false, after
	case '>':
		return p.emitQuirksDoctype(diag.UnexpectedEndOfDoctype, false)
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		write('\uFFFD')
		return false, self
	default:
		write(r)
		return false, self
	}
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case '>':
		return false, p.emitCurrentToken()
	case '"':
		p.ParseError(diag.UnexpectedCharInDoctype, nil)
		p.tokenBuilder.EnableSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		p.ParseError(diag.UnexpectedCharInDoctype, nil)
		p.tokenBuilder.EnableSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		return p.bogusDoctypeQuirks(diag.UnexpectedCharInDoctype)
	}
}

func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case '>':
		return false, p.emitCurrentToken()
	case '"':
		p.tokenBuilder.EnableSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		p.tokenBuilder.EnableSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		return p.bogusDoctypeQuirks(diag.UnexpectedCharInDoctype)
	}
}

func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypeSystemIdentifierState
	case '"', '\'':
		p.ParseError(diag.UnexpectedCharInDoctype, nil)
		return true, beforeDoctypeSystemIdentifierState
	default:
		return true, beforeDoctypeSystemIdentifierState
	}
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypeSystemIdentifierState
	case '"':
		p.tokenBuilder.EnableSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		p.tokenBuilder.EnableSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		return p.emitQuirksDoctype(diag.UnexpectedEndOfDoctype, false)
	default:
		return p.bogusDoctypeQuirks(diag.UnexpectedCharInDoctype)
	}
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirksDoctype(diag.EOFInDoctype, true)
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterDoctypeSystemIdentifierState
	case '>':
		return false, p.emitCurrentToken()
	default:
		p.ParseError(diag.UnexpectedCharInDoctype, nil)
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitCurrentToken()
		return true, dataState
	}
	if r == '>' {
		return false, p.emitCurrentToken()
	}
	p.input.ScanUntil(">")
	return false, bogusDoctypeState
}
