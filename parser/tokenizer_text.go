package parser

import (
	"github.com/heathj/htmltok/parser/diag"
)

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(EndOfInput{})
		return false, dataState
	}
	switch r {
	case '&':
		return false, characterReferenceInDataState
	case '<':
		return false, tagOpenState
	default:
		// NUL is passed through untouched in normal content.
		p.emitCharacters(string(r) + p.input.ScanUntil("&<"))
		return false, dataState
	}
}

func (p *HTMLTokenizer) characterReferenceInDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		p.input.PushBack(r)
	}
	p.emitCharacters(p.characterReference(0))
	return false, dataState
}

func (p *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(EndOfInput{})
		return false, dataState
	}
	switch r {
	case '&':
		return false, characterReferenceInRcDataState
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, rcDataState
	default:
		p.emitCharacters(string(r) + p.input.ScanUntil("&<\x00"))
		return false, rcDataState
	}
}

func (p *HTMLTokenizer) characterReferenceInRcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		p.input.PushBack(r)
	}
	p.emitCharacters(p.characterReference(0))
	return false, rcDataState
}

func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(EndOfInput{})
		return false, dataState
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, rawTextState
	default:
		p.emitCharacters(string(r) + p.input.ScanUntil("<\x00"))
		return false, rawTextState
	}
}

func (p *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(EndOfInput{})
		return false, dataState
	}
	switch r {
	case '<':
		return false, scriptDataLessThanSignState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, scriptDataState
	default:
		p.emitCharacters(string(r) + p.input.ScanUntil("<\x00"))
		return false, scriptDataState
	}
}

func (p *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(EndOfInput{})
		return false, plaintextState
	}
	switch r {
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, plaintextState
	default:
		p.emitCharacters(string(r) + p.input.ScanUntil("\x00"))
		return false, plaintextState
	}
}

func (p *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, rcDataEndTagOpenState
	}
	p.emitCharacters("<")
	return true, rcDataState
}

func (p *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewEndTag()
		return true, rcDataEndTagNameState
	}
	p.emitCharacters("</")
	return true, rcDataState
}

func (p *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.rawEndTagName(r, eof, rcDataEndTagNameState, rcDataState)
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, rawTextEndTagOpenState
	}
	p.emitCharacters("<")
	return true, rawTextState
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewEndTag()
		return true, rawTextEndTagNameState
	}
	p.emitCharacters("</")
	return true, rawTextState
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.rawEndTagName(r, eof, rawTextEndTagNameState, rawTextState)
}

// rawEndTagName is the end tag name state shared by escapable raw, raw and
// script content. Letters go to both the tag name and the temp buffer. A
// terminator only ends the tag when it is the appropriate end tag; otherwise
// "</" and the temp buffer are emitted as text and the character is
// reconsumed in the content state.
func (p *HTMLTokenizer) rawEndTagName(r rune, eof bool, self, content tokenizerState) (bool, tokenizerState) {
	if !eof {
		switch {
		case isWhitespace(r) && p.isAppropriateEndTag():
			return false, beforeAttributeNameState
		case r == '/' && p.isAppropriateEndTag():
			return false, selfClosingStartTagState
		case r == '>' && p.isAppropriateEndTag():
			return false, p.emitCurrentToken()
		case isASCIIAlpha(r):
			p.tokenBuilder.WriteName(toLowerRune(r))
			p.tokenBuilder.WriteTempBuffer(r)
			return false, self
		}
	}
	p.emitCharacters("</" + p.tokenBuilder.TempBuffer())
	return true, content
}

func (p *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		p.input.PushBack(r)
	}
	data, found := p.input.ScanUntilSequence("]]>")
	if found {
		p.input.TakeFixed(3)
	} else {
		p.ParseError(diag.EOFInCDATA, nil)
	}
	p.emitCharacters(data)
	return false, dataState
}
