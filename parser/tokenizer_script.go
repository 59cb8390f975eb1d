package parser

import (
	"github.com/heathj/htmltok/parser/diag"
)

// The script data states follow the escaping rules for "<!--" inside script
// content: an escaped region can contain a nested "<script>" which is double
// escaped until its "</script>", and only an appropriate end tag seen while
// escaped (or not escaped at all) closes the element.

func (p *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '/':
			p.tokenBuilder.ResetTempBuffer()
			return false, scriptDataEndTagOpenState
		case '!':
			p.emitCharacters("<!")
			return false, scriptDataEscapeStartState
		}
	}
	p.emitCharacters("<")
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewEndTag()
		return true, scriptDataEndTagNameState
	}
	p.emitCharacters("</")
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.rawEndTagName(r, eof, scriptDataEndTagNameState, scriptDataState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitCharacters("-")
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitCharacters("-")
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

// eofInScript leaves the script escape layers for normal content, where the
// end of input is reconsumed.
func (p *HTMLTokenizer) eofInScript() (bool, tokenizerState) {
	p.ParseError(diag.EOFInScript, nil)
	return true, dataState
}

func (p *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScript()
	}
	switch r {
	case '-':
		p.emitCharacters("-")
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, scriptDataEscapedState
	default:
		p.emitCharacters(string(r) + p.input.ScanUntil("-<\x00"))
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScript()
	}
	switch r {
	case '-':
		p.emitCharacters("-")
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, scriptDataEscapedState
	default:
		p.emitCharacters(string(r))
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScript()
	}
	switch r {
	case '-':
		p.emitCharacters("-")
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		p.emitCharacters(">")
		return false, scriptDataState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, scriptDataEscapedState
	default:
		p.emitCharacters(string(r))
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == '/':
		p.tokenBuilder.ResetTempBuffer()
		return false, scriptDataEscapedEndTagOpenState
	case !eof && isASCIIAlpha(r):
		p.tokenBuilder.ResetTempBuffer()
		p.emitCharacters("<")
		return true, scriptDataDoubleEscapeStartState
	default:
		p.emitCharacters("<")
		return true, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewEndTag()
		return true, scriptDataEscapedEndTagNameState
	}
	p.emitCharacters("</")
	return true, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.rawEndTagName(r, eof, scriptDataEscapedEndTagNameState, scriptDataEscapedState)
}

// scriptTagBoundary handles the double escape start and end states, which
// collect a tag name into the temp buffer and switch layers when the name is
// "script".
func (p *HTMLTokenizer) scriptTagBoundary(r rune, eof bool, self, onScript, otherwise tokenizerState) (bool, tokenizerState) {
	switch {
	case eof:
		return true, otherwise
	case isWhitespace(r) || r == '/' || r == '>':
		p.emitCharacters(string(r))
		if toLowerASCII(p.tokenBuilder.TempBuffer()) == "script" {
			return false, onScript
		}
		return false, otherwise
	case isASCIIAlpha(r):
		p.tokenBuilder.WriteTempBuffer(r)
		p.emitCharacters(string(r))
		return false, self
	default:
		return true, otherwise
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.scriptTagBoundary(r, eof, scriptDataDoubleEscapeStartState, scriptDataDoubleEscapedState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScript()
	}
	switch r {
	case '-':
		p.emitCharacters("-")
		return false, scriptDataDoubleEscapedDashState
	case '<':
		p.emitCharacters("<")
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, scriptDataDoubleEscapedState
	default:
		p.emitCharacters(string(r) + p.input.ScanUntil("-<\x00"))
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScript()
	}
	switch r {
	case '-':
		p.emitCharacters("-")
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitCharacters("<")
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, scriptDataDoubleEscapedState
	default:
		p.emitCharacters(string(r))
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScript()
	}
	switch r {
	case '-':
		p.emitCharacters("-")
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitCharacters("<")
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		p.emitCharacters(">")
		return false, scriptDataState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.emitCharacters("\uFFFD")
		return false, scriptDataDoubleEscapedState
	default:
		p.emitCharacters(string(r))
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.emitCharacters("/")
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.scriptTagBoundary(r, eof, scriptDataDoubleEscapeEndState, scriptDataEscapedState, scriptDataDoubleEscapedState)
}
