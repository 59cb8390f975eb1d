package parser

import (
	"strings"

	"github.com/heathj/htmltok/parser/diag"
)

func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		p.input.PushBack(r)
	}
	if two, ok := p.input.TakeFixed(2); ok {
		if two == "--" {
			p.tokenBuilder.NewComment()
			return false, commentStartState
		}
		five, ok := p.input.TakeFixed(5)
		if ok {
			seven := two + five
			if toLowerASCII(seven) == "doctype" {
				p.tokenBuilder.NewDoctype()
				return false, doctypeState
			}
			if seven == "[CDATA[" && p.consumer.IsCdataSectionAllowed() {
				return false, cdataSectionState
			}
			p.input.PushBackString(seven)
		} else {
			p.input.PushBackString(two)
		}
	}
	p.ParseError(diag.ExpectedDashesOrDoctype, nil)
	p.tokenBuilder.NewComment()
	return false, bogusCommentState
}

// bogusCommentStateParser takes everything up to the next '>' as the comment
// data.
func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		p.input.PushBack(r)
	}
	data := p.input.ScanUntil(">")
	p.tokenBuilder.WriteDataString(strings.ReplaceAll(data, "\x00", "\uFFFD"))
	// consume the '>'
	p.input.Next()
	return false, p.emitCurrentToken()
}

func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFInComment, nil)
		p.emitCurrentToken()
		return true, dataState
	}
	switch r {
	case '-':
		return false, commentStartDashState
	case '>':
		p.ParseError(diag.IncorrectComment, nil)
		return false, p.emitCurrentToken()
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteData('\uFFFD')
		return false, commentState
	default:
		p.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFInComment, nil)
		p.emitCurrentToken()
		return true, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		p.ParseError(diag.IncorrectComment, nil)
		return false, p.emitCurrentToken()
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteDataString("-\uFFFD")
		return false, commentState
	default:
		p.tokenBuilder.WriteData('-')
		p.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFInComment, nil)
		p.emitCurrentToken()
		return true, dataState
	}
	switch r {
	case '-':
		return false, commentEndDashState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteData('\uFFFD')
		return false, commentState
	default:
		p.tokenBuilder.WriteData(r)
		p.tokenBuilder.WriteDataString(p.input.ScanUntil("-\x00"))
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFInCommentEndDash, nil)
		p.emitCurrentToken()
		return true, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteDataString("-\uFFFD")
		return false, commentState
	default:
		p.tokenBuilder.WriteData('-')
		p.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFInCommentDoubleDash, nil)
		p.emitCurrentToken()
		return true, dataState
	}
	switch r {
	case '>':
		return false, p.emitCurrentToken()
	case '!':
		p.ParseError(diag.UnexpectedBangAfterDoubleDashInComment, nil)
		return false, commentEndBangState
	case '-':
		p.ParseError(diag.UnexpectedDashAfterDoubleDashInComment, nil)
		p.tokenBuilder.WriteData('-')
		return false, commentEndState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteDataString("--\uFFFD")
		return false, commentState
	default:
		p.ParseError(diag.UnexpectedCharInComment, nil)
		p.tokenBuilder.WriteDataString("--")
		p.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.ParseError(diag.EOFInCommentEndBangState, nil)
		p.emitCurrentToken()
		return true, dataState
	}
	switch r {
	case '>':
		return false, p.emitCurrentToken()
	case '-':
		p.tokenBuilder.WriteDataString("--!")
		return false, commentEndDashState
	case '\u0000':
		p.ParseError(diag.InvalidCodepoint, nil)
		p.tokenBuilder.WriteDataString("--!\uFFFD")
		return false, commentState
	default:
		p.tokenBuilder.WriteDataString("--!")
		p.tokenBuilder.WriteData(r)
		return false, commentState
	}
}
