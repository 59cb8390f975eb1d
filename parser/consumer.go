package parser

import (
	"strings"

	"github.com/heathj/htmltok/parser/diag"
	"github.com/heathj/htmltok/parser/entity"
	"github.com/heathj/htmltok/parser/input"
	"github.com/pkg/errors"
)

// TokenConsumer is the downstream stage the tokenizer feeds. It receives the
// tokens and parse errors and answers the policy questions the tokenizer
// cannot answer on its own.
type TokenConsumer interface {
	// StartTokenization is called once before the first token.
	StartTokenization(t *HTMLTokenizer)
	// HandleToken receives every token. It may call SetContentModel on the
	// tokenizer to switch the content model for the characters that follow.
	HandleToken(t Token)
	ReportParseError(err *diag.ParseError)
	// IsCdataSectionAllowed reports whether <![CDATA[ starts a CDATA
	// section, which is only the case in foreign content.
	IsCdataSectionAllowed() bool
	// IsSelfClosingAcknowledged reports whether the self-closing flag on the
	// start tag that was just handled is allowed.
	IsSelfClosingAcknowledged(tagName string) bool
}

// EntityResolver decodes a character reference. buf is positioned just past
// the ampersand.
type EntityResolver interface {
	Resolve(buf *input.Stream, rep entity.ErrorReporter, additionalAllowed rune) (string, bool)
}

// ContentModel selects how the text between tags is lexed.
type ContentModel uint

const (
	// NormalContent recognizes tags, comments and character references.
	NormalContent ContentModel = iota
	// EscapableRawContent only recognizes character references and the
	// appropriate end tag (title, textarea).
	EscapableRawContent
	// RawContent only recognizes the appropriate end tag (style, xmp...).
	RawContent
	// ScriptContent is raw content with the script escape rules.
	ScriptContent
	// PlaintextContent never ends.
	PlaintextContent
)

func (m ContentModel) String() string {
	switch m {
	case NormalContent:
		return "normal"
	case EscapableRawContent:
		return "escapable-raw"
	case RawContent:
		return "raw"
	case ScriptContent:
		return "script"
	case PlaintextContent:
		return "plaintext"
	}
	return "unknown"
}

// ParseContentModel maps a content model name, or its HTML standard alias
// (data, rcdata, rawtext, script-data), to a ContentModel.
func ParseContentModel(s string) (ContentModel, error) {
	switch strings.ToLower(s) {
	case "normal", "data", "":
		return NormalContent, nil
	case "escapable-raw", "rcdata":
		return EscapableRawContent, nil
	case "raw", "rawtext":
		return RawContent, nil
	case "script", "script-data":
		return ScriptContent, nil
	case "plaintext":
		return PlaintextContent, nil
	}
	return NormalContent, errors.Errorf("unknown content model %q", s)
}

func (m ContentModel) state() tokenizerState {
	switch m {
	case EscapableRawContent:
		return rcDataState
	case RawContent:
		return rawTextState
	case ScriptContent:
		return scriptDataState
	case PlaintextContent:
		return plaintextState
	}
	return dataState
}
