package diag

import (
	"fmt"
	"strings"
)

// Details holds the values substituted into a message template, keyed by
// placeholder name ("name", "data", "charAsInt").
type Details map[string]interface{}

// ParseError is a recoverable lexical deviation. Line and Column are 1-based
// and point at the character that triggered the error; Offset is its byte
// offset in the normalized input.
type ParseError struct {
	Code    Code
	Details Details
	Offset  int
	Line    int
	Column  int
	Context string
}

// New creates a ParseError without position information.
func New(code Code, details Details) *ParseError {
	return &ParseError{Code: code, Details: details}
}

// Message renders the message template of the error code.
func (e *ParseError) Message() string {
	msg := e.Code.Template()
	if len(e.Details) == 0 {
		return msg
	}
	for k, v := range e.Details {
		placeholder := "{" + k + "}"
		if !strings.Contains(msg, placeholder) {
			continue
		}
		var s string
		switch v := v.(type) {
		case rune:
			s = string(v)
		case int:
			if k == "charAsInt" {
				s = fmt.Sprintf("%04X", v)
			} else {
				s = fmt.Sprint(v)
			}
		default:
			s = fmt.Sprint(v)
		}
		msg = strings.ReplaceAll(msg, placeholder, s)
	}
	return msg
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message())
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Code, e.Message())
}
