// Package entity resolves HTML character references.
//
// Resolve is called with the input positioned just past an ampersand. It
// consumes as much of a numeric or named reference as is valid and returns
// the decoded text. When nothing can be resolved, everything it read is
// pushed back and ok is false; the caller then uses a literal '&'.
package entity

import (
	"io"

	"github.com/heathj/htmltok/parser/diag"
	"github.com/heathj/htmltok/parser/input"
)

// ErrorReporter receives the parse errors found while resolving a reference.
type ErrorReporter interface {
	ParseError(code diag.Code, details diag.Details)
}

// Resolver implements the HTML character reference algorithm.
type Resolver struct{}

// Resolve consumes a character reference from buf. additionalAllowed is the
// quote or '>' that terminates the attribute value being lexed, or 0 outside
// of attribute values.
func (Resolver) Resolve(buf *input.Stream, rep ErrorReporter, additionalAllowed rune) (string, bool) {
	return Consume(buf, rep, additionalAllowed)
}

// Consume is Resolver.Resolve as a plain function.
func Consume(buf *input.Stream, rep ErrorReporter, additionalAllowed rune) (string, bool) {
	r, err := buf.Next()
	if err != nil {
		return "", false
	}
	if additionalAllowed != 0 && r == additionalAllowed {
		buf.PushBack(r)
		return "", false
	}

	switch {
	case r == '\t', r == '\n', r == '\f', r == ' ', r == '<', r == '&':
		buf.PushBack(r)
		return "", false
	case r == '#':
		return consumeNumeric(buf, rep)
	case isASCIIAlpha(r):
		buf.PushBack(r)
		return consumeNamed(buf, rep, additionalAllowed != 0)
	default:
		buf.PushBack(r)
		return "", false
	}
}

func consumeNumeric(buf *input.Stream, rep ErrorReporter) (string, bool) {
	consumed := "#"
	r, err := buf.Next()
	if err == io.EOF {
		rep.ParseError(diag.ExpectedNumericEntityButGotEOF, nil)
		buf.PushBackString(consumed)
		return "", false
	}

	base := 10
	if r == 'x' || r == 'X' {
		base = 16
		consumed += string(r)
		r, err = buf.Next()
		if err == io.EOF {
			rep.ParseError(diag.ExpectedNumericEntityButGotEOF, nil)
			buf.PushBackString(consumed)
			return "", false
		}
	}

	if err != nil || digitValue(r, base) < 0 {
		rep.ParseError(diag.ExpectedNumericEntity, nil)
		if err == nil {
			buf.PushBack(r)
		}
		buf.PushBackString(consumed)
		return "", false
	}

	code := 0
	for err == nil {
		d := digitValue(r, base)
		if d < 0 {
			break
		}
		if code <= maxCodePoint {
			code = code*base + d
		}
		r, err = buf.Next()
	}

	replaced, bad := replaceCodePoint(code)
	if bad {
		rep.ParseError(diag.InvalidNumericEntityReplaced, diag.Details{"charAsInt": code})
	}
	if err != nil || r != ';' {
		rep.ParseError(diag.NumericEntityWithoutSemicolon, nil)
		if err == nil {
			buf.PushBack(r)
		}
	}
	return string(replaced), true
}

func consumeNamed(buf *input.Stream, rep ErrorReporter, inAttribute bool) (string, bool) {
	run := make([]byte, 0, maxNameLength)
	semicolon := false
	for len(run) < maxNameLength {
		r, err := buf.Next()
		if err != nil {
			break
		}
		if isASCIIAlphanumeric(r) {
			run = append(run, byte(r))
			continue
		}
		if r == ';' {
			semicolon = true
		} else {
			buf.PushBack(r)
		}
		break
	}

	name, decoded, ok := longestMatch(string(run), semicolon)
	if !ok {
		rep.ParseError(diag.ExpectedNamedEntity, nil)
		pushBackRun(buf, string(run), semicolon)
		return "", false
	}

	terminated := name[len(name)-1] == ';'
	if !terminated {
		// Only the matched prefix is part of the reference.
		if semicolon {
			buf.PushBack(';')
		}
		buf.PushBackString(string(run[len(name):]))
	}

	if !terminated && inAttribute {
		next, err := buf.Next()
		if err == nil {
			buf.PushBack(next)
			if isASCIIAlphanumeric(next) || next == '=' {
				buf.PushBackString(name)
				return "", false
			}
		}
	}
	if !terminated {
		rep.ParseError(diag.NamedEntityWithoutSemicolon, nil)
	}
	return decoded, true
}

func pushBackRun(buf *input.Stream, run string, semicolon bool) {
	if semicolon {
		buf.PushBack(';')
	}
	buf.PushBackString(run)
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || (r >= '0' && r <= '9')
}

func digitValue(r rune, base int) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case base == 16 && r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case base == 16 && r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}
