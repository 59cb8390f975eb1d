package entity

import (
	"html"
	"strings"
	"unicode/utf8"
)

// maxNameLength bounds how far a named reference is read ahead. The longest
// name in the table, "CounterClockwiseContourIntegral;", is 32 bytes.
const maxNameLength = 32

// longestMatch finds the longest prefix of run that is a named reference. A
// name ending in ';' is only tried with the whole run.
func longestMatch(run string, semicolon bool) (name, decoded string, ok bool) {
	if semicolon {
		if d, ok := lookup(run + ";"); ok {
			return run + ";", d, true
		}
	}
	for k := len(run); k >= 2; k-- {
		if d, ok := lookup(run[:k]); ok {
			return run[:k], d, true
		}
	}
	return "", "", false
}

// lookup returns the expansion of an exact reference name. html.UnescapeString
// owns the named reference table but also expands the longest legacy prefix
// of an unknown name, so such partial expansions are rejected here: they keep
// the unmatched ASCII tail of the name.
func lookup(name string) (string, bool) {
	ref := "&" + name
	s := html.UnescapeString(ref)
	if s == ref {
		return "", false
	}
	if !strings.HasSuffix(name, ";") {
		last, _ := utf8.DecodeLastRuneInString(s)
		if isASCIIAlphanumeric(last) {
			return "", false
		}
	}
	if utf8.RuneCountInString(s) > 2 {
		return "", false
	}
	return s, true
}
