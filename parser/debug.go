package parser

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Dump renders tokens one per line.
func Dump(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TokenDiff returns a line based diff of two token streams, or "" when they
// are the same.
func TokenDiff(want, got []Token) string {
	return DiffDumps(Dump(want), Dump(got))
}

// DiffDumps diffs two outputs of Dump line by line.
func DiffDumps(a, b string) string {
	if a == b {
		return ""
	}
	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
