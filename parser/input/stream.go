// Package input implements the character buffer the tokenizer reads from.
//
// A Stream hands out one code point at a time, supports pushing code points
// back, scanning ahead for a stop set and fixed length lookahead. Newlines are
// normalized on the way in: CRLF and lone CR both become LF.
package input

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrDrain is returned by Next when the buffered data is exhausted but the
// stream has not been closed, so more input may still arrive.
var ErrDrain = errors.New("input: buffered data exhausted")

const utf8BOM = "\xEF\xBB\xBF"

// Location is a 1-based line and column. Columns count code points.
type Location struct {
	Offset int
	Line   int
	Column int
}

// Stream is an appendable, rewindable buffer of normalized UTF-8 text.
type Stream struct {
	data      []byte
	in        *parse.Input
	committed int
	closed    bool
	pendingCR bool
	lines     []int
}

// New returns an open, empty stream. Use Append to feed it and Close once all
// of the input has been appended.
func New() *Stream {
	s := &Stream{lines: []int{0}}
	s.in = parse.NewInputBytes(s.data)
	return s
}

// NewString returns a closed stream over s.
func NewString(s string) *Stream {
	st := New()
	st.Append(s)
	st.Close()
	return st
}

// NewReader reads all of r, decodes it from the named charset and returns a
// closed stream. An empty charset, "utf-8" and "utf8" skip decoding.
func NewReader(r io.Reader, charset string) (*Stream, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
	default:
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, errors.Wrapf(err, "unknown charset %q", charset)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	b = bytes.TrimPrefix(b, []byte(utf8BOM))

	s := New()
	s.Append(string(b))
	s.Close()
	return s, nil
}

// Append adds a chunk of text to the end of the buffered data. Invalid UTF-8
// is replaced with U+FFFD.
func (s *Stream) Append(chunk string) {
	if s.closed {
		return
	}
	chunk = strings.ToValidUTF8(chunk, "\uFFFD")
	if s.pendingCR && strings.HasPrefix(chunk, "\n") {
		chunk = chunk[1:]
	}
	s.pendingCR = strings.HasSuffix(chunk, "\r")
	chunk = strings.ReplaceAll(chunk, "\r\n", "\n")
	chunk = strings.ReplaceAll(chunk, "\r", "\n")

	pos := s.in.Pos()
	base := len(s.data)
	for i := strings.IndexByte(chunk, '\n'); i >= 0; {
		s.lines = append(s.lines, base+i+1)
		j := strings.IndexByte(chunk[i+1:], '\n')
		if j < 0 {
			break
		}
		i += j + 1
	}
	s.data = append(s.data[:len(s.data):len(s.data)], chunk...)
	s.in = parse.NewInputBytes(s.data)
	s.in.Rewind(pos)
}

// Close marks the end of the input. Afterwards Next reports io.EOF instead of
// ErrDrain once the data is exhausted.
func (s *Stream) Close() {
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Stream) Closed() bool {
	return s.closed
}

func (s *Stream) atEnd() bool {
	return s.in.Pos() >= len(s.data)
}

func (s *Stream) endErr() error {
	if s.closed {
		return io.EOF
	}
	return ErrDrain
}

// Next consumes and returns the next code point.
func (s *Stream) Next() (rune, error) {
	if s.atEnd() {
		return 0, s.endErr()
	}
	r, n := s.in.PeekRune(0)
	s.in.Move(n)
	return r, nil
}

// PushBack returns a previously consumed code point to the stream.
func (s *Stream) PushBack(r rune) {
	s.rewindBy(utf8.RuneLen(r))
}

// PushBackString returns a previously consumed run of text to the stream.
func (s *Stream) PushBackString(str string) {
	s.rewindBy(len(str))
}

func (s *Stream) rewindBy(n int) {
	if n <= 0 {
		return
	}
	pos := s.in.Pos() - n
	if pos < 0 {
		pos = 0
	}
	s.in.Rewind(pos)
}

// ScanUntil consumes and returns the longest run of text that contains none
// of the runes in stops. The stop rune itself is left in the stream.
func (s *Stream) ScanUntil(stops string) string {
	start := s.in.Pos()
	for !s.atEnd() {
		r, n := s.in.PeekRune(0)
		if strings.ContainsRune(stops, r) {
			break
		}
		s.in.Move(n)
	}
	return string(s.data[start:s.in.Pos()])
}

// ScanUntilSequence consumes and returns the text up to the next occurrence
// of seq, or up to the end of the data. The sequence itself is left in the
// stream; found reports whether it was seen.
func (s *Stream) ScanUntilSequence(seq string) (text string, found bool) {
	start := s.in.Pos()
	i := bytes.Index(s.data[start:], []byte(seq))
	if i < 0 {
		s.in.Rewind(len(s.data))
		return string(s.data[start:]), false
	}
	s.in.Move(i)
	return string(s.data[start : start+i]), true
}

// TakeFixed consumes exactly n code points. If fewer than n remain nothing is
// consumed and ok is false.
func (s *Stream) TakeFixed(n int) (str string, ok bool) {
	start := s.in.Pos()
	pos := start
	for i := 0; i < n; i++ {
		if pos >= len(s.data) {
			return "", false
		}
		_, w := utf8.DecodeRune(s.data[pos:])
		pos += w
	}
	s.in.Move(pos - start)
	return string(s.data[start:pos]), true
}

// Commit marks everything consumed so far as permanently decided.
func (s *Stream) Commit() {
	s.committed = s.in.Pos()
}

// Undo rewinds the stream to the last commit.
func (s *Stream) Undo() {
	s.in.Rewind(s.committed)
}

// Offset returns the byte offset of the next code point.
func (s *Stream) Offset() int {
	return s.in.Pos()
}

// Committed returns the byte offset of the last commit.
func (s *Stream) Committed() int {
	return s.committed
}

// Position returns the location of the most recently consumed code point.
func (s *Stream) Position() Location {
	pos := s.in.Pos()
	if pos > 0 {
		_, w := utf8.DecodeLastRune(s.data[:pos])
		pos -= w
	}
	return s.PositionAt(pos)
}

// PositionAt returns the location of the given byte offset.
func (s *Stream) PositionAt(offset int) Location {
	if offset > len(s.data) {
		offset = len(s.data)
	}
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset })
	col := utf8.RuneCount(s.data[s.lines[line-1]:offset]) + 1
	return Location{Offset: offset, Line: line, Column: col}
}

// Context renders the source line around offset with a caret under the
// offending column, for use in error messages.
func (s *Stream) Context(offset int) string {
	if offset > len(s.data) {
		offset = len(s.data)
	}
	_, _, context := parse.Position(bytes.NewReader(s.data), offset)
	return context
}
