package input

import (
	"io"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestNext(t *testing.T) {
	s := NewString("a\u00e9\u20ac")
	for _, want := range []rune{'a', '\u00e9', '\u20ac'} {
		r, err := s.Next()
		test.T(t, err, nil)
		test.T(t, r, want)
	}
	_, err := s.Next()
	test.T(t, err, io.EOF)
}

func TestNewlineNormalization(t *testing.T) {
	var tests = []struct {
		chunks []string
		want   string
	}{
		{[]string{"a\r\nb"}, "a\nb"},
		{[]string{"a\rb"}, "a\nb"},
		{[]string{"a\r\r\nb"}, "a\n\nb"},
		{[]string{"a\r", "\nb"}, "a\nb"},
		{[]string{"a\r", "b"}, "a\nb"},
		{[]string{"a\n", "\nb"}, "a\n\nb"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(strings.Join(tt.chunks, "|"), func(t *testing.T) {
			t.Parallel()
			s := New()
			for _, c := range tt.chunks {
				s.Append(c)
			}
			s.Close()
			test.T(t, s.ScanUntil(""), tt.want)
		})
	}
}

func TestDrain(t *testing.T) {
	s := New()
	s.Append("ab")

	r, err := s.Next()
	test.T(t, err, nil)
	test.T(t, r, 'a')
	s.Commit()

	r, err = s.Next()
	test.T(t, err, nil)
	test.T(t, r, 'b')

	_, err = s.Next()
	test.T(t, err, ErrDrain)

	s.Undo()
	test.T(t, s.Offset(), 1)

	s.Append("c")
	s.Close()
	test.T(t, s.ScanUntil(""), "bc")
	_, err = s.Next()
	test.T(t, err, io.EOF)

	s.Append("ignored")
	test.T(t, s.Closed(), true)
	_, err = s.Next()
	test.T(t, err, io.EOF)
}

func TestPushBack(t *testing.T) {
	s := NewString("x\u20acy")
	s.Next()
	r, _ := s.Next()
	test.T(t, r, '\u20ac')
	s.PushBack(r)
	test.T(t, s.Offset(), 1)

	str, ok := s.TakeFixed(2)
	test.T(t, ok, true)
	test.T(t, str, "\u20acy")
	s.PushBackString(str)
	r, _ = s.Next()
	test.T(t, r, '\u20ac')
}

func TestScanUntil(t *testing.T) {
	s := NewString("hello&world<")
	test.T(t, s.ScanUntil("&<\x00"), "hello")
	r, _ := s.Next()
	test.T(t, r, '&')
	test.T(t, s.ScanUntil("&<\x00"), "world")
	test.T(t, s.ScanUntil("<"), "")
	r, _ = s.Next()
	test.T(t, r, '<')
	test.T(t, s.ScanUntil("<"), "")

	s = NewString("a\x00b")
	test.T(t, s.ScanUntil("\x00"), "a")
}

func TestScanUntilSequence(t *testing.T) {
	s := NewString("x]]y]]>z")
	text, found := s.ScanUntilSequence("]]>")
	test.T(t, found, true)
	test.T(t, text, "x]]y")
	str, _ := s.TakeFixed(3)
	test.T(t, str, "]]>")

	text, found = s.ScanUntilSequence("]]>")
	test.T(t, found, false)
	test.T(t, text, "z")
	_, err := s.Next()
	test.T(t, err, io.EOF)
}

func TestTakeFixed(t *testing.T) {
	s := NewString("DOCTY")
	_, ok := s.TakeFixed(7)
	test.T(t, ok, false)
	test.T(t, s.Offset(), 0)

	str, ok := s.TakeFixed(5)
	test.T(t, ok, true)
	test.T(t, str, "DOCTY")

	_, ok = s.TakeFixed(1)
	test.T(t, ok, false)
}

func TestPosition(t *testing.T) {
	s := NewString("ab\ncd")
	loc := s.Position()
	test.T(t, loc.Line, 1)
	test.T(t, loc.Column, 1)

	s.TakeFixed(4)
	loc = s.Position()
	test.T(t, loc.Line, 2)
	test.T(t, loc.Column, 1)

	loc = s.PositionAt(1)
	test.T(t, loc.Line, 1)
	test.T(t, loc.Column, 2)
}

func TestNewReader(t *testing.T) {
	s, err := NewReader(strings.NewReader("\xEF\xBB\xBFcaf\xc3\xa9"), "")
	test.T(t, err, nil)
	test.T(t, s.ScanUntil(""), "caf\u00e9")

	s, err = NewReader(strings.NewReader("caf\xe9"), "windows-1252")
	test.T(t, err, nil)
	test.T(t, s.ScanUntil(""), "caf\u00e9")

	_, err = NewReader(strings.NewReader(""), "no-such-charset")
	test.T(t, err != nil, true, "expected an error for an unknown charset")
}

func TestInvalidUTF8(t *testing.T) {
	s := NewString("a\xffb")
	test.T(t, s.ScanUntil(""), "a\uFFFDb")
}
