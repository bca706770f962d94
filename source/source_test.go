package source

import (
	"testing"

	"github.com/ava12/peg/internal/test"
)

func TestLineCol(t *testing.T) {
	s := NewString("x", "one\ntwo\nthree")
	line, col := s.LineCol(0)
	test.ExpectInt(t, 1, line)
	test.ExpectInt(t, 1, col)

	line, col = s.LineCol(4)
	test.ExpectInt(t, 2, line)
	test.ExpectInt(t, 1, col)

	line, col = s.LineCol(9)
	test.ExpectInt(t, 3, line)
	test.ExpectInt(t, 2, col)

	line, col = s.LineCol(len("one\ntwo\nthree"))
	test.ExpectInt(t, 3, line)
	test.ExpectInt(t, 6, col)
}

func TestLineColMultibyte(t *testing.T) {
	s := NewString("x", "a\n中文b")
	_, col := s.LineCol(1 + len("\n") + len("中"))
	test.ExpectInt(t, 4, col)
}

func TestLine(t *testing.T) {
	s := NewString("x", "one\r\ntwo\nthree")
	test.Expect(t, string(s.Line(0)) == "one", "one", string(s.Line(0)))
	test.Expect(t, string(s.Line(5)) == "two", "two", string(s.Line(5)))
}

func TestFormatError(t *testing.T) {
	s := NewString("x", "one\ntwo three\n")
	msg := FormatError("expected 'four'", s, 8)
	test.Expect(t, msg == "expected 'four', line 2:\n    two three\n        ^", "formatted message", msg)
}

func TestFormatErrorNoSource(t *testing.T) {
	msg := FormatError("oops", nil, 0)
	test.Expect(t, msg == "oops", "oops", msg)
}

func TestID(t *testing.T) {
	a := NewString("g", "x")
	b := NewString("g", "x")
	test.Expect(t, a.ID() != b.ID(), "distinct ids", "equal ids")
}
