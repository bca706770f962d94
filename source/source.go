// Package source defines the source text a grammar or an input is read from,
// and the position bookkeeping needed to render errors against it.
package source

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// Source wraps a named chunk of text (a grammar description or an input
// string being matched) together with a line index built once up front so
// that LineCol can answer in O(log lines) instead of rescanning the text.
type Source struct {
	id            uuid.UUID
	name          string
	content       []byte
	lineStarts    []int
	prevLineIndex int
}

// New creates a Source from raw bytes. name is used only for error messages;
// it need not be unique.
func New(name string, content []byte) *Source {
	s := &Source{id: uuid.New(), name: name, content: content, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}
	return s
}

// NewString creates a Source from a string.
func NewString(name, content string) *Source {
	return New(name, []byte(content))
}

// ID returns a process-unique identifier for this source, stable for its
// lifetime. Two sources created with the same name are still distinguishable
// by ID.
func (s *Source) ID() uuid.UUID {
	return s.id
}

// Name returns the name supplied to New.
func (s *Source) Name() string {
	return s.name
}

// Content returns the raw bytes of the source.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns the byte length of the source.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol converts a byte position into a 1-based (line, column) pair.
// Column counts bytes from the start of the line, not runes or display
// width: a multi-byte rune advances the column by its encoded length, same
// as it advances Cursor while matching.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	switch {
	case pos < 0:
		pos = 0
		lineIndex = 0
	case pos >= len(s.content):
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	default:
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, pos - lineStart + 1
}

// findLineIndex locates the line containing pos via a cached last-lookup
// index: callers walk a source position-by-position (matching, then error
// rendering against nearby positions), so consecutive lookups tend to land
// on or just past the previous line. A hit there costs a short forward
// scan instead of a full search.
func (s *Source) findLineIndex(pos int) int {
	cached := s.prevLineIndex
	if cached >= 0 && s.lineStarts[cached] <= pos {
		last := len(s.lineStarts) - 1
		for cached < last && s.lineStarts[cached+1] <= pos {
			cached++
		}
		s.prevLineIndex = cached
		return cached
	}

	bound := len(s.lineStarts)
	if cached >= 0 {
		bound = cached
	}
	found := sort.Search(bound, func(i int) bool { return s.lineStarts[i] > pos }) - 1
	if found < 0 {
		found = 0
	}
	s.prevLineIndex = found
	return found
}

// Line returns the text of the 1-based line containing pos, without its
// trailing line terminator.
func (s *Source) Line(pos int) []byte {
	lineIndex := 0
	switch {
	case pos < 0:
		pos = 0
	case pos >= len(s.content):
		pos = len(s.content)
	}
	lineIndex = s.findLineIndex(pos)
	start := s.lineStarts[lineIndex]
	end := len(s.content)
	if idx := bytes.IndexByte(s.content[start:], '\n'); idx >= 0 {
		end = start + idx
	}
	line := s.content[start:end]
	return bytes.TrimSuffix(line, []byte("\r"))
}

// Pos is a resolved position within a Source, carrying enough information to
// implement the SourcePos contract used by the error formatter.
type Pos struct {
	src  *Source
	pos  int
	line int
	col  int
}

// NewPos resolves a byte offset into a Pos.
func NewPos(src *Source, pos int) Pos {
	p := Pos{src: src, pos: pos}
	if src != nil {
		p.line, p.col = src.LineCol(pos)
	}
	return p
}

// Source returns the underlying Source.
func (p Pos) Source() *Source {
	return p.src
}

// Offset returns the byte offset within the source.
func (p Pos) Offset() int {
	return p.pos
}

// SourceName implements the SourcePos contract.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

// Line returns the 1-based line number.
func (p Pos) Line() int {
	return p.line
}

// Col returns the 1-based byte column within the line.
func (p Pos) Col() int {
	return p.col
}
