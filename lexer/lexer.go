package lexer

import (
	"regexp"
	"strings"

	"github.com/ava12/peg/source"
)

// combined matches, in priority order, whitespace, a SYMBOL, a single-quoted
// TEXT literal, a /slash-delimited/ REGEX literal, a <...> DESCRIPTION, or
// (as a catch-all) a single CHAR.
var combined = regexp.MustCompile(
	`^(?:(\s+)|([a-z][a-zA-Z0-9]*)|('(?:\\.|[^'\\])*')|(/(?:\\.|[^/\\])*/)|(<[^>]*>)|(.))`,
)

var escapes = map[byte]byte{
	'b': '\b', 'f': '\f', 't': '\t', 'v': '\v', 'r': '\r', 'n': '\n',
}

// Lexer tokenises a grammar source. Once an error has been recorded via
// Error, every subsequent call to Next returns EOF: the error latches, and
// the first error always wins.
type Lexer struct {
	src     *source.Source
	content []byte
	pos     int
	pushed  []Token
	err     *Error
}

// Error is the latched lexical error: a message together with the position
// it occurred at.
type Error struct {
	Message  string
	Position int
}

// New creates a Lexer over src.
func New(src *source.Source) *Lexer {
	return &Lexer{src: src, content: src.Content()}
}

// Next returns the next token, or EOF at end of input or after an error has
// been latched.
func (l *Lexer) Next() Token {
	if l.err != nil {
		return Token{Kind: EOF, Position: l.err.Position}
	}

	if n := len(l.pushed); n > 0 {
		t := l.pushed[n-1]
		l.pushed = l.pushed[:n-1]
		return t
	}

	for {
		if l.pos >= len(l.content) {
			return Token{Kind: EOF, Position: l.pos}
		}

		m := combined.FindSubmatchIndex(l.content[l.pos:])
		if m == nil {
			// unreachable: the CHAR alternative matches any single byte
			l.Error("unexpected character", Token{Position: l.pos})
			return Token{Kind: EOF, Position: l.pos}
		}

		start := l.pos
		raw := l.content[l.pos+m[0] : l.pos+m[1]]
		l.pos += m[1]

		switch {
		case m[2] >= 0: // whitespace
			continue
		case m[4] >= 0: // symbol
			return Token{Kind: SYMBOL, Value: string(raw), Position: start}
		case m[6] >= 0: // text
			return Token{Kind: TEXT, Value: unquoteText(raw), Position: start}
		case m[8] >= 0: // regex
			return Token{Kind: REGEX, Value: unquoteRegex(raw), Position: start}
		case m[10] >= 0: // description
			return Token{Kind: DESCRIPTION, Value: string(raw[1 : len(raw)-1]), Position: start}
		default: // char
			return Token{Kind: CHAR, Value: string(raw), Position: start}
		}
	}
}

// PushBack stacks a token to be replayed by the next call to Next, LIFO.
func (l *Lexer) PushBack(t Token) {
	l.pushed = append(l.pushed, t)
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	t := l.Next()
	l.PushBack(t)
	return t
}

// Error latches the first lexical or syntax error encountered while
// consuming this token stream. Subsequent calls are ignored: the first
// error wins.
func (l *Lexer) Error(reason string, t Token) {
	if l.err != nil {
		return
	}
	l.err = &Error{Message: reason, Position: t.Position}
}

// Err returns the latched error, or nil if none was recorded.
func (l *Lexer) Err() *Error {
	return l.err
}

// Message renders the latched error against the lexer's source using the
// three-line error format, or returns "" if no error was latched.
func (l *Lexer) Message() string {
	if l.err == nil {
		return ""
	}
	return source.FormatError(l.err.Message, l.src, l.err.Position)
}

// unquoteText decodes a single-quoted TEXT literal: \' and the standard
// backslash escapes \b \f \t \v \r \n are recognised; any other \X yields
// the literal character X.
func unquoteText(raw []byte) string {
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			next := inner[i]
			if r, ok := escapes[next]; ok {
				b.WriteByte(r)
			} else {
				b.WriteByte(next)
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// unquoteRegex strips the delimiting slashes, resolves the \/ escape, and
// silently rewrites capturing groups "(" into non-capturing "(?:" groups:
// the matching engine never reads submatches, so paying for them would be
// pure overhead.
func unquoteRegex(raw []byte) string {
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) && inner[i+1] == '/' {
			b.WriteByte('/')
			i++
			continue
		}
		if c == '\\' && i+1 < len(inner) {
			b.WriteByte(c)
			b.WriteByte(inner[i+1])
			i++
			continue
		}
		if c == '(' && !(i+1 < len(inner) && inner[i+1] == '?') {
			b.WriteString("(?:")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
