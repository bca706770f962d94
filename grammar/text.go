package grammar

import "strings"

// Text matches a literal string at the cursor.
type Text struct {
	Literal string
	SkipWS  bool
}

func (m *Text) Match(st *State, _ []Value) (Value, bool) {
	if strings.HasPrefix(string(st.Input[st.Cursor:]), m.Literal) {
		pos := st.Cursor
		st.Cursor += len(m.Literal)
		if m.SkipWS {
			st.SkipWhitespace()
		}
		return TokenValue{Text: m.Literal, Pos: pos}, true
	}

	st.Fail(st.Cursor, m.Describe())
	return nil, false
}

func (m *Text) Nullable(map[string]Nullability) Nullability {
	if m.Literal == "" {
		return Yes
	}
	return No
}

func (m *Text) LeftEdges(map[string]Nullability) []string { return nil }

func (m *Text) Describe() string {
	return "'" + m.Literal + "'"
}

func (m *Text) DefaultKeep() bool { return false }

func (m *Text) Children() []Matcher { return nil }
