package grammar

import "regexp"

// Regex matches an anchored regular expression at the cursor: the pattern
// is tried at the cursor's position only, never searched forward.
type Regex struct {
	Source string
	Re     *regexp.Regexp
	SkipWS bool
}

// NewRegex compiles source, anchoring it at the start of whatever slice it
// is matched against. Compiled patterns are cached by source text (see
// regexcache.go), so re-compiling a grammar description that reuses the
// same pattern - common across a test suite's many ParseString calls -
// does not re-pay regexp.Compile's cost.
func NewRegex(source string) (*Regex, error) {
	re, err := compileCached(source)
	if err != nil {
		return nil, err
	}
	return &Regex{Source: source, Re: re}, nil
}

func (m *Regex) Match(st *State, _ []Value) (Value, bool) {
	loc := m.Re.FindIndex(st.Input[st.Cursor:])
	if loc == nil {
		st.Fail(st.Cursor, m.Describe())
		return nil, false
	}

	pos := st.Cursor
	text := string(st.Input[st.Cursor+loc[0] : st.Cursor+loc[1]])
	st.Cursor += loc[1]
	if m.SkipWS {
		st.SkipWhitespace()
	}
	return TokenValue{Text: text, Pos: pos}, true
}

func (m *Regex) Nullable(map[string]Nullability) Nullability {
	if m.Re.MatchString("") {
		return Yes
	}
	return No
}

func (m *Regex) LeftEdges(map[string]Nullability) []string { return nil }

func (m *Regex) Describe() string {
	return "/" + m.Source + "/"
}

func (m *Regex) DefaultKeep() bool { return true }

func (m *Regex) Children() []Matcher { return nil }
