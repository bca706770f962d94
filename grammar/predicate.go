package grammar

import "fmt"

// Predicate matches its base, then calls a caller-supplied predicate
// function with the matched value and the values already kept by the
// enclosing Sequence; the predicate may veto an otherwise successful match.
type Predicate struct {
	Base          Matcher
	PredicateName string
	Fn            PredicateFunc
}

func (m *Predicate) Match(st *State, priorKept []Value) (Value, bool) {
	start := st.Cursor

	val, ok := m.Base.Match(st, priorKept)
	if !ok {
		return nil, false
	}

	if m.Fn == nil {
		return val, true
	}

	verdict := m.Fn(val, priorKept)
	if verdict == nil {
		return val, true
	}

	st.Cursor = start
	switch v := verdict.(type) {
	case string:
		st.Fail(start, v)
	case RichFailure:
		st.FailRich(start, v)
	default:
		st.Fail(start, fmt.Sprintf("%v", v))
	}
	return nil, false
}

func (m *Predicate) Nullable(rules map[string]Nullability) Nullability {
	return m.Base.Nullable(rules)
}

func (m *Predicate) LeftEdges(rules map[string]Nullability) []string {
	return m.Base.LeftEdges(rules)
}

func (m *Predicate) Describe() string {
	return m.Base.Describe()
}

func (m *Predicate) DefaultKeep() bool { return true }

func (m *Predicate) Children() []Matcher { return []Matcher{m.Base} }
