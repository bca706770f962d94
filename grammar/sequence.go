package grammar

// Sequence matches an ordered list of Items at consecutive positions. On
// success the values of its kept items are passed through the bound
// replacement function (set up by the action binder; see the parser
// package) to produce the Sequence's own value.
type Sequence struct {
	Items           []Item
	ReplacementName string
	Replacement     ReplacementFunc
}

func (m *Sequence) Match(st *State, _ []Value) (Value, bool) {
	start := st.Cursor
	kept := make([]Value, 0, len(m.Items))

	for _, item := range m.Items {
		val, ok := item.Matcher.Match(st, kept)
		if !ok {
			st.Cursor = start
			return nil, false
		}
		if item.Keep {
			kept = append(kept, val)
		}
	}

	if m.Replacement == nil {
		return kept, true
	}
	return m.Replacement(kept), true
}

func (m *Sequence) Nullable(rules map[string]Nullability) Nullability {
	result := Yes
	for _, item := range m.Items {
		switch item.Matcher.Nullable(rules) {
		case No:
			return No
		case Unknown:
			result = Unknown
		}
	}
	return result
}

func (m *Sequence) LeftEdges(rules map[string]Nullability) []string {
	var edges []string
	for _, item := range m.Items {
		edges = append(edges, item.Matcher.LeftEdges(rules)...)
		if item.Matcher.Nullable(rules) != Yes {
			break
		}
	}
	return edges
}

func (m *Sequence) Describe() string {
	return "a valid sequence"
}

func (m *Sequence) DefaultKeep() bool { return true }

func (m *Sequence) Children() []Matcher {
	result := make([]Matcher, len(m.Items))
	for i, item := range m.Items {
		result[i] = item.Matcher
	}
	return result
}
