package grammar

// Choice tries each alternative in order at the same cursor position; the
// first one that succeeds wins.
type Choice struct {
	Alternatives []Matcher
}

func (m *Choice) Match(st *State, priorKept []Value) (Value, bool) {
	for _, alt := range m.Alternatives {
		if val, ok := alt.Match(st, priorKept); ok {
			return val, true
		}
	}
	return nil, false
}

func (m *Choice) Nullable(rules map[string]Nullability) Nullability {
	result := No
	for _, alt := range m.Alternatives {
		switch alt.Nullable(rules) {
		case Yes:
			return Yes
		case Unknown:
			result = Unknown
		}
	}
	return result
}

func (m *Choice) LeftEdges(rules map[string]Nullability) []string {
	var edges []string
	for _, alt := range m.Alternatives {
		edges = append(edges, alt.LeftEdges(rules)...)
	}
	return edges
}

func (m *Choice) Describe() string {
	return "a valid alternative"
}

func (m *Choice) DefaultKeep() bool { return true }

func (m *Choice) Children() []Matcher { return m.Alternatives }
