package grammar

// Symbol is a back-reference to a Rule. Every Rule owns exactly one Symbol
// node; other matchers reference the rule only through it, which is what
// lets the graph contain cycles (recursive rules) without the Rule/Symbol
// pair itself forming an ownership cycle: the Rule owns its Symbol, and the
// Symbol only holds a non-owning pointer back.
type Symbol struct {
	Rule *Rule
}

func (m *Symbol) Match(st *State, _ []Value) (Value, bool) {
	rule := m.Rule
	preSkipPos := st.Cursor
	if rule.SkipWhitespace {
		st.SkipWhitespace()
	}

	entryPos := st.Cursor
	furthestAtEntry := st.FurthestPos()
	snapshot := st.ExpectationCount()

	val, ok := rule.Body.Match(st, nil)
	if st.Tracer != nil {
		st.Tracer(rule.Name, entryPos, ok)
	}
	if ok {
		return val, true
	}

	// Restore to the cursor this call actually started at, not the
	// post-whitespace-skip position: a caller that never consumed any of
	// the skipped whitespace must see it still unconsumed on failure.
	st.Cursor = preSkipPos

	if rule.Description != "" {
		keepLen := 0
		if st.FurthestPos() == furthestAtEntry {
			keepLen = snapshot
		}
		st.FailDescribed(entryPos, rule.Description, keepLen)
	}

	return nil, false
}

func (m *Symbol) Nullable(rules map[string]Nullability) Nullability {
	if n, ok := rules[m.Rule.Name]; ok {
		return n
	}
	return Unknown
}

func (m *Symbol) LeftEdges(map[string]Nullability) []string {
	return []string{m.Rule.Name}
}

func (m *Symbol) Describe() string {
	if m.Rule.Description != "" {
		return m.Rule.Description
	}
	return m.Rule.Name
}

func (m *Symbol) DefaultKeep() bool { return true }

func (m *Symbol) Children() []Matcher { return nil }
