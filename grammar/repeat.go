package grammar

// Repeat encodes the three DSL repetition suffixes over a base matcher:
// '*' is (ZeroOK: true, MultipleOK: true), '+' is (false, true), and '?' is
// (true, false).
type Repeat struct {
	Base       Matcher
	ZeroOK     bool
	MultipleOK bool
}

func (m *Repeat) Match(st *State, priorKept []Value) (Value, bool) {
	var values []Value

	for {
		// Defense in depth: the validator rejects a nullable Repeat base, so
		// a further attempt at EOF would fail anyway; stopping here also
		// guarantees termination at EOF if a nullable base ever got through -
		// matching one at EOF would otherwise succeed forever without
		// advancing the cursor.
		if st.AtEOF() && (m.ZeroOK || len(values) > 0) {
			break
		}

		val, ok := m.Base.Match(st, priorKept)
		if !ok {
			break
		}

		values = append(values, val)
		if !m.MultipleOK {
			break
		}
	}

	if !m.ZeroOK && len(values) == 0 {
		return nil, false
	}

	return values, true
}

func (m *Repeat) Nullable(rules map[string]Nullability) Nullability {
	if m.ZeroOK {
		return Yes
	}
	return m.Base.Nullable(rules)
}

func (m *Repeat) LeftEdges(rules map[string]Nullability) []string {
	return m.Base.LeftEdges(rules)
}

func (m *Repeat) Describe() string {
	return m.Base.Describe()
}

func (m *Repeat) DefaultKeep() bool { return true }

func (m *Repeat) Children() []Matcher { return []Matcher{m.Base} }

// BaseNullable reports whether this Repeat's base is nullable given the
// final, resolved nullability table - used by the wildcard-over-nullable
// validator check. UNKNOWN is treated as nullable: by the time this check
// runs, nullability has already settled (remaining UNKNOWN rules were
// resolved to YES), so this only sees NO or YES in practice.
func (m *Repeat) BaseNullable(rules map[string]Nullability) bool {
	return m.Base.Nullable(rules) != No
}
