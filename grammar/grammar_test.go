package grammar

import (
	"testing"

	"github.com/ava12/peg/internal/test"
)

func newState(s string) *State {
	return NewState([]byte(s), nil)
}

func TestTextMatch(t *testing.T) {
	m := &Text{Literal: "foo"}
	st := newState("foobar")
	val, ok := m.Match(st, nil)
	test.Assert(t, ok, "expected match")
	tv := val.(TokenValue)
	test.Expect(t, tv.Text == "foo", "foo", tv.Text)
	test.ExpectInt(t, 3, st.Cursor)
}

func TestTextMismatchRestoresCursor(t *testing.T) {
	m := &Text{Literal: "foo"}
	st := newState("bar")
	_, ok := m.Match(st, nil)
	test.Assert(t, !ok, "expected no match")
	test.ExpectInt(t, 0, st.Cursor)
}

func TestRegexMatch(t *testing.T) {
	m, err := NewRegex(`[0-9]+`)
	test.Assert(t, err == nil, "expected regex to compile: %v", err)
	st := newState("123abc")
	val, ok := m.Match(st, nil)
	test.Assert(t, ok, "expected match")
	test.Expect(t, val.(TokenValue).Text == "123", "123", val.(TokenValue).Text)
	test.ExpectInt(t, 3, st.Cursor)
}

func TestRegexDoesNotSearchForward(t *testing.T) {
	m, _ := NewRegex(`[0-9]+`)
	st := newState("abc123")
	_, ok := m.Match(st, nil)
	test.Assert(t, !ok, "regex must anchor at cursor, not search")
}

func TestSequenceCollectsKeptValues(t *testing.T) {
	a := &Text{Literal: "a"}
	b := &Regex{Source: "b+"}
	re, _ := NewRegex("b+")
	b.Re = re.Re
	seq := &Sequence{Items: []Item{{Matcher: a, Keep: false}, {Matcher: b, Keep: true}}}
	st := newState("abb")
	val, ok := seq.Match(st, nil)
	test.Assert(t, ok, "expected sequence to match")
	vals := val.([]Value)
	test.ExpectInt(t, 1, len(vals))
}

func TestSequenceFailureRestoresCursor(t *testing.T) {
	a := &Text{Literal: "a"}
	b := &Text{Literal: "b"}
	seq := &Sequence{Items: []Item{{Matcher: a, Keep: true}, {Matcher: b, Keep: true}}}
	st := newState("ac")
	_, ok := seq.Match(st, nil)
	test.Assert(t, !ok, "expected sequence to fail")
	test.ExpectInt(t, 0, st.Cursor)
}

func TestChoiceFirstMatchWins(t *testing.T) {
	c := &Choice{Alternatives: []Matcher{&Text{Literal: "one"}, &Text{Literal: "on"}}}
	st := newState("one")
	val, ok := c.Match(st, nil)
	test.Assert(t, ok, "expected match")
	test.Expect(t, val.(TokenValue).Text == "one", "one", val.(TokenValue).Text)
}

func TestRepeatStar(t *testing.T) {
	r := &Repeat{Base: &Text{Literal: "a"}, ZeroOK: true, MultipleOK: true}
	st := newState("aaab")
	val, ok := r.Match(st, nil)
	test.Assert(t, ok, "expected match")
	test.ExpectInt(t, 3, len(val.([]Value)))
	test.ExpectInt(t, 3, st.Cursor)
}

func TestRepeatStarZeroMatches(t *testing.T) {
	r := &Repeat{Base: &Text{Literal: "a"}, ZeroOK: true, MultipleOK: true}
	st := newState("bbb")
	val, ok := r.Match(st, nil)
	test.Assert(t, ok, "expected match even with zero repetitions")
	test.ExpectInt(t, 0, len(val.([]Value)))
}

func TestRepeatPlusRequiresOne(t *testing.T) {
	r := &Repeat{Base: &Text{Literal: "a"}, ZeroOK: false, MultipleOK: true}
	st := newState("bbb")
	_, ok := r.Match(st, nil)
	test.Assert(t, !ok, "expected plus to fail with zero repetitions")
}

func TestRepeatOptional(t *testing.T) {
	r := &Repeat{Base: &Text{Literal: "a"}, ZeroOK: true, MultipleOK: false}
	st := newState("aaa")
	val, ok := r.Match(st, nil)
	test.Assert(t, ok, "expected match")
	test.ExpectInt(t, 1, len(val.([]Value)))
	test.ExpectInt(t, 1, st.Cursor)
}

func TestPredicateRejectsAndRestoresCursor(t *testing.T) {
	base := &Regex{Source: "[a-z]+"}
	re, _ := NewRegex("[a-z]+")
	base.Re = re.Re
	p := &Predicate{Base: base, Fn: func(v Value, prior []Value) Value {
		return "a palindrome"
	}}
	st := newState("hello")
	_, ok := p.Match(st, nil)
	test.Assert(t, !ok, "expected predicate to reject")
	test.ExpectInt(t, 0, st.Cursor)
}

func TestPredicateAccepts(t *testing.T) {
	re, _ := NewRegex("[a-z]+")
	p := &Predicate{Base: re, Fn: func(v Value, prior []Value) Value {
		return nil
	}}
	st := newState("hello")
	val, ok := p.Match(st, nil)
	test.Assert(t, ok, "expected predicate to accept")
	test.Expect(t, val.(TokenValue).Text == "hello", "hello", val.(TokenValue).Text)
}

func TestNullabilitySequenceAndChoice(t *testing.T) {
	nullableRules := map[string]Nullability{}
	seq := &Sequence{Items: []Item{
		{Matcher: &Repeat{Base: &Text{Literal: "a"}, ZeroOK: true, MultipleOK: true}},
		{Matcher: &Text{Literal: "b"}},
	}}
	test.Expect(t, seq.Nullable(nullableRules) == No, No, seq.Nullable(nullableRules))

	choice := &Choice{Alternatives: []Matcher{&Text{Literal: "a"}, &Repeat{Base: &Text{Literal: "b"}, ZeroOK: true, MultipleOK: true}}}
	test.Expect(t, choice.Nullable(nullableRules) == Yes, Yes, choice.Nullable(nullableRules))
}

func TestFurthestFailureAccumulation(t *testing.T) {
	st := newState("abc")
	st.Fail(1, "'x'")
	st.Fail(2, "'y'")
	test.ExpectInt(t, 2, st.FurthestPos())
	test.ExpectInt(t, 1, st.ExpectationCount())

	st.Fail(2, "'z'")
	test.ExpectInt(t, 2, st.ExpectationCount())

	st.Fail(0, "'ignored'")
	test.ExpectInt(t, 2, st.ExpectationCount())
}

func TestFailureMessageJoinsExpectations(t *testing.T) {
	st := newState("abc")
	st.Fail(0, "'a'")
	st.Fail(0, "'b'")
	msg := st.Failure(func(msg string, pos int) string { return msg })
	test.Expect(t, msg == "expected 'a' or 'b'", "expected 'a' or 'b'", msg)
}
