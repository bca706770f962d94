package grammar

import (
	"regexp"
	"sort"
	"strings"
)

// expectation is one entry in the furthest-failure record: either plain text
// or a rich failure that, if present, short-circuits the rest of the list.
type expectation struct {
	text string
	rich RichFailure
}

// State is the per-match scratch the engine threads through every Matcher
// call: the input, the cursor, and the furthest-failure bookkeeping of
// spec §4.7.
type State struct {
	Input []byte
	Cursor int

	ws *regexp.Regexp

	furthestPos  int
	expectations []expectation

	// Tracer, if set, is called by Symbol.Match on every rule attempt: the
	// rule name, the cursor position it was tried at, and whether it
	// succeeded. It is purely diagnostic (see parser.WithTrace) and never
	// consulted by the engine itself.
	Tracer func(rule string, pos int, ok bool)
}

// NewState creates matching scratch state over input, using ws as the
// whitespace-skipping regex (anchored at the cursor by the caller).
func NewState(input []byte, ws *regexp.Regexp) *State {
	return &State{Input: input, ws: ws}
}

// SkipWhitespace advances the cursor past a whitespace match anchored at the
// current position, if any.
func (st *State) SkipWhitespace() {
	if st.ws == nil {
		return
	}
	if loc := st.ws.FindIndex(st.Input[st.Cursor:]); loc != nil && loc[0] == 0 {
		st.Cursor += loc[1]
	}
}

// AtEOF reports whether the cursor has reached the end of input.
func (st *State) AtEOF() bool {
	return st.Cursor >= len(st.Input)
}

// ExpectationCount returns the number of expectations currently recorded at
// the furthest-failure position; used by Symbol to snapshot the count
// before dispatching to its rule body.
func (st *State) ExpectationCount() int {
	return len(st.expectations)
}

// FurthestPos returns the current furthest-failure position.
func (st *State) FurthestPos() int {
	return st.furthestPos
}

// Fail records a plain-text expectation at pos, following the
// furthest-failure accumulation rule: expectations at a new furthest
// position replace all previous ones, expectations at the current furthest
// position accumulate, and expectations behind the furthest position are
// discarded.
func (st *State) Fail(pos int, text string) {
	st.record(pos, expectation{text: text})
}

// FailRich records a rich failure at pos; it participates in furthest-
// failure ordering exactly like a plain expectation; rendering logic decides
// to let it short-circuit the rest of the list.
func (st *State) FailRich(pos int, rich RichFailure) {
	st.record(pos, expectation{rich: rich})
}

// FailDescribed is used by Symbol on a described rule's failure: it records
// text at pos, first truncating the expectation list back to keepLen if pos
// is still the current furthest position (i.e. the rule's body did not push
// the furthest position beyond where it started). This discards the body's
// internal expectations in favour of the rule's own description.
func (st *State) FailDescribed(pos int, text string, keepLen int) {
	if pos == st.furthestPos {
		if keepLen > len(st.expectations) {
			keepLen = len(st.expectations)
		}
		st.expectations = st.expectations[:keepLen]
	}
	st.record(pos, expectation{text: text})
}

func (st *State) record(pos int, e expectation) {
	switch {
	case pos > st.furthestPos:
		st.furthestPos = pos
		st.expectations = []expectation{e}
	case pos == st.furthestPos:
		st.expectations = append(st.expectations, e)
	default:
		// behind the furthest failure already recorded; ignore
	}
}

// Failure composes the final, fully formatted diagnostic from the
// accumulated expectations, per spec §4.7: a rich failure short-circuits
// the rest, rendering its own message via formatLine; otherwise
// expectations are deduplicated, sorted, joined as "expected X", "expected
// X or Y", or "expected X, Y, or Z", and formatted against the furthest
// failure position.
func (st *State) Failure(formatLine FormatLineFunc) string {
	for _, e := range st.expectations {
		if e.rich != nil {
			return e.rich.Message(formatLine)
		}
	}

	texts := make([]string, 0, len(st.expectations))
	seen := map[string]bool{}
	for _, e := range st.expectations {
		if e.text == "" || seen[e.text] {
			continue
		}
		seen[e.text] = true
		texts = append(texts, e.text)
	}
	sort.Strings(texts)

	return formatLine("expected "+joinOr(texts), st.furthestPos)
}

// joinOr renders ["X"] as "X", ["X","Y"] as "X or Y", and ["X","Y","Z"] as
// "X, Y, or Z".
func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return "more input"
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}
