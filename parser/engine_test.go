package parser

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/ava12/peg/grammar"
	"github.com/ava12/peg/internal/test"
	"github.com/ava12/peg/langdef"
	"github.com/ava12/peg/source"
)

func matchString(t *testing.T, g *grammar.Grammar, input string) Result {
	t.Helper()
	err := Bind(g, Actions{})
	test.Assert(t, err == nil, "unexpected bind error: %v", err)
	src := source.NewString("input", input)
	return Match(g, src, hclog.NewNullLogger(), false)
}

func TestMatchSucceedsAtEndOfInput(t *testing.T) {
	g, err := langdef.ParseString("t", `top = 'a' 'b'`)
	test.Assert(t, err == nil, "unexpected error: %v", err)

	r := matchString(t, g, "ab")
	test.Assert(t, r.Error == "", "unexpected error: %s", r.Error)
}

func TestMatchFailsOnTrailingInput(t *testing.T) {
	g, err := langdef.ParseString("t", `top = 'a'`)
	test.Assert(t, err == nil, "unexpected error: %v", err)

	r := matchString(t, g, "ab")
	test.Assert(t, strings.HasPrefix(r.Error, "expected end of input"), "unexpected error: %s", r.Error)
}

func TestMatchReportsFurthestFailure(t *testing.T) {
	g, err := langdef.ParseString("t", `top = 'ax' | 'ay'`)
	test.Assert(t, err == nil, "unexpected error: %v", err)

	r := matchString(t, g, "az")
	test.Assert(t, strings.HasPrefix(r.Error, "expected 'ax' or 'ay'"), "unexpected error: %s", r.Error)
}

func TestMatchTracesRuleAttempts(t *testing.T) {
	g, err := langdef.ParseString("t", `top = 'a'`)
	test.Assert(t, err == nil, "unexpected error: %v", err)
	err = Bind(g, Actions{})
	test.Assert(t, err == nil, "unexpected bind error: %v", err)

	var traced []string
	src := source.NewString("input", "a")
	st := grammar.NewState(src.Content(), g.WhitespaceRegex)
	st.Tracer = func(rule string, pos int, ok bool) { traced = append(traced, rule) }
	_, ok := g.Start().SymbolNode.Match(st, nil)

	test.ExpectBool(t, true, ok)
	test.ExpectInt(t, 1, len(traced))
	test.Expect(t, traced[0] == "top", "top", traced[0])
}
