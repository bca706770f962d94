package parser

import (
	"testing"

	"github.com/ava12/peg/errors"
	"github.com/ava12/peg/grammar"
	"github.com/ava12/peg/internal/test"
)

func TestBindDefaultsSingleKeptItemToIdentityOfFirst(t *testing.T) {
	seq := &grammar.Sequence{Items: []grammar.Item{
		{Matcher: &grammar.Text{Literal: "a"}, Keep: true},
	}}
	err := Bind(ruleGrammar(seq), Actions{})
	test.Assert(t, err == nil, "unexpected error: %v", err)

	result := seq.Replacement([]grammar.Value{"x"})
	test.Expect(t, result == "x", "x", result)
}

func TestBindDefaultsMultiKeptItemsToIdentityOfList(t *testing.T) {
	seq := &grammar.Sequence{Items: []grammar.Item{
		{Matcher: &grammar.Text{Literal: "a"}, Keep: true},
		{Matcher: &grammar.Text{Literal: "b"}, Keep: true},
	}}
	err := Bind(ruleGrammar(seq), Actions{})
	test.Assert(t, err == nil, "unexpected error: %v", err)

	result := seq.Replacement([]grammar.Value{"x", "y"})
	list, ok := result.([]grammar.Value)
	test.Assert(t, ok, "expected a []Value, got %T", result)
	test.ExpectInt(t, 2, len(list))
}

func TestBindResolvesNamedReplacement(t *testing.T) {
	called := false
	seq := &grammar.Sequence{
		Items:           []grammar.Item{{Matcher: &grammar.Text{Literal: "a"}, Keep: true}},
		ReplacementName: "join",
	}
	err := Bind(ruleGrammar(seq), Actions{
		Replacements: map[string]grammar.ReplacementFunc{
			"join": func([]grammar.Value) grammar.Value { called = true; return nil },
		},
	})
	test.Assert(t, err == nil, "unexpected error: %v", err)
	seq.Replacement(nil)
	test.ExpectBool(t, true, called)
}

func TestBindMissingReplacementFails(t *testing.T) {
	seq := &grammar.Sequence{ReplacementName: "missing"}
	err := Bind(ruleGrammar(seq), Actions{})
	test.ExpectErrorCode(t, errors.BindingErrors, err)
}

func TestBindMissingPredicateFails(t *testing.T) {
	pred := &grammar.Predicate{Base: &grammar.Text{Literal: "a"}, PredicateName: "missing"}
	seq := &grammar.Sequence{Items: []grammar.Item{{Matcher: pred, Keep: true}}}
	err := Bind(ruleGrammar(seq), Actions{})
	test.ExpectErrorCode(t, errors.BindingErrors, err)
}

func TestBindResolvesNamedPredicate(t *testing.T) {
	pred := &grammar.Predicate{Base: &grammar.Text{Literal: "a"}, PredicateName: "known"}
	seq := &grammar.Sequence{Items: []grammar.Item{{Matcher: pred, Keep: true}}}
	err := Bind(ruleGrammar(seq), Actions{
		Predicates: map[string]grammar.PredicateFunc{
			"known": func(grammar.Value, []grammar.Value) grammar.Value { return nil },
		},
	})
	test.Assert(t, err == nil, "unexpected error: %v", err)
	test.Assert(t, pred.Fn != nil, "expected predicate function to be bound")
}

func TestActionsMergeOverlaysPartial(t *testing.T) {
	base := Actions{Replacements: map[string]grammar.ReplacementFunc{
		"a": func([]grammar.Value) grammar.Value { return "base-a" },
		"b": func([]grammar.Value) grammar.Value { return "base-b" },
	}}
	merged := base.Merge(Actions{Replacements: map[string]grammar.ReplacementFunc{
		"b": func([]grammar.Value) grammar.Value { return "new-b" },
	}})

	test.Expect(t, merged.Replacements["a"](nil) == "base-a", "base-a", merged.Replacements["a"](nil))
	test.Expect(t, merged.Replacements["b"](nil) == "new-b", "new-b", merged.Replacements["b"](nil))
}

func ruleGrammar(body grammar.Matcher) *grammar.Grammar {
	g := grammar.NewGrammar()
	rule := g.Rule("top")
	rule.Body = body
	return g
}
