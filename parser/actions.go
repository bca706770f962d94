// Package parser binds host-supplied action tables onto a compiled
// grammar.Grammar and drives the PEG matching engine over input, per
// spec.md §§4.5-4.7. It sits between langdef (which only compiles and
// validates) and the root peg package (which exposes both as a single
// facade).
package parser

import (
	"github.com/ava12/peg/errors"
	"github.com/ava12/peg/grammar"
)

// Actions is the two host-supplied tables a grammar's Sequences and
// Predicates are bound against: replacement functions, named by a
// Sequence's '%' suffix, and predicate functions, named by an item's ':'
// suffix. Either table may be nil; a nil table behaves as empty.
type Actions struct {
	Replacements map[string]grammar.ReplacementFunc
	Predicates   map[string]grammar.PredicateFunc
}

// Merge returns a copy of a with every non-empty entry of b overlaid on
// top, used by the facade's partial-rebinding (*Parser).Actions call: both
// sub-tables of an update are optional, and only the entries present in the
// update replace the current ones.
func (a Actions) Merge(b Actions) Actions {
	result := Actions{
		Replacements: make(map[string]grammar.ReplacementFunc, len(a.Replacements)+len(b.Replacements)),
		Predicates:   make(map[string]grammar.PredicateFunc, len(a.Predicates)+len(b.Predicates)),
	}
	for k, v := range a.Replacements {
		result.Replacements[k] = v
	}
	for k, v := range a.Predicates {
		result.Predicates[k] = v
	}
	for k, v := range b.Replacements {
		result.Replacements[k] = v
	}
	for k, v := range b.Predicates {
		result.Predicates[k] = v
	}
	return result
}

// Bind resolves every Sequence's replacement name and every Predicate's
// name against acts, recursively over g's whole rule graph. A Sequence
// with no replacement name defaults to identity-of-first-kept-item when it
// keeps exactly one item, or identity-of-the-list otherwise. A missing
// named replacement or predicate is a configuration failure, not a match
// failure: it is reported once, naming the missing function, before any
// input is ever matched against g.
func Bind(g *grammar.Grammar, acts Actions) error {
	for _, name := range g.RuleOrder {
		rule := g.Rules[name]
		if rule.Body == nil {
			continue
		}
		if err := bindMatcher(rule.Body, acts); err != nil {
			return err
		}
	}
	return nil
}

// bindMatcher binds m itself (if it is a Sequence or Predicate) and then
// recurses into its children. It never crosses a Symbol into another
// rule's body - Bind's outer loop over g.RuleOrder already visits every
// rule's body exactly once, so crossing here would just repeat the work.
func bindMatcher(m grammar.Matcher, acts Actions) error {
	switch node := m.(type) {
	case *grammar.Sequence:
		if err := bindSequence(node, acts); err != nil {
			return err
		}
	case *grammar.Predicate:
		if err := bindPredicate(node, acts); err != nil {
			return err
		}
	}

	for _, child := range m.Children() {
		if err := bindMatcher(child, acts); err != nil {
			return err
		}
	}
	return nil
}

func bindSequence(seq *grammar.Sequence, acts Actions) error {
	if seq.ReplacementName != "" {
		fn, ok := acts.Replacements[seq.ReplacementName]
		if !ok {
			return errors.Format(errors.BindingErrors, "missing replacement function %q", seq.ReplacementName)
		}
		seq.Replacement = fn
		return nil
	}

	kept := 0
	for _, item := range seq.Items {
		if item.Keep {
			kept++
		}
	}
	if kept == 1 {
		seq.Replacement = identityOfFirst
	} else {
		seq.Replacement = identityOfList
	}
	return nil
}

func bindPredicate(pred *grammar.Predicate, acts Actions) error {
	fn, ok := acts.Predicates[pred.PredicateName]
	if !ok {
		return errors.Format(errors.BindingErrors, "missing predicate function %q", pred.PredicateName)
	}
	pred.Fn = fn
	return nil
}

func identityOfFirst(values []grammar.Value) grammar.Value {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

func identityOfList(values []grammar.Value) grammar.Value {
	return values
}
