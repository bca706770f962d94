package langdef

import (
	"sort"
	"strings"

	"github.com/ava12/peg/errors"
	"github.com/ava12/peg/grammar"
)

// Validate runs the four-stage structural check over g, in order, stopping
// at the first stage that finds a problem: undefined symbols, nullability
// (which never fails on its own, only feeds the later stages), left
// recursion, and wildcard-over-nullable Repeats. No input is read; this is
// purely a property of the compiled graph.
func Validate(g *grammar.Grammar) error {
	if err := checkUndefined(g); err != nil {
		return err
	}

	rules := computeNullability(g)

	if err := checkLeftRecursion(g, rules); err != nil {
		return err
	}

	if err := checkWildcardOverNullable(g, rules); err != nil {
		return err
	}

	return nil
}

// checkUndefined reports every rule that was referenced (and so given a
// placeholder by Grammar.Rule) but never given a body.
func checkUndefined(g *grammar.Grammar) error {
	var names []string
	for _, name := range g.RuleOrder {
		if g.Rules[name].Body == nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return errors.Format(errors.ValidationErrors, "undefined rule%s: %s", plural(len(names)), joinAnd(names))
}

// computeNullability runs the fixpoint to completion: iterate over rules
// still UNKNOWN, asking each body for its nullability against the
// in-progress table, until a full pass makes no further progress. Any rule
// still UNKNOWN at that point sits in a cycle whose base case never
// resolves, and is conservatively settled to YES.
func computeNullability(g *grammar.Grammar) map[string]grammar.Nullability {
	rules := make(map[string]grammar.Nullability, len(g.RuleOrder))
	for _, name := range g.RuleOrder {
		rules[name] = grammar.Unknown
	}

	for {
		progress := false
		for _, name := range g.RuleOrder {
			if rules[name] != grammar.Unknown {
				continue
			}
			rule := g.Rules[name]
			if rule.Body == nil {
				continue
			}
			if n := rule.Body.Nullable(rules); n != grammar.Unknown {
				rules[name] = n
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	for _, name := range g.RuleOrder {
		if rules[name] == grammar.Unknown {
			rules[name] = grammar.Yes
		}
	}

	return rules
}

// checkLeftRecursion walks each rule's leftmost positions looking for a path
// back to the rule it started from. Rules are visited at most once overall:
// once a rule has been cleared (its walk terminated without revisiting
// anything still on the current path), it is never walked again.
func checkLeftRecursion(g *grammar.Grammar, rules map[string]grammar.Nullability) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.RuleOrder))

	var cycle []string
	var walk func(name string) bool

	walk = func(name string) bool {
		switch color[name] {
		case black:
			return false
		case gray:
			cycle = []string{name}
			return true
		}

		rule, ok := g.Rules[name]
		if !ok || rule.Body == nil {
			return false
		}

		color[name] = gray
		for _, edge := range rule.Body.LeftEdges(rules) {
			if walk(edge) {
				if len(cycle) == 0 || cycle[0] != name {
					cycle = append(cycle, name)
				}
				return true
			}
		}
		color[name] = black
		return false
	}

	for _, name := range g.RuleOrder {
		if color[name] != white {
			continue
		}
		cycle = nil
		if walk(name) {
			sort.Strings(cycle)
			return errors.Format(errors.ValidationErrors, "left-recursive rule%s: %s", plural(len(cycle)), joinAnd(cycle))
		}
	}

	return nil
}

// checkWildcardOverNullable walks every rule's full body - not just its
// leftmost positions - looking for a Repeat whose base can match without
// consuming input. Such a Repeat could loop forever without advancing the
// cursor (Repeat.Match's defensive EOF check only stops that at end of
// input), and is rejected outright rather than tolerated.
func checkWildcardOverNullable(g *grammar.Grammar, rules map[string]grammar.Nullability) error {
	var bad []string

	for _, name := range g.RuleOrder {
		rule := g.Rules[name]
		if rule.Body == nil {
			continue
		}
		if containsWildcardOverNullable(rule.Body, rules) {
			bad = append(bad, name)
		}
	}

	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return errors.Format(errors.ValidationErrors, "rule%s with a repeated nullable matcher: %s", plural(len(bad)), joinAnd(bad))
}

func containsWildcardOverNullable(m grammar.Matcher, rules map[string]grammar.Nullability) bool {
	if rep, ok := m.(*grammar.Repeat); ok && rep.BaseNullable(rules) {
		return true
	}
	for _, child := range m.Children() {
		if containsWildcardOverNullable(child, rules) {
			return true
		}
	}
	return false
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// joinAnd renders ["a"] as "a", ["a","b"] as "a and b", and ["a","b","c"] as
// "a, b, and c".
func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
