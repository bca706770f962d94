// Package grammar defines the matcher graph a compiled PEG grammar is made
// of: the seven node kinds of the matching engine (Text, Regex, Symbol,
// Sequence, Choice, Repeat, Predicate), the Rule and Grammar containers that
// own them, and the static-analysis queries (nullability, leftmost-reference
// walk) the validator needs before any input is ever matched.
package grammar

import "regexp"

// Nullability is the three-valued result of asking whether a rule can match
// the empty string. UNKNOWN means the fixpoint computation has not yet
// decided: rules mutually dependent through a cycle whose base case never
// resolves are conservatively treated as YES once the fixpoint settles.
type Nullability int

const (
	Unknown Nullability = iota
	No
	Yes
)

// Value is whatever a matcher, a replacement function, or a predicate
// produces or consumes. The engine never inspects it beyond passing it
// around.
type Value = interface{}

// TokenValue is what Text and Regex matchers produce on success: the
// matched text and the byte position it started at.
type TokenValue struct {
	Text string
	Pos  int
}

// ReplacementFunc turns a Sequence's kept item values into the Sequence's
// own value.
type ReplacementFunc func([]Value) Value

// FormatLineFunc renders a message against the position it was raised at,
// using the same three-line convention as every other diagnostic this
// module produces. A RichFailure's Message method receives one of these so
// it can render consistently without importing the source package itself.
type FormatLineFunc func(message string, pos int) string

// RichFailure is a predicate rejection that wants full control over its own
// error text instead of being folded into the furthest-failure expectation
// list. Returning one from a PredicateFunc short-circuits the normal
// "expected X, Y, or Z" composition.
type RichFailure interface {
	Message(formatLine FormatLineFunc) string
}

// PredicateFunc is called after a Predicate matcher's base matches. It
// returns nil to accept, a string naming the expectation to report if it
// rejects, or a RichFailure to render its own diagnostic.
type PredicateFunc func(value Value, priorKept []Value) Value

// Matcher is the contract every node kind in the graph implements: running
// against a State (Match), and the static queries the validator runs before
// any input is seen (Nullable, LeftEdges).
type Matcher interface {
	// Match attempts to match at the state's current cursor. priorKept holds
	// the values already kept by the enclosing Sequence, in order; it is
	// only meaningful to Predicate matchers, and is threaded through Choice,
	// Repeat and Predicate untouched. On success it returns the matched
	// value and advances the cursor; on failure it returns (nil, false) and
	// leaves the cursor exactly where it found it.
	Match(st *State, priorKept []Value) (Value, bool)

	// Nullable reports whether this matcher can succeed without consuming
	// any input, given the current (possibly partial) rule nullability
	// table built by the fixpoint computation.
	Nullable(rules map[string]Nullability) Nullability

	// LeftEdges returns the rule names this matcher can reach at a leftmost,
	// not-yet-proven-to-consume-input position, used by the left-recursion
	// walk. rules gives the final, fully resolved nullability table.
	LeftEdges(rules map[string]Nullability) []string

	// Describe renders this matcher as human-readable expectation text,
	// e.g. "'foo'" for a literal or a regex's source for a Regex matcher.
	Describe() string

	// DefaultKeep is the keep flag an Item defaults to when the DSL's '!'
	// or '-' prefix is absent: false for Text, true for everything else.
	DefaultKeep() bool

	// Children returns this matcher's direct sub-matchers, not crossing
	// into a Symbol's referenced rule. Used by validation walks that need
	// to visit every node reachable within a single rule's body (e.g. the
	// wildcard-over-nullable check), as opposed to LeftEdges, which only
	// follows leftmost, possibly-empty-prefix positions.
	Children() []Matcher
}

// Item is a Matcher plus whether its value flows into the enclosing
// Sequence's value list.
type Item struct {
	Matcher Matcher
	Keep    bool
}

// Rule is a named production: a body matcher, the Symbol node other
// matchers reference it through, an optional human-readable description
// used in place of internal expectations when it fails, and the
// whitespace-skipping policy its Text/Regex terminals and entry point obey.
type Rule struct {
	Name           string
	Description    string
	SkipWhitespace bool
	Body           Matcher
	SymbolNode     *Symbol
}

// Grammar is a compiled, validated PEG grammar: a name-indexed set of rules,
// the start rule, and the whitespace pattern skip-enabled terminals consume
// after a successful match.
type Grammar struct {
	Rules           map[string]*Rule
	RuleOrder       []string
	StartRule       string
	WhitespaceRegex *regexp.Regexp
}

// NewGrammar creates an empty Grammar with the default whitespace pattern.
func NewGrammar() *Grammar {
	return &Grammar{
		Rules:           map[string]*Rule{},
		WhitespaceRegex: regexp.MustCompile(`\A\s+`),
	}
}

// Rule looks up a rule by name, creating an empty placeholder (body == nil)
// on first reference so that forward references resolve once the rule is
// later defined. The validator's undefined-symbol check looks for rules
// whose Body is still nil after the whole grammar has been parsed.
func (g *Grammar) Rule(name string) *Rule {
	if r, ok := g.Rules[name]; ok {
		return r
	}
	r := &Rule{Name: name}
	r.SymbolNode = &Symbol{Rule: r}
	g.Rules[name] = r
	g.RuleOrder = append(g.RuleOrder, name)
	if g.StartRule == "" {
		g.StartRule = name
	}
	return r
}

// Start returns the grammar's start rule.
func (g *Grammar) Start() *Rule {
	return g.Rules[g.StartRule]
}
