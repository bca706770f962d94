// Package peg compiles a small PEG-flavoured grammar description language
// into a backtracking matcher and runs it against input text. It is the
// public facade over the langdef, grammar, parser, and source packages:
// everything a caller needs lives behind CreateParser, (*Parser).Match,
// (*Parser).Actions, and (*Parser).Error.
package peg

import (
	"github.com/hashicorp/go-hclog"

	"github.com/ava12/peg/errors"
	"github.com/ava12/peg/grammar"
	"github.com/ava12/peg/langdef"
	"github.com/ava12/peg/parser"
	"github.com/ava12/peg/source"
)

// Error is the configuration-failure type returned by CreateParser and by
// (*Parser).Actions: a bad grammar description, an undefined symbol, a
// left-recursive rule, a wildcard over a nullable matcher, or a missing
// replacement/predicate function. (*Parser).Match does not return an
// *Error: when its lazy binding step fails, the error's text is placed in
// MatchResult.Error. Parse failures on ordinary input are never represented
// this way; see MatchResult.
type Error = errors.Error

// Value is whatever a bound replacement or predicate function produces or
// consumes, and what a successful MatchResult carries.
type Value = grammar.Value

// Token is what an unreplaced Text or Regex item contributes to its
// enclosing Sequence: the matched text and the byte offset it started at.
type Token = grammar.TokenValue

// Replacement turns a Sequence's kept item values into the Sequence's own
// value, per spec.md §4.5.
type Replacement = grammar.ReplacementFunc

// Predicate is called after a ':'-suffixed item's base matches, and may
// veto the match by returning a non-nil verdict: a string naming the
// rejected expectation, or a RichFailure for full control over the
// rendered message.
type Predicate = grammar.PredicateFunc

// RichFailure lets a Predicate render its own diagnostic instead of
// folding into the usual "expected X, Y, or Z" composition.
type RichFailure = grammar.RichFailure

// Actions is the pair of name-keyed tables a grammar's '%'-named
// replacements and ':'-named predicates are bound against.
type Actions = parser.Actions

// MatchResult is the outcome of one Match call. Error is empty on success;
// on failure Result is nil and Error holds the three-line formatted
// diagnostic of spec.md §4.8.
type MatchResult struct {
	Result Value
	Error  string
}

// Parser is a compiled, validated grammar together with its bound action
// tables. It is safe to reuse across many Match calls but, per spec.md §5,
// not safe to use concurrently: Match mutates the Parser's record of the
// most recently matched Source, which (*Parser).Error formats against.
type Parser struct {
	grammar *grammar.Grammar
	acts    Actions
	bound   bool

	log   hclog.Logger
	trace bool

	lastSource *source.Source
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithLogger sets the logger CreateParser and Match use for diagnostic
// tracing. The default is hclog.NewNullLogger - this library never writes
// to stdout/stderr on its own.
func WithLogger(log hclog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// WithTrace enables per-rule match tracing at Trace level: each rule
// attempt's name, position, and success/failure is logged. It never
// affects match results.
func WithTrace(on bool) Option {
	return func(p *Parser) { p.trace = on }
}

// WithActions supplies the initial action tables, equivalent to calling
// (*Parser).Actions right after CreateParser.
func WithActions(acts Actions) Option {
	return func(p *Parser) { p.acts = acts }
}

// CreateParser compiles grammarText - the textual grammar description
// language of spec.md §4.2 - lexing, parsing, and validating it (spec.md
// §§4.1, 4.2, 4.4) before returning. A bad grammar description, at any of
// those three stages, is reported as an *Error.
//
// Action binding (spec.md §4.5) happens lazily, on the first call to
// Match, unless WithActions is supplied here or (*Parser).Actions is
// called first - an unbound grammar still compiles and validates, it just
// cannot be matched against yet without its named functions.
func CreateParser(grammarText string, opts ...Option) (*Parser, error) {
	p := &Parser{log: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(p)
	}

	p.log.Debug("compiling grammar")
	g, err := langdef.ParseString("grammar", grammarText)
	if err != nil {
		return nil, err
	}
	p.grammar = g
	p.log.Debug("grammar compiled and validated", "rules", len(g.Rules))

	if p.acts.Replacements != nil || p.acts.Predicates != nil {
		if err := p.bind(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Actions merges partial into the Parser's current action tables - either
// sub-table may be nil - and immediately rebinds the grammar against the
// result, mutating every Sequence and Predicate's bound function in place.
// It must not be called concurrently with Match.
func (p *Parser) Actions(partial Actions) error {
	p.acts = p.acts.Merge(partial)
	p.bound = false
	return p.bind()
}

// Error formats message against pos in the most recently matched input,
// using the same three-line convention as a parse failure. It is meant for
// application-level diagnostics raised by a caller's own replacement or
// predicate function, after a successful Match.
func (p *Parser) Error(message string, pos int) string {
	return source.FormatError(message, p.lastSource, pos)
}

// Match runs the Parser's grammar against input once, per spec.md §4.6. On
// success MatchResult.Error is empty; on failure MatchResult.Result is nil
// and Error holds the formatted diagnostic. If the grammar has never been
// bound, Match binds it now against whatever action tables are currently
// set (possibly empty), per spec.md §4.5's lazy-binding allowance; if that
// binding fails, Result is nil and Error holds the configuration error's
// one-line message rather than a three-line diagnostic.
func (p *Parser) Match(input string) MatchResult {
	if !p.bound {
		if err := p.bind(); err != nil {
			return MatchResult{Error: err.Error()}
		}
	}

	p.lastSource = source.NewString("input", input)
	p.log.Debug("matching", "bytes", len(input))

	result := parser.Match(p.grammar, p.lastSource, p.log, p.trace)
	return MatchResult{Result: result.Value, Error: result.Error}
}

func (p *Parser) bind() error {
	if err := parser.Bind(p.grammar, p.acts); err != nil {
		return err
	}
	p.bound = true
	return nil
}
