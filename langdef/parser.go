// Package langdef compiles the textual grammar description language into a
// grammar.Grammar matcher graph, and validates the result before it is ever
// used to match input.
package langdef

import (
	"github.com/ava12/peg/errors"
	"github.com/ava12/peg/grammar"
	"github.com/ava12/peg/lexer"
	"github.com/ava12/peg/source"
)

// ParseString compiles a grammar description held in a string.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.NewString(name, content))
}

// Parse compiles a grammar description, runs the full validation pass, and
// returns the resulting Grammar, or a configuration error naming the first
// problem found.
func Parse(src *source.Source) (*grammar.Grammar, error) {
	p := &parser{lex: lexer.New(src), src: src, g: grammar.NewGrammar()}
	p.parseGrammar()

	if msg := p.lex.Message(); msg != "" {
		return nil, errors.New(errors.SyntaxErrors, msg, nil)
	}
	if p.err != nil {
		return nil, p.err
	}

	if err := Validate(p.g); err != nil {
		return nil, err
	}

	return p.g, nil
}

type parser struct {
	lex *lexer.Lexer
	src *source.Source
	g   *grammar.Grammar
	err error
}

func (p *parser) fail(reason string, t lexer.Token) {
	p.lex.Error(reason, t)
}

func (p *parser) failed() bool {
	return p.lex.Err() != nil || p.err != nil
}

// parseGrammar := ('whitespace' REGEX)? rule+
func (p *parser) parseGrammar() {
	first := p.lex.Next()

	if first.Kind == lexer.SYMBOL && first.Value == "whitespace" {
		reTok := p.lex.Next()
		if reTok.Kind != lexer.REGEX {
			p.fail("expected a regular expression after 'whitespace'", reTok)
			return
		}
		re, err := grammar.NewRegex(reTok.Value)
		if err != nil {
			p.fail("invalid whitespace regular expression: "+err.Error(), reTok)
			return
		}
		p.g.WhitespaceRegex = re.Re
		first = p.lex.Next()
	}

	if first.Kind == lexer.EOF {
		p.fail("empty grammar", first)
		return
	}

	p.lex.PushBack(first)

	for {
		t := p.lex.Peek()
		if t.Kind == lexer.EOF {
			break
		}
		p.parseRule()
		if p.failed() {
			return
		}
	}

	if len(p.g.Rules) == 0 {
		p.fail("empty grammar", first)
	}
}

// rule := SYMBOL DESCRIPTION? '.'? '=' choice
func (p *parser) parseRule() {
	nameTok := p.lex.Next()
	if nameTok.Kind != lexer.SYMBOL {
		p.fail("expected a rule name", nameTok)
		return
	}

	rule := p.g.Rule(nameTok.Value)
	if rule.Body != nil {
		p.fail("rule '"+nameTok.Value+"' already defined", nameTok)
		return
	}

	descTok := p.lex.Peek()
	if descTok.Kind == lexer.DESCRIPTION {
		p.lex.Next()
		rule.Description = descTok.Value
	}

	rule.SkipWhitespace = true
	dotTok := p.lex.Peek()
	if dotTok.Is('.') {
		p.lex.Next()
		rule.SkipWhitespace = false
	}

	eqTok := p.lex.Next()
	if !eqTok.Is('=') {
		p.fail("expected '='", eqTok)
		return
	}

	body := p.parseChoice(rule)
	if p.failed() {
		return
	}
	rule.Body = body
}

// choice := sequence ('|' sequence)*
func (p *parser) parseChoice(rule *grammar.Rule) grammar.Matcher {
	first := p.parseSequence(rule)
	if p.failed() {
		return nil
	}

	alts := []grammar.Matcher{first}
	for {
		t := p.lex.Peek()
		if !t.Is('|') {
			break
		}
		p.lex.Next()
		next := p.parseSequence(rule)
		if p.failed() {
			return nil
		}
		alts = append(alts, next)
	}

	if len(alts) == 1 {
		return alts[0]
	}
	return &grammar.Choice{Alternatives: alts}
}

// sequence := item+ ('%' SYMBOL)?
func (p *parser) parseSequence(rule *grammar.Rule) *grammar.Sequence {
	seq := &grammar.Sequence{}

	for {
		item, ok := p.tryParseItem(rule)
		if !ok {
			break
		}
		seq.Items = append(seq.Items, item)
	}

	if p.failed() {
		return nil
	}

	if len(seq.Items) == 0 {
		p.fail("expected at least one item in sequence", p.lex.Peek())
		return nil
	}

	t := p.lex.Peek()
	if t.Is('%') {
		p.lex.Next()
		nameTok := p.lex.Next()
		if nameTok.Kind != lexer.SYMBOL {
			p.fail("expected a replacement function name after '%'", nameTok)
			return nil
		}
		seq.ReplacementName = nameTok.Value
	}

	return seq
}

// item := ('!' | '-')? matcher ('*' | '+' | '?')? (':' SYMBOL)?
func (p *parser) tryParseItem(rule *grammar.Rule) (grammar.Item, bool) {
	t := p.lex.Peek()

	forceKeep, forceSkip := false, false
	if t.Is('!') {
		p.lex.Next()
		forceKeep = true
	} else if t.Is('-') {
		p.lex.Next()
		forceSkip = true
	}

	m, baseKeep, ok := p.tryParseMatcher(rule)
	if !ok {
		if forceKeep || forceSkip {
			p.fail("expected a matcher after '!' or '-'", p.lex.Peek())
		}
		return grammar.Item{}, false
	}
	if p.failed() {
		return grammar.Item{}, false
	}

	quant := p.lex.Peek()
	switch {
	case quant.Is('*'):
		p.lex.Next()
		m = &grammar.Repeat{Base: m, ZeroOK: true, MultipleOK: true}
	case quant.Is('+'):
		p.lex.Next()
		m = &grammar.Repeat{Base: m, ZeroOK: false, MultipleOK: true}
	case quant.Is('?'):
		p.lex.Next()
		m = &grammar.Repeat{Base: m, ZeroOK: true, MultipleOK: false}
	}

	colon := p.lex.Peek()
	if colon.Is(':') {
		p.lex.Next()
		nameTok := p.lex.Next()
		if nameTok.Kind != lexer.SYMBOL {
			p.fail("expected a predicate name after ':'", nameTok)
			return grammar.Item{}, false
		}
		m = &grammar.Predicate{Base: m, PredicateName: nameTok.Value}
	}

	keep := baseKeep
	if forceKeep {
		keep = true
	} else if forceSkip {
		keep = false
	}

	return grammar.Item{Matcher: m, Keep: keep}, true
}

// matcher := TEXT | REGEX | SYMBOL | '(' choice ')'
func (p *parser) tryParseMatcher(rule *grammar.Rule) (m grammar.Matcher, keep bool, ok bool) {
	t := p.lex.Peek()

	switch {
	case t.Kind == lexer.TEXT:
		p.lex.Next()
		txt := &grammar.Text{Literal: t.Value, SkipWS: rule.SkipWhitespace}
		return txt, txt.DefaultKeep(), true

	case t.Kind == lexer.REGEX:
		p.lex.Next()
		re, err := grammar.NewRegex(t.Value)
		if err != nil {
			p.fail("invalid regular expression: "+err.Error(), t)
			return nil, false, false
		}
		re.SkipWS = rule.SkipWhitespace
		return re, re.DefaultKeep(), true

	case t.Kind == lexer.SYMBOL:
		p.lex.Next()
		// A SYMBOL followed by a description, '.' or '=' is the head of the
		// next rule, not a reference: leave it for parseRule.
		after := p.lex.Peek()
		if after.Kind == lexer.DESCRIPTION || after.Is('.') || after.Is('=') {
			p.lex.PushBack(t)
			return nil, false, false
		}
		ref := p.g.Rule(t.Value)
		return ref.SymbolNode, ref.SymbolNode.DefaultKeep(), true

	case t.Is('('):
		p.lex.Next()
		inner := p.parseChoice(rule)
		if p.failed() {
			return nil, false, false
		}
		closeTok := p.lex.Next()
		if !closeTok.Is(')') {
			p.fail("expected ')'", closeTok)
			return nil, false, false
		}
		return inner, true, true

	default:
		return nil, false, false
	}
}
