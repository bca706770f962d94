package parser

import (
	"github.com/hashicorp/go-hclog"

	"github.com/ava12/peg/grammar"
	"github.com/ava12/peg/source"
)

// Result is the outcome of one Match call: exactly one of Value and Error
// is meaningful, per spec.md §7 (no partial results).
type Result struct {
	Value grammar.Value
	Error string
}

// Match runs g's start rule against src's full content, per spec.md §4.6:
// a single recursive descent, then a verification that the cursor reached
// end of input. log is consulted only when trace is true, and only for
// per-rule diagnostic logging (see grammar.State.Tracer) - it never
// affects the outcome.
func Match(g *grammar.Grammar, src *source.Source, log hclog.Logger, trace bool) Result {
	st := grammar.NewState(src.Content(), g.WhitespaceRegex)
	if trace {
		st.Tracer = func(rule string, pos int, ok bool) {
			log.Trace("matched rule", "rule", rule, "pos", pos, "ok", ok)
		}
	}

	formatLine := func(message string, pos int) string {
		return source.FormatError(message, src, pos)
	}

	start := g.Start()
	if start == nil {
		return Result{Error: formatLine("expected at least one rule", 0)}
	}

	val, ok := start.SymbolNode.Match(st, nil)
	if ok && st.Cursor >= len(src.Content()) {
		return Result{Value: val}
	}
	if ok {
		st.Fail(st.Cursor, "end of input")
	}

	return Result{Error: st.Failure(formatLine)}
}
