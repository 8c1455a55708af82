package utf8lex

// State owns the current Buffer Chain pointer and the four-unit Location
// cursor for the next token to produce. Exactly one State drives one lex
// session (spec.md §3).
//
// State is a small value type, deliberately cheap to copy: matcher
// attempts each work from their own copy (spec.md §5 "each receives a
// logical snapshot of the cursor"), and only the lex engine's winning
// candidate is kept as the session's new State.
type State struct {
	Chain  *Chain
	Cursor Location
}

// NewState returns a State at the start of chain, with all four units at
// zero.
func NewState(chain *Chain) State {
	return State{Chain: chain, Cursor: NewLocation()}
}

// Offset returns the absolute byte offset this State's cursor is
// currently at -- the position the next grapheme read (or byte compare)
// should start from.
func (st State) Offset() int64 {
	ul := st.Cursor[UnitByte]
	return ul.Start + ul.Length
}

// AtEOF reports whether the State's current offset is at or past the end
// of a chain whose tail buffer is marked EOF -- i.e. there is truly
// nothing left to read.
func (st State) AtEOF() bool {
	tail := st.Chain.Tail()
	if tail == nil || !tail.IsEOF() {
		return false
	}
	end := tail.location.At(UnitByte).Start + int64(len(tail.bytes))
	return st.Offset() >= end
}

// Commit returns the State that should follow once a token ending at
// this State's cursor has been emitted: the FinalizeToken reset is
// applied, per spec.md §4.A.
func (st State) Commit() State {
	return State{Chain: st.Chain, Cursor: st.Cursor.FinalizeToken()}
}

// Bytes returns the raw bytes this State's cursor currently spans (i.e.
// the in-progress token's matched bytes so far).
func (st State) Bytes() ([]byte, error) {
	bl := st.Cursor[UnitByte]
	return st.Chain.Slice(bl.Start, bl.Length)
}

// Settings records the lex engine's default bounds: MaxChainLength for
// Chain growth (spec.md §3), and MaxDefinitionGraphDepth for the bounded
// DFS used to detect cycles when resolving Multi definitions (spec.md
// §4.F, UTF8LEX_DEFINITIONS_DB_LENGTH_MAX). Nothing in this module reads
// a Settings value: Chain.Append always enforces the MaxChainLength
// constant, and Multi.Resolve takes its depth bound as an argument.
type Settings struct {
	MaxChainLength          int
	MaxDefinitionGraphDepth int
}

// DefaultSettings returns the spec's default bounds.
func DefaultSettings() Settings {
	return Settings{
		MaxChainLength:          MaxChainLength,
		MaxDefinitionGraphDepth: 4096,
	}
}
