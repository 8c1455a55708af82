package utf8lex

// Unset is the sentinel value for UnitLocation.After meaning "no reset
// requested"; the next token's Start is simply Start+Length.
const Unset int64 = -1

// UnitLocation is the location bookkeeping for a single Unit: an absolute
// Start (count from stream origin), a Length (count within the current
// token), an optional After reset target applied after the token, and a
// running Hash fingerprint.
//
// Invariant: Length >= 0. After is either Unset or a non-negative reset
// value. When After is Unset, the next token's Start is Start+Length;
// otherwise it is After.
type UnitLocation struct {
	Start  int64
	Length int64
	After  int64
	Hash   uint64
}

// next returns the UnitLocation a following token should start from.
func (ul UnitLocation) next() UnitLocation {
	start := ul.Start + ul.Length
	if ul.After != Unset {
		start = ul.After
	}
	return UnitLocation{Start: start, After: Unset}
}

// Location is the four-unit position of a token (or of the lexer's
// cursor, before a token has been produced).
type Location [int(numUnits)]UnitLocation

// NewLocation returns a Location with all four units starting at zero.
func NewLocation() Location {
	var loc Location
	for _, u := range Units() {
		loc[u] = UnitLocation{Start: 0, Length: 0, After: Unset, Hash: 0}
	}
	return loc
}

// At returns the UnitLocation for the given unit.
func (loc Location) At(u Unit) UnitLocation {
	return loc[u]
}

// Delta is the per-grapheme contribution to a Location: how many bytes,
// chars, graphemes, and lines one grapheme read contributes, along with
// whether it is line-breaking (which resets char/grapheme After to 0)
// and the hash contributions for each unit.
type Delta struct {
	Bytes         int64
	Chars         int64
	IsLineBreak   bool
	ByteHash      uint64
	CharHash      uint64
	GraphemeHash  uint64
}

// Accumulate folds one grapheme's Delta into the current token's Location
// in place. It is the sole mutator of token-in-progress lengths; see
// spec.md §4.A.
func (loc *Location) Accumulate(d Delta) {
	b := &loc[UnitByte]
	b.Length += d.Bytes
	b.Hash += d.ByteHash

	c := &loc[UnitChar]
	c.Length += d.Chars
	c.Hash += d.CharHash

	g := &loc[UnitGrapheme]
	g.Length++
	g.Hash += d.GraphemeHash

	l := &loc[UnitLine]
	if d.IsLineBreak {
		l.Length++
		// Line hash is always zero; see spec.md §4.A.
		c.After = 0
		g.After = 0
	}
}

// FinalizeToken returns the Location the *next* token should start from,
// given the current (just-completed) token's Location. This is
// reset-after, per spec.md §4.A: byte and line After remain unset unless
// explicitly set elsewhere; char/grapheme honor any After set by a
// line-breaking grapheme during Accumulate.
func (loc Location) FinalizeToken() Location {
	var next Location
	for _, u := range Units() {
		next[u] = loc[u].next()
	}
	return next
}
