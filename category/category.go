// Package category implements the Unicode General Category bitmask
// system (spec.md §3, §4.D): process-wide constants, never mutated by
// the lex engine.
//
// Grounded on github.com/clipperhouse/uax29/v2's is/is.go and
// tables_merged.go, which classify runes by testing membership in
// stdlib unicode.RangeTables (and merge them with
// golang.org/x/text/unicode/rangetable.Merge) -- generalized here from a
// handful of named UAX#29 predicates into the full 30-category General
// Category bitmask plus the derived groups spec.md requires.
package category

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Category is a 32-bit bitmask; each base bit corresponds one-to-one with
// a Unicode General Category, plus one extension bit for hard line
// breaks that aren't otherwise assigned Zl/Zp.
type Category uint32

// Base category bits, in Unicode General Category order.
const (
	Lu Category = 1 << iota
	Ll
	Lt
	Lm
	Lo
	Mn
	Mc
	Me
	Nd
	Nl
	No
	Pc
	Pd
	Ps
	Pe
	Pi
	Pf
	Po
	Sm
	Sc
	Sk
	So
	Zs
	Zl
	Zp
	Cc
	Cf
	Cs
	Co
	Cn

	// SepLineExt marks codepoints Unicode lists as hard line breaks but
	// does not assign to Zl/Zp: LF, VT, FF, CR, NEL, LS, PS.
	SepLineExt
)

// Derived groups: fixed ORs of base bits (spec.md §3).
var (
	LETTER     = Lu | Ll | Lt | Lm | Lo
	MARK       = Mn | Mc | Me
	NUMBER     = Nd | Nl | No
	PUNCT      = Pc | Pd | Ps | Pe | Pi | Pf | Po
	SYMBOL     = Sm | Sc | Sk | So
	WHITESPACE = Zs | Zl | Zp | SepLineExt
	OTHER      = Cc | Cf | Cs | Co | Cn
)

// names is used by Name, in the same bit order as the constants above.
var names = []struct {
	bit   Category
	name  string
	ident string
}{
	{Lu, "Lu", "Lu"}, {Ll, "Ll", "Ll"}, {Lt, "Lt", "Lt"}, {Lm, "Lm", "Lm"}, {Lo, "Lo", "Lo"},
	{Mn, "Mn", "Mn"}, {Mc, "Mc", "Mc"}, {Me, "Me", "Me"},
	{Nd, "Nd", "Nd"}, {Nl, "Nl", "Nl"}, {No, "No", "No"},
	{Pc, "Pc", "Pc"}, {Pd, "Pd", "Pd"}, {Ps, "Ps", "Ps"}, {Pe, "Pe", "Pe"}, {Pi, "Pi", "Pi"}, {Pf, "Pf", "Pf"}, {Po, "Po", "Po"},
	{Sm, "Sm", "Sm"}, {Sc, "Sc", "Sc"}, {Sk, "Sk", "Sk"}, {So, "So", "So"},
	{Zs, "Zs", "Zs"}, {Zl, "Zl", "Zl"}, {Zp, "Zp", "Zp"},
	{Cc, "Cc", "Cc"}, {Cf, "Cf", "Cf"}, {Cs, "Cs", "Cs"}, {Co, "Co", "Co"}, {Cn, "Cn", "Cn"},
	{SepLineExt, "SEP_LINE_EXT", "SepLineExt"},
}

// Name returns a human-readable name for mask, e.g. "Lu|Ll" for a
// composite mask, or the name of a single bit.
func Name(mask Category) string {
	if mask == 0 {
		return ""
	}
	out := ""
	for _, n := range names {
		if mask&n.bit != 0 {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	return out
}

// baseTables maps each base General Category bit to the stdlib
// unicode.RangeTable that defines it. Cn (unassigned) has no table of
// its own: a rune is Cn iff it matches none of the others.
var baseTables = map[Category]*unicode.RangeTable{
	Lu: unicode.Lu, Ll: unicode.Ll, Lt: unicode.Lt, Lm: unicode.Lm, Lo: unicode.Lo,
	Mn: unicode.Mn, Mc: unicode.Mc, Me: unicode.Me,
	Nd: unicode.Nd, Nl: unicode.Nl, No: unicode.No,
	Pc: unicode.Pc, Pd: unicode.Pd, Ps: unicode.Ps, Pe: unicode.Pe, Pi: unicode.Pi, Pf: unicode.Pf, Po: unicode.Po,
	Sm: unicode.Sm, Sc: unicode.Sc, Sk: unicode.Sk, So: unicode.So,
	Zs: unicode.Zs, Zl: unicode.Zl, Zp: unicode.Zp,
	Cc: unicode.Cc, Cf: unicode.Cf, Cs: unicode.Cs, Co: unicode.Co,
}

// baseOrder is the order in which baseTables are tested; stable so that
// CategoryOf is deterministic (categories are mutually exclusive in
// practice, but we don't rely on that).
var baseOrder = []Category{
	Lu, Ll, Lt, Lm, Lo,
	Mn, Mc, Me,
	Nd, Nl, No,
	Pc, Pd, Ps, Pe, Pi, Pf, Po,
	Sm, Sc, Sk, So,
	Zs, Zl, Zp,
	Cc, Cf, Cs, Co,
}

// sepLineExtTable is the range of codepoints granted SepLineExt: LF, VT,
// FF, CR, NEL, LS, PS.
var sepLineExtTable = rangetable.New(0x0A, 0x0B, 0x0C, 0x0D, 0x85, 0x2028, 0x2029)

// asciiCache precomputes CategoryOf for the ASCII range, the common case,
// giving a true O(1) lookup there; non-ASCII runes fall back to a
// memoizing cache (RangeTable membership tests are O(log n) in the
// number of ranges, not O(1), but the result never changes, so caching
// makes repeated lookups of the same rune O(1) amortized).
var (
	asciiCache   [128]Category
	asciiOnce    sync.Once
	cacheMu      sync.RWMutex
	nonASCIICache = make(map[rune]Category)
)

func initASCII() {
	for r := rune(0); r < 128; r++ {
		asciiCache[r] = computeCategory(r)
	}
}

// CategoryOf returns the Category bitmask for r: exactly one base bit
// (or Cn, if none match), plus SepLineExt if applicable.
func CategoryOf(r rune) Category {
	if r >= 0 && r < 128 {
		asciiOnce.Do(initASCII)
		return asciiCache[r]
	}

	cacheMu.RLock()
	c, ok := nonASCIICache[r]
	cacheMu.RUnlock()
	if ok {
		return c
	}

	c = computeCategory(r)

	cacheMu.Lock()
	nonASCIICache[r] = c
	cacheMu.Unlock()
	return c
}

func computeCategory(r rune) Category {
	var mask Category
	matched := false
	for _, bit := range baseOrder {
		if unicode.Is(baseTables[bit], r) {
			mask |= bit
			matched = true
			break
		}
	}
	if !matched {
		mask |= Cn
	}
	if unicode.Is(sepLineExtTable, r) {
		mask |= SepLineExt
	}
	return mask
}

// MaskMatchesGroup reports whether x intersects group.
func MaskMatchesGroup(x, group Category) bool {
	return x&group != 0
}

// Find returns the single base-category entry (name, bit) whose bit is
// set in mask, preferring the first in General Category order; it is
// intended for diagnostics, where a single representative name is
// wanted for a (usually single-bit) mask.
func Find(mask Category) (name string, bit Category, ok bool) {
	for _, n := range names {
		if mask&n.bit != 0 {
			return n.name, n.bit, true
		}
	}
	return "", 0, false
}

// Identifier returns the Go identifier for a single base-category bit
// set in mask (e.g. "SepLineExt" for SepLineExt, where Find's display
// name is the non-Go-identifier "SEP_LINE_EXT"). Intended for code
// generation, where the result must be a valid Go expression.
func Identifier(mask Category) (ident string, bit Category, ok bool) {
	for _, n := range names {
		if mask&n.bit != 0 {
			return n.ident, n.bit, true
		}
	}
	return "", 0, false
}
