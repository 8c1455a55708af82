// Package definition implements the matcher contract of spec.md §4.E/F:
// ClassCat, Literal and Regex as leaf matchers, and Multi (SEQUENCE/OR)
// as a composite over named References, with two-phase resolution.
//
// Grounded on github.com/clipperhouse/uax29/v2's split-function family
// (graphemes, words, sentences all implement the same "decide a
// boundary from a []byte window" shape this package's Matcher
// generalizes into "decide a match from a utf8lex.State"), and on
// github.com/go-llvm/kythe-llvmbzlgen's cmakelib/lexer/rules package for
// the regex-as-definition and longest-match arbitration idiom.
package definition

import "github.com/go-utf8lex/utf8lex"

// Matcher is the common contract every definition type satisfies
// (spec.md §4.E). Lex attempts a match starting at st's cursor and
// returns either:
//
//   - the State advanced past the match, nil error, on success;
//   - utf8lex.ErrNoMatch if the input at st's cursor definitely cannot
//     match;
//   - utf8lex.ErrMore if more input could still change the outcome and
//     the chain has not reached an EOF-marked buffer;
//   - any other *utf8lex.Error for a genuine construction or stream
//     fault (BAD_UTF8, BAD_LENGTH, ...).
//
// Implementations must treat st as a read-only snapshot: st.Cursor
// already reflects bytes matched so far by an enclosing Multi, and Lex
// only ever extends it, never rewinds behind st.Offset().
type Matcher interface {
	Lex(st utf8lex.State) (utf8lex.State, error)
}

// Scope resolves definition names to their Matcher, chaining an inner
// (child) scope in front of an outer one. Multi definitions look up
// their References in their own scope first, then the enclosing one,
// matching spec.md §4.F step 1: "inner lists first, then the toplevel
// definitions list".
type Scope struct {
	inner map[string]Matcher
	outer *Scope
}

// NewScope returns an empty scope chained in front of outer (which may
// be nil for the toplevel scope).
func NewScope(outer *Scope) *Scope {
	return &Scope{inner: make(map[string]Matcher), outer: outer}
}

// Define binds name to d in this scope, shadowing any same-named
// definition in an outer scope.
func (s *Scope) Define(name string, d Matcher) {
	s.inner[name] = d
}

// Lookup searches this scope and then its outer chain for name.
func (s *Scope) Lookup(name string) (Matcher, bool) {
	for sc := s; sc != nil; sc = sc.outer {
		if d, ok := sc.inner[name]; ok {
			return d, true
		}
	}
	return nil, false
}
