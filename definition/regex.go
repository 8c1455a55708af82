package definition

import (
	"regexp"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/grapheme"
)

// Regex matches the longest anchored match of a regular expression
// against the bytes currently available at st's cursor (spec.md §4.E
// step 3). Grounded on github.com/go-llvm/kythe-llvmbzlgen's
// cmakelib/lexer/rules package, which anchors each rule's pattern at
// the start of the remaining input and calls re.Longest() for POSIX
// longest-match semantics rather than Go regexp's default
// leftmost-first.
type Regex struct {
	Source string
	re     *regexp.Regexp
}

// NewRegex compiles pattern, anchored to the start of the input and
// set to longest-match mode.
func NewRegex(pattern string) (*Regex, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, utf8lex.NewError(utf8lex.BAD_REGEX, err.Error())
	}
	re.Longest()
	return &Regex{Source: pattern, re: re}, nil
}

// Lex runs the compiled regex against every byte currently buffered
// from st's cursor onward. If the match runs to the end of what's
// buffered and the chain is not yet EOF, more input could still extend
// it, so Lex reports utf8lex.ErrMore rather than committing early. Lex
// also reports utf8lex.ErrMore when nothing matches at the cursor and the
// chain is not yet EOF: it does not tell a prefix that more input could
// complete apart from input that can never match.
func (d *Regex) Lex(st utf8lex.State) (utf8lex.State, error) {
	data, isEOF, err := st.Chain.TailBytes(st.Offset())
	if err != nil {
		return utf8lex.State{}, err
	}

	loc := d.re.FindIndex(data)
	if loc == nil || loc[0] != 0 {
		if !isEOF {
			return utf8lex.State{}, utf8lex.ErrMore
		}
		return utf8lex.State{}, utf8lex.ErrNoMatch
	}
	matchLen := loc[1]
	if matchLen == len(data) && !isEOF {
		return utf8lex.State{}, utf8lex.ErrMore
	}

	// Re-walk the matched range grapheme by grapheme so the resulting
	// State's four-unit cursor stays consistent with every other
	// matcher (spec.md §4.C step 6), rather than only advancing bytes.
	cur := st
	var consumed int64
	for consumed < int64(matchLen) {
		scratch := cur.Cursor
		res, rerr := grapheme.Read(cur.Chain, cur.Offset(), &scratch)
		if rerr != nil {
			return utf8lex.State{}, rerr
		}
		cur.Cursor = scratch
		consumed += res.Bytes
	}
	if consumed != int64(matchLen) {
		return utf8lex.State{}, utf8lex.NewError(utf8lex.BAD_LENGTH, "regex match did not align to a grapheme boundary")
	}
	return cur, nil
}
