// Package streaming wraps the core lex engine in a bufio.Scanner-style
// API over an io.Reader, handling the MORE contract (spec.md §4.H) by
// reading more bytes and appending them to the buffer chain whenever
// the engine asks for them.
//
// Grounded on github.com/clipperhouse/uax29/v2's own NewTokenizer (a
// bufio.NewReaderSize(r, 64*1024) wrapped in a Scan/Text/Err loop);
// this package keeps that same read-ahead size and call shape, but
// drives rule.Lex/utf8lex.Chain.Append instead of a rune-at-a-time word
// boundary scan.
package streaming

import (
	"errors"
	"io"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/rule"
)

// readAheadSize is the chunk size requested from the reader on each
// refill, matching the teacher's NewReaderSize(r, 64*1024).
const readAheadSize = 64 * 1024

// Scanner reads Tokens from an io.Reader, appending new Buffers to the
// chain as the lex engine reports utf8lex.ErrMore. Use NewScanner to
// construct one, then call Scan in a loop until it returns false.
type Scanner struct {
	r     io.Reader
	rules *rule.List

	chain *utf8lex.Chain
	state utf8lex.State

	tok utf8lex.Token
	err error
}

// NewScanner returns a Scanner that lexes r against rules.
func NewScanner(r io.Reader, rules *rule.List) *Scanner {
	chain := utf8lex.NewChain()
	return &Scanner{
		r:     r,
		rules: rules,
		chain: chain,
		state: utf8lex.NewState(chain),
	}
}

// Scan advances to the next Token, returning true if one was produced.
// It returns false at a clean EOF or on error; call Err to
// distinguish the two.
func (sc *Scanner) Scan() bool {
	if sc.err != nil {
		return false
	}
	for {
		tok, next, err := rule.Lex(sc.state, sc.rules)
		if err == nil {
			sc.tok = tok
			sc.state = next
			return true
		}
		if errors.Is(err, utf8lex.ErrEOF) {
			sc.err = io.EOF
			return false
		}
		if !errors.Is(err, utf8lex.ErrMore) {
			sc.err = err
			return false
		}
		if refillErr := sc.refill(); refillErr != nil {
			sc.err = refillErr
			return false
		}
	}
}

// refill reads up to readAheadSize bytes from the underlying reader and
// appends them (marking EOF when the reader is exhausted).
func (sc *Scanner) refill() error {
	buf := make([]byte, readAheadSize)
	n, err := sc.r.Read(buf)
	if n > 0 {
		if _, appendErr := sc.chain.Append(buf[:n], false); appendErr != nil {
			return appendErr
		}
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			if _, appendErr := sc.chain.Append(nil, true); appendErr != nil {
				return appendErr
			}
			return nil
		}
		return err
	}
	return nil
}

// Token returns the most recently scanned Token.
func (sc *Scanner) Token() utf8lex.Token {
	return sc.tok
}

// Err returns the first non-EOF error encountered, or nil.
func (sc *Scanner) Err() error {
	if errors.Is(sc.err, io.EOF) {
		return nil
	}
	return sc.err
}
