// Package grapheme reads one extended grapheme cluster at a time from a
// utf8lex.Chain, classifying it and reporting the Location delta it
// contributes (spec.md §4.C).
//
// The continuation rules (GB1-GB13) are adapted directly from
// github.com/clipperhouse/uax29/v2/graphemes/splitfunc.go's splitFunc
// state machine, generalized from scanning a flat []byte to crossing
// utf8lex.Chain buffer boundaries, and narrowed to the "level this library
// supports" spec.md §4.C step 4 calls for: grapheme-extend (Mn/Mc/Me/Cf),
// ZWJ continuation, and regional-indicator pairing, rather than the
// teacher's full Hangul-syllable and prepend handling.
package grapheme

import (
	"unicode/utf8"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/category"
)

// zwj is the zero-width joiner, which continues a grapheme cluster
// across an extended-pictographic sequence (GB11, simplified).
const zwj = rune(0x200D)

// Regional indicator pair range (GB12/GB13).
const riLo, riHi = rune(0x1F1E6), rune(0x1F1FF)

func isRegionalIndicator(r rune) bool {
	return r >= riLo && r <= riHi
}

// extendMask is the set of General Categories treated as grapheme-extend
// continuations, per spec.md §4.C step 4.
const extendMask = category.Mn | category.Mc | category.Me | category.Cf

// Result summarizes one grapheme cluster read.
type Result struct {
	Bytes       int64
	Chars       int64
	IsLineBreak bool
	FirstRune   rune
	Category    category.Category
}

// Read decodes one extended grapheme cluster starting at the given
// absolute byte offset in chain, returning a Result and updating loc in
// place via Location.Accumulate (spec.md §4.C step 6).
//
// It returns utf8lex.ErrMore if more input could change the outcome and
// the chain has not yet reached an EOF-marked buffer, utf8lex.ErrEOF at a
// clean end-of-stream token boundary (no bytes remain and the chain is
// EOF), or a BAD_UTF8 *utf8lex.Error if the leading bytes are malformed.
func Read(chain *utf8lex.Chain, offset int64, loc *utf8lex.Location) (Result, error) {
	r0, size0, more, atEnd, err := decodeRuneAt(chain, offset)
	if err != nil {
		return Result{}, err
	}
	if atEnd {
		return Result{}, utf8lex.ErrEOF
	}
	if more {
		return Result{}, utf8lex.ErrMore
	}

	cat0 := category.CategoryOf(r0)
	totalBytes := int64(size0)
	totalChars := int64(1)
	runeSum := uint64(r0)
	lineBreak := false

	switch {
	case r0 == '\r':
		// GB3: CRLF is a single grapheme, one line, two chars.
		r1, size1, more1, atEnd1, err1 := decodeRuneAt(chain, offset+totalBytes)
		if err1 != nil {
			return Result{}, err1
		}
		if more1 {
			return Result{}, utf8lex.ErrMore
		}
		if !atEnd1 && r1 == '\n' {
			totalBytes += int64(size1)
			totalChars++
			runeSum += uint64(r1)
		}
		lineBreak = true

	case cat0&category.Cc != 0, cat0&category.SepLineExt != 0, cat0&(category.Zl|category.Zp) != 0:
		// GB4/GB5: Controls and other hard line breaks stand alone;
		// nothing extends before or after them.
		lineBreak = cat0&category.SepLineExt != 0 || cat0&(category.Zl|category.Zp) != 0

	default:
		pairedRI := false
		for {
			rN, sizeN, moreN, atEndN, errN := decodeRuneAt(chain, offset+totalBytes)
			if errN != nil {
				return Result{}, errN
			}
			if atEndN {
				break
			}
			if moreN {
				return Result{}, utf8lex.ErrMore
			}
			catN := category.CategoryOf(rN)

			switch {
			case catN&extendMask != 0, rN == zwj:
				totalBytes += int64(sizeN)
				totalChars++
				runeSum += uint64(rN)
				continue
			case !pairedRI && isRegionalIndicator(r0) && isRegionalIndicator(rN):
				totalBytes += int64(sizeN)
				totalChars++
				runeSum += uint64(rN)
				pairedRI = true
				continue
			}
			break
		}
	}

	byteHash, err := sumBytes(chain, offset, totalBytes)
	if err != nil {
		return Result{}, err
	}

	loc.Accumulate(utf8lex.Delta{
		Bytes:        totalBytes,
		Chars:        totalChars,
		IsLineBreak:  lineBreak,
		ByteHash:     byteHash,
		CharHash:     runeSum,
		GraphemeHash: runeSum,
	})

	return Result{
		Bytes:       totalBytes,
		Chars:       totalChars,
		IsLineBreak: lineBreak,
		FirstRune:   r0,
		Category:    cat0,
	}, nil
}

func sumBytes(chain *utf8lex.Chain, offset, n int64) (uint64, error) {
	data, _, err := collectBytes(chain, offset, int(n))
	if err != nil {
		return 0, err
	}
	var sum uint64
	for _, b := range data {
		sum += uint64(b)
	}
	return sum, nil
}

// decodeRuneAt decodes the rune starting at the given absolute offset.
//
//   - more is true if the buffer chain does not yet hold enough bytes to
//     decide, and the chain has not reached an EOF-marked buffer.
//   - atEnd is true if there are no bytes left and the chain has reached
//     an EOF-marked buffer (a clean token boundary).
//   - err is non-nil only for a genuine malformed-UTF8 or internal
//     offset error.
func decodeRuneAt(chain *utf8lex.Chain, offset int64) (r rune, size int, more, atEnd bool, err error) {
	data, hitEOF, lerr := collectBytes(chain, offset, utf8.UTFMax)
	if lerr != nil {
		return 0, 0, false, false, lerr
	}
	if len(data) == 0 {
		if hitEOF {
			return 0, 0, false, true, nil
		}
		return 0, 0, true, false, nil
	}
	if !utf8.FullRune(data) && !hitEOF {
		return 0, 0, true, false, nil
	}
	r, size = utf8.DecodeRune(data)
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, false, false, utf8lex.NewError(utf8lex.BAD_UTF8, "malformed UTF-8 byte sequence")
	}
	return r, size, false, false, nil
}

// collectBytes gathers up to max contiguous bytes from chain starting at
// offset, walking forward across buffer boundaries. hitEOF is true iff
// collection stopped because the chain ran out of bytes at a buffer
// marked IsEOF (a definitive end, not a "could still grow" situation).
func collectBytes(chain *utf8lex.Chain, offset int64, max int) (out []byte, hitEOF bool, err error) {
	b, localOff, lerr := chain.LocateByte(offset)
	if lerr != nil {
		tail := chain.Tail()
		if tail == nil {
			// Nothing has been appended to the chain yet. This is not a
			// genuine offset error: it is indistinguishable from "the
			// chain just hasn't grown that far", the same as landing
			// exactly at a non-EOF tail's end below.
			if offset == 0 {
				return nil, false, nil
			}
			return nil, false, lerr
		}
		tailEnd := tail.Location().At(utf8lex.UnitByte).Start + int64(len(tail.Bytes()))
		if offset == tailEnd {
			if tail.IsEOF() {
				return nil, true, nil
			}
			return nil, false, nil
		}
		return nil, false, lerr
	}

	for b != nil && len(out) < max {
		avail := b.Bytes()[localOff:]
		take := max - len(out)
		if take > len(avail) {
			take = len(avail)
		}
		out = append(out, avail[:take]...)
		if len(out) >= max {
			return out, false, nil
		}
		if b.IsEOF() {
			return out, true, nil
		}
		b = b.Next()
		localOff = 0
	}
	return out, false, nil
}
