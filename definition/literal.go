package definition

import (
	"bytes"
	"errors"

	"github.com/clipperhouse/stringish"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/grapheme"
)

// Literal matches one exact, fixed run of bytes (spec.md §4.E step 2).
// The matched bytes are walked grapheme-by-grapheme so the Location the
// caller accumulates stays consistent with every other matcher, rather
// than being a raw byte compare.
type Literal struct {
	value []byte
}

// NewLiteral builds a Literal from value, generic over []byte or
// string per github.com/clipperhouse/stringish's Interface constraint
// (the same generic shape the teacher uses for its split functions).
// An empty literal is rejected: it would match zero bytes everywhere
// and never terminate a sequence.
func NewLiteral[T stringish.Interface](value T) (*Literal, error) {
	if len(value) == 0 {
		return nil, utf8lex.NewError(utf8lex.EMPTY_LITERAL, "literal definitions must not be empty")
	}
	return &Literal{value: toBytes(value)}, nil
}

func toBytes[T stringish.Interface](v T) []byte {
	b := make([]byte, len(v))
	for i := 0; i < len(v); i++ {
		b[i] = v[i]
	}
	return b
}

// Lex compares the chain's bytes at st's cursor against d.value one
// grapheme cluster at a time, succeeding only on an exact full-length
// match.
func (d *Literal) Lex(st utf8lex.State) (utf8lex.State, error) {
	cur := st
	pos := 0
	for pos < len(d.value) {
		scratch := cur.Cursor
		offset := cur.Offset()
		res, err := grapheme.Read(cur.Chain, offset, &scratch)
		if err != nil {
			if errors.Is(err, utf8lex.ErrEOF) {
				return utf8lex.State{}, utf8lex.ErrNoMatch
			}
			if errors.Is(err, utf8lex.ErrMore) {
				return utf8lex.State{}, utf8lex.ErrMore
			}
			return utf8lex.State{}, err
		}

		chunk, err := cur.Chain.Slice(offset, res.Bytes)
		if err != nil {
			return utf8lex.State{}, err
		}
		if pos+len(chunk) > len(d.value) || !bytes.Equal(chunk, d.value[pos:pos+len(chunk)]) {
			return utf8lex.State{}, utf8lex.ErrNoMatch
		}
		pos += len(chunk)
		cur.Cursor = scratch
	}
	return cur, nil
}
