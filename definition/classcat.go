package definition

import (
	"errors"
	"fmt"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/category"
	"github.com/go-utf8lex/utf8lex/grapheme"
)

// ClassCat matches a run of graphemes whose leading rune falls in Mask
// (spec.md §4.E step 1), repeated between Min and Max times inclusive.
// Max of -1 means unbounded.
type ClassCat struct {
	Mask category.Category
	Min  int
	Max  int
}

// NewClassCat validates Min/Max and returns a ClassCat matcher.
func NewClassCat(mask category.Category, min, max int) (*ClassCat, error) {
	if min < 0 {
		return nil, utf8lex.NewError(utf8lex.BAD_MIN, fmt.Sprintf("class min must be >= 0, got %d", min))
	}
	if max < -1 {
		return nil, utf8lex.NewError(utf8lex.BAD_MAX, fmt.Sprintf("class max must be -1 or >= 0, got %d", max))
	}
	if max != -1 && max < min {
		return nil, utf8lex.NewError(utf8lex.BAD_MAX, fmt.Sprintf("class max %d is less than min %d", max, min))
	}
	return &ClassCat{Mask: mask, Min: min, Max: max}, nil
}

// Lex greedily consumes graphemes whose category matches d.Mask, up to
// d.Max occurrences, requiring at least d.Min.
func (d *ClassCat) Lex(st utf8lex.State) (utf8lex.State, error) {
	cur := st
	count := 0
	for d.Max < 0 || count < d.Max {
		scratch := cur.Cursor
		res, err := grapheme.Read(cur.Chain, cur.Offset(), &scratch)
		if err != nil {
			if errors.Is(err, utf8lex.ErrEOF) {
				break
			}
			if errors.Is(err, utf8lex.ErrMore) {
				if count < d.Min {
					return utf8lex.State{}, utf8lex.ErrMore
				}
				break
			}
			return utf8lex.State{}, err
		}
		if !category.MaskMatchesGroup(res.Category, d.Mask) {
			break
		}
		cur.Cursor = scratch
		count++
	}
	if count < d.Min {
		return utf8lex.State{}, utf8lex.ErrNoMatch
	}
	return cur, nil
}
