package utf8lex

import "fmt"

// MaxChainLength is the hard cap on buffer chain depth, guarding against
// pathological growth (spec.md §3).
//
// Grounded on github.com/clipperhouse/uax29/v2's iterators.Segmenter,
// which tracks pos/advance bookkeeping over a single flat []byte; Chain
// generalizes that into an explicit linked list of separately-arrived
// reads, with the depth cap spec.md §3 requires and the teacher never
// needed (it is always handed its whole input up front, or lets
// bufio.Scanner hide growth).
const MaxChainLength = 256

// Buffer is one node in the chain: an immutable byte window plus the
// four-unit Location of its first byte within the overall stream, plus
// whether it is the last buffer that will ever exist. Only the byte unit
// of that Location counts the bytes of earlier buffers; its char,
// grapheme and line starts are always 0.
type Buffer struct {
	bytes    []byte
	location Location
	isEOF    bool

	prev *Buffer
	next *Buffer
}

// Bytes returns the buffer's byte window.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Location returns the Location of this buffer's first byte within the
// overall stream.
func (b *Buffer) Location() Location { return b.location }

// IsEOF reports whether this is the last buffer of the stream.
func (b *Buffer) IsEOF() bool { return b.isEOF }

// Next returns the following buffer in the chain, or nil.
func (b *Buffer) Next() *Buffer { return b.next }

// Prev returns the preceding buffer in the chain, or nil. Prev links
// exist for diagnostics; lexing only ever walks forward (spec.md §4.B).
func (b *Buffer) Prev() *Buffer { return b.prev }

// Chain is the growable, append-only sequence of Buffers that backs one
// lex session (spec.md: "State owns the current Buffer pointer").
type Chain struct {
	head   *Buffer
	tail   *Buffer
	length int
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Head returns the first buffer in the chain, or nil if empty.
func (c *Chain) Head() *Buffer { return c.head }

// Tail returns the last buffer in the chain, or nil if empty.
func (c *Chain) Tail() *Buffer { return c.tail }

// Len returns the number of buffers currently in the chain.
func (c *Chain) Len() int { return c.length }

// Append adds a new buffer of bytes to the end of the chain. isEOF marks
// whether this is the last buffer that will ever exist. Append fails with
// CHAIN_INSERT if the chain is already at MaxChainLength, or if the
// current tail is already marked EOF (spec.md §4.B).
func (c *Chain) Append(data []byte, isEOF bool) (*Buffer, error) {
	if c.length >= MaxChainLength {
		return nil, NewError(CHAIN_INSERT, fmt.Sprintf("buffer chain already at max length %d", MaxChainLength))
	}
	if c.tail != nil && c.tail.isEOF {
		return nil, NewError(CHAIN_INSERT, "cannot append after an EOF buffer")
	}

	loc := NewLocation()
	if c.tail != nil {
		prevLoc := c.tail.location
		for _, u := range Units() {
			prevUL := prevLoc.At(u)
			start := prevUL.Start + prevUL.Length
			if prevUL.After != Unset {
				start = prevUL.After
			}
			loc[u] = UnitLocation{Start: start, After: Unset}
		}
		// Buffer locations carry no Length, so the byte start is the
		// previous buffer's start plus its byte count.
		loc[UnitByte].Start = prevLoc.At(UnitByte).Start + int64(len(c.tail.bytes))
	}

	b := &Buffer{
		bytes:    data,
		location: loc,
		isEOF:    isEOF,
		prev:     c.tail,
	}
	if c.tail != nil {
		c.tail.next = b
	} else {
		c.head = b
	}
	c.tail = b
	c.length++
	return b, nil
}

// Clear releases all buffers in the chain. It should be called once every
// token referring to them has been consumed.
func (c *Chain) Clear() {
	c.head = nil
	c.tail = nil
	c.length = 0
}

// LocateByte walks the chain forward from head, returning the buffer
// containing the given absolute byte offset and the local offset of that
// byte within it. Absolute offsets must be monotonic non-decreasing over
// a lex session; LocateByte itself does not enforce that, callers do
// (spec.md §4.B).
func (c *Chain) LocateByte(absolute int64) (*Buffer, int, error) {
	for b := c.head; b != nil; b = b.next {
		start := b.location.At(UnitByte).Start
		length := int64(len(b.bytes))
		if absolute >= start && absolute < start+length {
			return b, int(absolute - start), nil
		}
		// Zero-length buffers (e.g. an empty EOF marker) can still be
		// the right answer when absolute lands exactly on their start.
		if length == 0 && absolute == start {
			return b, 0, nil
		}
	}
	return nil, 0, NewError(BAD_OFFSET, fmt.Sprintf("offset %d not found in buffer chain", absolute))
}

// TailBytes returns every byte currently buffered from the given
// absolute offset through the end of the chain, along with whether the
// chain's tail buffer is EOF (i.e. no further bytes will ever arrive).
// Regex matching (spec.md §4.E) needs the whole available window, not
// a pre-sized slice, since it does not know its own match length up
// front.
func (c *Chain) TailBytes(from int64) ([]byte, bool, error) {
	b, localOff, err := c.LocateByte(from)
	if err != nil {
		tail := c.tail
		if tail == nil {
			// Chain is empty: indistinguishable from "hasn't grown that
			// far yet" rather than a genuine bad offset.
			if from == 0 {
				return nil, false, nil
			}
			return nil, false, err
		}
		tailEnd := tail.location.At(UnitByte).Start + int64(len(tail.bytes))
		if from == tailEnd {
			return nil, tail.isEOF, nil
		}
		return nil, false, err
	}

	var out []byte
	isEOF := false
	for b != nil {
		out = append(out, b.bytes[localOff:]...)
		isEOF = b.isEOF
		b = b.next
		localOff = 0
	}
	return out, isEOF, nil
}

// Slice returns a contiguous copy of length bytes starting at the
// absolute byte offset start, walking forward across buffer boundaries
// as needed. It returns BAD_LENGTH if the chain does not hold that many
// bytes at that offset (a programmer error -- callers only slice ranges
// a Matcher has already confirmed matched).
func (c *Chain) Slice(start, length int64) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	b, localOff, err := c.LocateByte(start)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, length)
	for b != nil && int64(len(out)) < length {
		avail := b.bytes[localOff:]
		take := length - int64(len(out))
		if take > int64(len(avail)) {
			take = int64(len(avail))
		}
		out = append(out, avail[:take]...)
		b = b.next
		localOff = 0
	}
	if int64(len(out)) != length {
		return nil, NewError(BAD_LENGTH, fmt.Sprintf("buffer chain holds only %d of %d requested bytes at offset %d", len(out), length, start))
	}
	return out, nil
}
