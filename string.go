package utf8lex

// String is an opaque, immutable byte window: a capacity, a length, and
// the bytes themselves. UTF-8 well-formedness is assumed at construction
// but only actually validated per-grapheme during reading (spec.md §3).
type String struct {
	bytes []byte
}

// NewString wraps b as an immutable String. The caller must not mutate b
// afterwards.
func NewString(b []byte) String {
	return String{bytes: b}
}

// Length returns the number of bytes in the window.
func (s String) Length() int {
	return len(s.bytes)
}

// Capacity returns the capacity of the underlying storage.
func (s String) Capacity() int {
	return cap(s.bytes)
}

// Bytes returns the raw bytes of the window. Callers must treat the
// result as read-only.
func (s String) Bytes() []byte {
	return s.bytes
}

// Slice returns the sub-window [from:to), sharing the underlying array.
func (s String) Slice(from, to int) String {
	return String{bytes: s.bytes[from:to]}
}
