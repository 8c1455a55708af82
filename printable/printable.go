// Package printable escapes arbitrary bytes into a bounded, printable
// string for diagnostics (spec.md §4.I), generic over []byte or
// string per the stringish.Interface shape the rest of this module
// uses for its generic leaf functions. Bytes 0x80 and above are copied
// unchanged, so UTF-8 input stays UTF-8 rather than becoming ASCII.
//
// Apart from that type constraint, the escaping loop is hand-rolled on
// the standard library: no example
// in this codebase's dependency surface offers a bounded-capacity
// escape writer that stops cleanly before splitting an escape sequence
// mid-way (strconv.Quote and fmt's %q always produce the whole
// string), so there is nothing to ground the core loop on but a
// hand-rolled byte scan.
package printable

import (
	"fmt"

	"github.com/clipperhouse/stringish"

	"github.com/go-utf8lex/utf8lex"
)

var simpleEscapes = map[byte]string{
	'\a': `\a`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\v': `\v`,
	'\\': `\\`,
	'"':  `\"`,
}

// Escape renders value as a printable string no longer than capacity
// bytes, escaping '\a \b \f \n \r \t \v \\ "' with their standard
// backslash forms, every other control byte (below 0x20, and 0x7F) as
// "\xHH", and copying all remaining bytes unchanged. It
// returns the longest prefix of the full escaped form that fits
// without truncating an escape sequence, and utf8lex.ErrMore if
// capacity was insufficient to hold the whole expansion.
func Escape[T stringish.Interface](value T, capacity int) (string, error) {
	out := make([]byte, 0, capacity)
	truncated := false

	for i := 0; i < len(value); i++ {
		b := value[i]
		var piece string
		if esc, ok := simpleEscapes[b]; ok {
			piece = esc
		} else if b < 0x20 || b == 0x7f {
			piece = fmt.Sprintf(`\x%02X`, b)
		} else {
			piece = string([]byte{b})
		}
		if len(out)+len(piece) > capacity {
			truncated = true
			break
		}
		out = append(out, piece...)
	}

	if truncated {
		return string(out), utf8lex.ErrMore
	}
	return string(out), nil
}
