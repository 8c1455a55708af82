package utf8lex

import "fmt"

// Code is a stable, numerically ordered error code. The numeric order is
// part of the contract (spec.md §6): tests and logs may depend on it, so
// new codes must only ever be appended.
type Code int

const (
	OK Code = iota
	EOF
	MORE
	NO_MATCH
	NULL_POINTER
	CHAIN_INSERT
	CAT
	PATTERN_TYPE
	EMPTY_LITERAL
	REGEX
	UNIT
	INFINITE_LOOP
	BAD_LENGTH
	BAD_OFFSET
	BAD_START
	BAD_MIN
	BAD_MAX
	BAD_REGEX
	BAD_UTF8
	BAD_ERROR
	BAD_AFTER
	BAD_HASH
	NOT_FOUND
	STATE
)

var codeNames = [...]string{
	"OK", "EOF", "MORE", "NO_MATCH", "NULL_POINTER", "CHAIN_INSERT", "CAT",
	"PATTERN_TYPE", "EMPTY_LITERAL", "REGEX", "UNIT", "INFINITE_LOOP",
	"BAD_LENGTH", "BAD_OFFSET", "BAD_START", "BAD_MIN", "BAD_MAX",
	"BAD_REGEX", "BAD_UTF8", "BAD_ERROR", "BAD_AFTER", "BAD_HASH",
	"NOT_FOUND", "STATE",
}

// String returns the stable name of the code.
func (c Code) String() string {
	if int(c) < 0 || int(c) >= len(codeNames) {
		return "UNKNOWN"
	}
	return codeNames[c]
}

// Error pairs a stable Code with a diagnostic message and, where
// available, the Location at which it occurred. EOF/MORE/NO_MATCH/OK are
// flow signals, not really errors; see spec.md §7. Callers that need to
// branch on flow signals should use errors.Is against ErrEOF/ErrMore/
// ErrNoMatch rather than inspecting Code directly, since those sentinels
// are what Lex and the Matcher contract actually return.
type Error struct {
	Code     Code
	Message  string
	Location *Location
}

func (e *Error) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("utf8lex: %s: %s (at byte %d)", e.Code, e.Message, e.Location[UnitByte].Start)
	}
	return fmt.Sprintf("utf8lex: %s: %s", e.Code, e.Message)
}

// Is lets errors.Is match a flow-signal sentinel by Code, so a NO_MATCH
// error that carries a Location still satisfies errors.Is(err, ErrNoMatch).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || (t != ErrMore && t != ErrNoMatch && t != ErrEOF) {
		return false
	}
	return e.Code == t.Code
}

// NewError builds an *Error with no location attached (construction and
// resolution errors, per spec.md §7, never have a stream cursor yet).
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorAt builds an *Error with a Location snapshot attached (stream
// errors, per spec.md §7).
func NewErrorAt(code Code, message string, loc Location) *Error {
	l := loc
	return &Error{Code: code, Message: message, Location: &l}
}

// Flow signals. These are not constructed via NewError; they are
// singleton sentinels so callers can compare with errors.Is.
var (
	// ErrMore means insufficient input to decide; the caller should
	// append more bytes to the buffer chain and retry.
	ErrMore = &Error{Code: MORE, Message: "need more input"}
	// ErrNoMatch means no rule matched at the current cursor.
	ErrNoMatch = &Error{Code: NO_MATCH, Message: "no rule matched"}
	// ErrEOF means lexing reached a clean end at a token boundary.
	ErrEOF = &Error{Code: EOF, Message: "end of input"}
)
