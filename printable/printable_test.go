package printable_test

import (
	"errors"
	"testing"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/printable"
)

func TestEscapeFitsExactly(t *testing.T) {
	input := "\t\n\"\\\x01"
	got, err := printable.Escape(input, 16)
	if err != nil {
		t.Fatalf("Escape: %v", err)
	}
	want := `\t\n\"\\\x01`
	if got != want {
		t.Fatalf("Escape = %q, want %q", got, want)
	}
}

func TestEscapeReturnsMoreWhenTooSmall(t *testing.T) {
	input := "\t\n\"\\\x01"
	got, err := printable.Escape(input, 6)
	if !errors.Is(err, utf8lex.ErrMore) {
		t.Fatalf("Escape error = %v, want ErrMore", err)
	}
	// 6 bytes fits "\t" + "\n" + "\"" exactly (2+2+2); the next escape
	// ("\\", 2 bytes) would overflow, so it must not appear truncated.
	want := `\t\n\"`
	if got != want {
		t.Fatalf("Escape = %q, want %q", got, want)
	}
}

func TestEscapePlainBytesPassThrough(t *testing.T) {
	got, err := printable.Escape("abc", 10)
	if err != nil {
		t.Fatalf("Escape: %v", err)
	}
	if got != "abc" {
		t.Fatalf("Escape = %q, want %q", got, "abc")
	}
}

func TestEscapeGenericOverBytes(t *testing.T) {
	got, err := printable.Escape([]byte("a\nb"), 10)
	if err != nil {
		t.Fatalf("Escape: %v", err)
	}
	if got != `a\nb` {
		t.Fatalf("Escape = %q, want %q", got, `a\nb`)
	}
}
