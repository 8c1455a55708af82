package definition_test

import (
	"errors"
	"testing"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/definition"
)

func TestLiteralExactMatch(t *testing.T) {
	d, err := definition.NewLiteral("===")
	if err != nil {
		t.Fatalf("NewLiteral: %v", err)
	}
	st := newState(t, "===b", true)
	next, err := d.Lex(st)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if got := next.Offset(); got != 3 {
		t.Fatalf("matched %d bytes, want 3", got)
	}
}

func TestLiteralGenericOverBytes(t *testing.T) {
	if _, err := definition.NewLiteral([]byte("+")); err != nil {
		t.Fatalf("NewLiteral([]byte): %v", err)
	}
}

func TestLiteralRejectsEmpty(t *testing.T) {
	_, err := definition.NewLiteral("")
	var lexErr *utf8lex.Error
	if !errors.As(err, &lexErr) || lexErr.Code != utf8lex.EMPTY_LITERAL {
		t.Fatalf("NewLiteral(\"\") error = %v, want EMPTY_LITERAL", err)
	}
}

func TestLiteralPartialNeedsMore(t *testing.T) {
	d, err := definition.NewLiteral("===")
	if err != nil {
		t.Fatalf("NewLiteral: %v", err)
	}
	st := newState(t, "==", false)
	_, err = d.Lex(st)
	if !errors.Is(err, utf8lex.ErrMore) {
		t.Fatalf("Lex error = %v, want ErrMore", err)
	}
}

func TestLiteralMismatch(t *testing.T) {
	d, err := definition.NewLiteral("===")
	if err != nil {
		t.Fatalf("NewLiteral: %v", err)
	}
	st := newState(t, "abc", true)
	_, err = d.Lex(st)
	if !errors.Is(err, utf8lex.ErrNoMatch) {
		t.Fatalf("Lex error = %v, want ErrNoMatch", err)
	}
}
