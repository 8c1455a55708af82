package definition_test

import (
	"errors"
	"testing"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/category"
	"github.com/go-utf8lex/utf8lex/definition"
)

func newState(t *testing.T, s string, eof bool) utf8lex.State {
	t.Helper()
	chain := utf8lex.NewChain()
	if _, err := chain.Append([]byte(s), eof); err != nil {
		t.Fatalf("Append: %v", err)
	}
	return utf8lex.NewState(chain)
}

func TestClassCatDigits(t *testing.T) {
	d, err := definition.NewClassCat(category.Nd, 1, -1)
	if err != nil {
		t.Fatalf("NewClassCat: %v", err)
	}
	st := newState(t, "12+3", true)
	next, err := d.Lex(st)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if got := next.Offset(); got != 2 {
		t.Fatalf("matched %d bytes, want 2", got)
	}
}

func TestClassCatRespectsMax(t *testing.T) {
	d, err := definition.NewClassCat(category.Nd, 1, 1)
	if err != nil {
		t.Fatalf("NewClassCat: %v", err)
	}
	st := newState(t, "12", true)
	next, err := d.Lex(st)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if got := next.Offset(); got != 1 {
		t.Fatalf("matched %d bytes, want 1 (max=1)", got)
	}
}

func TestClassCatNoMatch(t *testing.T) {
	d, err := definition.NewClassCat(category.Nd, 1, -1)
	if err != nil {
		t.Fatalf("NewClassCat: %v", err)
	}
	st := newState(t, "abc", true)
	_, err = d.Lex(st)
	if !errors.Is(err, utf8lex.ErrNoMatch) {
		t.Fatalf("Lex error = %v, want ErrNoMatch", err)
	}
}

func TestClassCatMoreWhenBelowMin(t *testing.T) {
	d, err := definition.NewClassCat(category.Nd, 3, -1)
	if err != nil {
		t.Fatalf("NewClassCat: %v", err)
	}
	st := newState(t, "12", false)
	_, err = d.Lex(st)
	if !errors.Is(err, utf8lex.ErrMore) {
		t.Fatalf("Lex error = %v, want ErrMore", err)
	}
}

func TestNewClassCatRejectsBadBounds(t *testing.T) {
	if _, err := definition.NewClassCat(category.Nd, -1, -1); err == nil {
		t.Error("expected error for negative min")
	}
	if _, err := definition.NewClassCat(category.Nd, 3, 1); err == nil {
		t.Error("expected error for max < min")
	}
}
