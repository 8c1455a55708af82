package definition_test

import (
	"errors"
	"testing"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/category"
	"github.com/go-utf8lex/utf8lex/definition"
)

// TestMultiAlternationAndSequence builds the grammar from the "multi
// definition alternation" scenario: OPERATOR = EQUALS3 | EQUALS | PLUS
// | MINUS, OPERAND = NUMBER | ID, DECLARATION = ID SPACE ID, with
// EXPRESSION = DECLARATION SPACE OPERATOR SPACE OPERAND so the spaces in
// the input are consumed, and checks that "foo bar + 7" lexes as one
// EXPRESSION token covering the full input.
func TestMultiAlternationAndSequence(t *testing.T) {
	number, err := definition.NewClassCat(category.Nd, 1, -1)
	if err != nil {
		t.Fatalf("NewClassCat(Nd): %v", err)
	}
	id, err := definition.NewRegex(`[_\p{L}][_\p{L}\p{N}]*`)
	if err != nil {
		t.Fatalf("NewRegex(id): %v", err)
	}
	space, err := definition.NewClassCat(category.WHITESPACE, 1, -1)
	if err != nil {
		t.Fatalf("NewClassCat(space): %v", err)
	}
	equals3, err := definition.NewLiteral("===")
	if err != nil {
		t.Fatalf("NewLiteral(===): %v", err)
	}
	equals, err := definition.NewLiteral("=")
	if err != nil {
		t.Fatalf("NewLiteral(=): %v", err)
	}
	plus, err := definition.NewLiteral("+")
	if err != nil {
		t.Fatalf("NewLiteral(+): %v", err)
	}
	minus, err := definition.NewLiteral("-")
	if err != nil {
		t.Fatalf("NewLiteral(-): %v", err)
	}

	top := definition.NewScope(nil)
	top.Define("NUMBER", number)
	top.Define("ID", id)
	top.Define("SPACE", space)
	top.Define("EQUALS3", equals3)
	top.Define("EQUALS", equals)
	top.Define("PLUS", plus)
	top.Define("MINUS", minus)

	operator := definition.NewAlternation(top)
	for _, name := range []string{"EQUALS3", "EQUALS", "PLUS", "MINUS"} {
		if _, err := operator.AddReference(name, 1, 1); err != nil {
			t.Fatalf("AddReference(%s): %v", name, err)
		}
	}
	top.Define("OPERATOR", operator)

	operand := definition.NewAlternation(top)
	for _, name := range []string{"NUMBER", "ID"} {
		if _, err := operand.AddReference(name, 1, 1); err != nil {
			t.Fatalf("AddReference(%s): %v", name, err)
		}
	}
	top.Define("OPERAND", operand)

	declaration := definition.NewSequence(top)
	for _, name := range []string{"ID", "SPACE", "ID"} {
		if _, err := declaration.AddReference(name, 1, 1); err != nil {
			t.Fatalf("AddReference(%s): %v", name, err)
		}
	}
	top.Define("DECLARATION", declaration)

	expression := definition.NewSequence(top)
	for _, name := range []string{"DECLARATION", "SPACE", "OPERATOR", "SPACE", "OPERAND"} {
		if _, err := expression.AddReference(name, 1, 1); err != nil {
			t.Fatalf("AddReference(%s): %v", name, err)
		}
	}

	if err := expression.Resolve(64); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Resolve must be idempotent.
	if err := expression.Resolve(64); err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	input := "foo bar + 7"
	st := newState(t, input, true)
	next, err := expression.Lex(st)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if got := next.Offset(); got != int64(len(input)) {
		t.Fatalf("matched %d bytes, want %d (full input)", got, len(input))
	}
}

// TestMultiAlternationOrderNotLength verifies OR picks the first
// alternative that fully matches, even when declaration order does not
// correspond to match length.
func TestMultiAlternationOrderNotLength(t *testing.T) {
	short, err := definition.NewLiteral("a")
	if err != nil {
		t.Fatalf("NewLiteral: %v", err)
	}
	long, err := definition.NewLiteral("ab")
	if err != nil {
		t.Fatalf("NewLiteral: %v", err)
	}

	scope := definition.NewScope(nil)
	scope.Define("SHORT", short)
	scope.Define("LONG", long)

	alt := definition.NewAlternation(scope)
	if _, err := alt.AddReference("SHORT", 1, 1); err != nil {
		t.Fatalf("AddReference: %v", err)
	}
	if _, err := alt.AddReference("LONG", 1, 1); err != nil {
		t.Fatalf("AddReference: %v", err)
	}
	if err := alt.Resolve(16); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	st := newState(t, "ab", true)
	next, err := alt.Lex(st)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if got := next.Offset(); got != 1 {
		t.Fatalf("matched %d bytes, want 1 (SHORT wins by order)", got)
	}
}

func TestMultiResolveNotFound(t *testing.T) {
	scope := definition.NewScope(nil)
	seq := definition.NewSequence(scope)
	if _, err := seq.AddReference("MISSING", 1, 1); err != nil {
		t.Fatalf("AddReference: %v", err)
	}
	err := seq.Resolve(16)
	var lexErr *utf8lex.Error
	if !errors.As(err, &lexErr) || lexErr.Code != utf8lex.NOT_FOUND {
		t.Fatalf("Resolve error = %v, want NOT_FOUND", err)
	}
}

func TestMultiResolveDetectsInfiniteLoop(t *testing.T) {
	scope := definition.NewScope(nil)
	a := definition.NewSequence(scope)
	b := definition.NewSequence(scope)
	scope.Define("A", a)
	scope.Define("B", b)
	if _, err := a.AddReference("B", 1, 1); err != nil {
		t.Fatalf("AddReference: %v", err)
	}
	if _, err := b.AddReference("A", 1, 1); err != nil {
		t.Fatalf("AddReference: %v", err)
	}

	err := a.Resolve(8)
	var lexErr *utf8lex.Error
	if !errors.As(err, &lexErr) || lexErr.Code != utf8lex.INFINITE_LOOP {
		t.Fatalf("Resolve error = %v, want INFINITE_LOOP", err)
	}
}
