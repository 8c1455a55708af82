package streaming_test

import (
	"io"
	"strings"
	"testing"

	"github.com/go-utf8lex/utf8lex/category"
	"github.com/go-utf8lex/utf8lex/definition"
	"github.com/go-utf8lex/utf8lex/rule"
	"github.com/go-utf8lex/utf8lex/streaming"
)

func arithmeticRules(t *testing.T) *rule.List {
	t.Helper()
	number, err := definition.NewClassCat(category.Nd, 1, -1)
	if err != nil {
		t.Fatalf("NewClassCat: %v", err)
	}
	id, err := definition.NewRegex(`[_\p{L}][_\p{L}\p{N}]*`)
	if err != nil {
		t.Fatalf("NewRegex: %v", err)
	}
	space, err := definition.NewClassCat(category.WHITESPACE, 1, -1)
	if err != nil {
		t.Fatalf("NewClassCat: %v", err)
	}
	plus, err := definition.NewLiteral("+")
	if err != nil {
		t.Fatalf("NewLiteral: %v", err)
	}

	l := rule.NewList()
	l.Add("NUMBER", number, "")
	l.Add("ID", id, "")
	l.Add("SPACE", space, "")
	l.Add("PLUS", plus, "")
	return l
}

func TestScannerReadsAllTokens(t *testing.T) {
	rules := arithmeticRules(t)
	sc := streaming.NewScanner(strings.NewReader("x 1+2"), rules)

	var names []string
	for sc.Scan() {
		names = append(names, sc.Token().RuleName)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	want := []string{"ID", "SPACE", "NUMBER", "PLUS", "NUMBER"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestScannerAcrossSmallReads(t *testing.T) {
	rules := arithmeticRules(t)
	data := []byte("x 1+2")
	sc := streaming.NewScanner(&oneByteAtATimeReader{data: data}, rules)

	var names []string
	for sc.Scan() {
		names = append(names, sc.Token().RuleName)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	want := []string{"ID", "SPACE", "NUMBER", "PLUS", "NUMBER"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
}

// oneByteAtATimeReader dribbles bytes out one at a time, forcing the
// scanner through its MORE/refill path repeatedly.
type oneByteAtATimeReader struct {
	data []byte
	pos  int
}

func (r *oneByteAtATimeReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:r.pos+1])
	r.pos += n
	return n, nil
}
