// Package rule holds the ordered Rule list (spec.md §4.G) and the lex
// engine that arbitrates across it (spec.md §4.H).
//
// Grounded on github.com/go-llvm/kythe-llvmbzlgen's cmakelib/lexer
// package, whose lexer.go walks an ordered []*rules.Rule, running each
// rule's regex and keeping the longest match -- this package
// generalizes that same "run every rule, keep the best" arbitration
// over the broader Matcher contract (ClassCat/Literal/Regex/Multi),
// rather than regex alone.
package rule

import (
	"errors"
	"fmt"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/definition"
)

// Rule pairs a Definition with a name and an action-code string,
// ordered for priority (spec.md §3 "Rule"). ID is assigned by
// insertion order starting at 0 and never renumbered.
type Rule struct {
	ID         int
	Name       string
	Definition definition.Matcher
	Action     string
}

// List is the ordered, append-only sequence of Rules a lex session
// arbitrates over (spec.md §4.G). IDs are stable; List does not
// support removal.
type List struct {
	rules []*Rule
}

// NewList returns an empty rule list.
func NewList() *List {
	return &List{}
}

// Add appends a new Rule bound to def, returning it with its assigned
// ID.
func (l *List) Add(name string, def definition.Matcher, action string) *Rule {
	r := &Rule{ID: len(l.rules), Name: name, Definition: def, Action: action}
	l.rules = append(l.rules, r)
	return r
}

// Rules returns the rules in declaration order. Callers must not
// mutate the returned slice.
func (l *List) Rules() []*Rule {
	return l.rules
}

// FindByName performs a linear scan for the rule named name.
func (l *List) FindByName(name string) (*Rule, error) {
	for _, r := range l.rules {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, utf8lex.NewError(utf8lex.NOT_FOUND, fmt.Sprintf("no rule named %q", name))
}

// FindByID performs a linear scan for the rule with the given ID.
func (l *List) FindByID(id int) (*Rule, error) {
	for _, r := range l.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, utf8lex.NewError(utf8lex.NOT_FOUND, fmt.Sprintf("no rule with id %d", id))
}

// candidate holds one rule's attempt, tagged with its outcome so
// Lex's arbitration pass (spec.md §4.H step 3) can classify it without
// re-running the matcher.
type candidate struct {
	rule *Rule
	next utf8lex.State
	err  error
}

// Lex runs every rule in l against a logical snapshot of st's cursor,
// and returns the Token for the longest full match, breaking ties by
// earliest rule order (spec.md §4.H). It advances and returns the
// committed State alongside the Token.
//
// Errors returned are the flow signals utf8lex.ErrMore, utf8lex.ErrEOF,
// utf8lex.ErrNoMatch, or a propagated *utf8lex.Error from a faulting
// matcher.
func Lex(st utf8lex.State, l *List) (utf8lex.Token, utf8lex.State, error) {
	candidates := make([]candidate, len(l.rules))
	anyMatched := false
	anyMore := false

	for i, r := range l.rules {
		next, err := r.Definition.Lex(st)
		candidates[i] = candidate{rule: r, next: next, err: err}
		switch {
		case err == nil:
			anyMatched = true
		case errors.Is(err, utf8lex.ErrMore):
			anyMore = true
		case errors.Is(err, utf8lex.ErrNoMatch), errors.Is(err, utf8lex.ErrEOF):
			// Not a match; nothing to record.
		default:
			return utf8lex.Token{}, utf8lex.State{}, err
		}
	}

	// A rule that could still extend its match given more input always
	// takes priority over a rule that has already completed: committing
	// the shorter match now would pick a winner before longest-match
	// arbitration has seen everything a longer rule might yet consume
	// (spec.md §4.H, the MORE contract; testable property 4/7). This
	// holds even when another rule has already fully matched.
	if anyMore && !st.AtEOF() {
		return utf8lex.Token{}, utf8lex.State{}, utf8lex.ErrMore
	}

	if !anyMatched {
		if st.AtEOF() {
			return utf8lex.Token{}, utf8lex.State{}, utf8lex.ErrEOF
		}
		return utf8lex.Token{}, utf8lex.State{}, utf8lex.NewErrorAt(utf8lex.NO_MATCH, "no rule matched", st.Cursor)
	}

	var winner *candidate
	for i := range candidates {
		c := &candidates[i]
		if c.err != nil {
			continue
		}
		if winner == nil || c.next.Offset() > winner.next.Offset() {
			winner = c
		}
	}

	matched, err := winner.next.Bytes()
	if err != nil {
		return utf8lex.Token{}, utf8lex.State{}, err
	}
	tok := utf8lex.Token{
		RuleID:   winner.rule.ID,
		RuleName: winner.rule.Name,
		Text:     utf8lex.NewString(matched),
		Location: winner.next.Cursor,
	}
	committed := winner.next.Commit()
	return tok, committed, nil
}
