package definition

import (
	"errors"
	"fmt"

	"github.com/go-utf8lex/utf8lex"
)

// Kind distinguishes the two ways a Multi combines its References
// (spec.md §4.F).
type Kind int

const (
	// SEQUENCE requires every Reference to match in order.
	SEQUENCE Kind = iota
	// OR tries each Reference in declaration order and takes the first
	// that fully matches -- ties are broken by order, never by length.
	OR
)

func (k Kind) String() string {
	switch k {
	case SEQUENCE:
		return "SEQUENCE"
	case OR:
		return "OR"
	default:
		return "UNKNOWN"
	}
}

// Reference names another definition by name, with a repetition range
// (Min, Max inclusive; Max of -1 means unbounded). It starts out
// unresolved: target is nil until Resolve binds it.
type Reference struct {
	Name string
	Min  int
	Max  int

	target Matcher
}

// Multi is a composite definition: a SEQUENCE or OR over an ordered
// list of References, resolved against a Scope (spec.md §4.F).
//
// Grounded on the forward-reference grammar shape of
// github.com/go-llvm/kythe-llvmbzlgen's cmakelib/lexer/rules, which
// also separates "declare a rule referring to others by name" from
// "bind those names to concrete matchers" as two passes.
type Multi struct {
	Kind       Kind
	References []*Reference

	scope    *Scope
	resolved bool
}

// NewSequence returns an empty SEQUENCE Multi resolved against scope.
func NewSequence(scope *Scope) *Multi {
	return &Multi{Kind: SEQUENCE, scope: scope}
}

// NewAlternation returns an empty OR Multi resolved against scope.
func NewAlternation(scope *Scope) *Multi {
	return &Multi{Kind: OR, scope: scope}
}

// AddReference appends a Reference to name, with repetition bounds
// min/max, to m. It invalidates any prior resolution.
func (m *Multi) AddReference(name string, min, max int) (*Reference, error) {
	if min < 0 {
		return nil, utf8lex.NewError(utf8lex.BAD_MIN, fmt.Sprintf("reference min must be >= 0, got %d", min))
	}
	if max < -1 {
		return nil, utf8lex.NewError(utf8lex.BAD_MAX, fmt.Sprintf("reference max must be -1 or >= 0, got %d", max))
	}
	if max != -1 && max < min {
		return nil, utf8lex.NewError(utf8lex.BAD_MAX, fmt.Sprintf("reference max %d is less than min %d", max, min))
	}
	ref := &Reference{Name: name, Min: min, Max: max}
	m.References = append(m.References, ref)
	m.resolved = false
	return ref, nil
}

// Resolve binds every Reference in m (and transitively, any Multi
// definitions they point to) to a concrete Matcher, per spec.md §4.F:
// inner scope first, then outer. Resolve is idempotent -- calling it
// again on an already-resolved Multi is a no-op (testable property 5).
//
// It fails with NOT_FOUND if a name cannot be found in scope, or
// INFINITE_LOOP if the reference graph's depth exceeds maxDepth, the
// bounded cycle check spec.md §4.F calls for.
func (m *Multi) Resolve(maxDepth int) error {
	return m.resolve(0, maxDepth)
}

func (m *Multi) resolve(depth int, maxDepth int) error {
	if m.resolved {
		return nil
	}
	if depth > maxDepth {
		return utf8lex.NewError(utf8lex.INFINITE_LOOP, fmt.Sprintf("definition graph exceeds max depth %d", maxDepth))
	}
	for _, ref := range m.References {
		target, ok := m.scope.Lookup(ref.Name)
		if !ok {
			return utf8lex.NewError(utf8lex.NOT_FOUND, fmt.Sprintf("definition %q not found", ref.Name))
		}
		ref.target = target
		if child, ok := target.(*Multi); ok && !child.resolved {
			if err := child.resolve(depth+1, maxDepth); err != nil {
				return err
			}
		}
	}
	m.resolved = true
	return nil
}

// Lex dispatches to the sequence or alternation matcher for m.Kind.
func (m *Multi) Lex(st utf8lex.State) (utf8lex.State, error) {
	switch m.Kind {
	case SEQUENCE:
		return m.lexSequence(st)
	case OR:
		return m.lexAlternation(st)
	default:
		return utf8lex.State{}, utf8lex.NewError(utf8lex.STATE, "multi definition has unknown kind")
	}
}

func (m *Multi) lexSequence(st utf8lex.State) (utf8lex.State, error) {
	cur := st
	for _, ref := range m.References {
		count := 0
		for ref.Max < 0 || count < ref.Max {
			next, err := ref.target.Lex(cur)
			if err != nil {
				if errors.Is(err, utf8lex.ErrMore) {
					if count < ref.Min {
						return utf8lex.State{}, utf8lex.ErrMore
					}
					break
				}
				if errors.Is(err, utf8lex.ErrNoMatch) || errors.Is(err, utf8lex.ErrEOF) {
					break
				}
				return utf8lex.State{}, err
			}
			cur = next
			count++
		}
		if count < ref.Min {
			return utf8lex.State{}, utf8lex.ErrNoMatch
		}
	}
	return cur, nil
}

func (m *Multi) lexAlternation(st utf8lex.State) (utf8lex.State, error) {
	sawMore := false
	for _, ref := range m.References {
		next, err := ref.target.Lex(st)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, utf8lex.ErrMore) {
			sawMore = true
			continue
		}
		if errors.Is(err, utf8lex.ErrNoMatch) || errors.Is(err, utf8lex.ErrEOF) {
			continue
		}
		return utf8lex.State{}, err
	}
	if sawMore {
		return utf8lex.State{}, utf8lex.ErrMore
	}
	return utf8lex.State{}, utf8lex.ErrNoMatch
}
