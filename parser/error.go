package parser

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// KindLexical: an expected token class is absent.
	KindLexical ErrorKind = iota
	// KindStructural: a grouping that must be non-empty is empty.
	KindStructural
	// KindSemantic: well-formed text with an invalid value.
	KindSemantic
)

func (k ErrorKind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindSemantic:
		return "semantic"
	default:
		return "lexical"
	}
}

// Error is a failed parse. Context lists the enclosing rules, innermost
// first.
type Error struct {
	Kind     ErrorKind
	Position Position
	Expected string
	Detail   string
	Context  []string

	// Note is the failure of another reading of the same text, such as a
	// meal header line read as a food entry instead.
	Note *Error

	// reach is the furthest offset examined before failing; it ranks
	// competing failures.
	reach int
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s error: expected %s", e.Position, e.Kind, e.Expected)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Context) > 0 {
		fmt.Fprintf(&b, " (in %s)", strings.Join(e.Context, " < "))
	}
	if e.Note != nil {
		b.WriteString("; note: ")
		b.WriteString(e.Note.Error())
	}
	return b.String()
}

// In reports whether rule is on the context stack.
func (e *Error) In(rule string) bool {
	for _, c := range e.Context {
		if c == rule {
			return true
		}
	}
	return false
}

func (e *Error) within(rule string) *Error {
	if e == nil {
		return nil
	}
	c := *e
	c.Context = make([]string, 0, len(e.Context)+1)
	c.Context = append(c.Context, e.Context...)
	c.Context = append(c.Context, rule)
	return &c
}

func failAt(kind ErrorKind, at input, reach input, expected, detail string) *Error {
	return &Error{
		Kind:     kind,
		Position: at.pos,
		Expected: expected,
		Detail:   detail,
		reach:    reach.pos.Offset,
	}
}

func lexical(at input, expected string) *Error {
	return failAt(KindLexical, at, at, expected, "")
}

// deeper picks the failure that got furthest. At equal reach a semantic
// failure beats a structural one, which beats a lexical one; after that the
// first argument wins.
func deeper(a, b *Error) *Error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.reach != a.reach:
		if b.reach > a.reach {
			return b
		}
		return a
	case b.Kind > a.Kind:
		return b
	default:
		return a
	}
}
