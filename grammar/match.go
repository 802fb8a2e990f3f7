package grammar

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

type memoKey struct {
	name   string
	offset int
}

// matcher is a recognizer that follows every alternative, so it needs no
// lookahead. It does not support left recursion.
type matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey][]int
	visiting map[memoKey]bool
}

// Match reports whether production name derives all of input.
func Match(g ebnf.Grammar, name, input string) bool {
	m := &matcher{
		grammar:  g,
		input:    input,
		memo:     make(map[memoKey][]int),
		visiting: make(map[memoKey]bool),
	}
	return slices.Contains(m.name(name, 0), len(input))
}

// match returns the sorted end offsets of every way expr matches at offset.
func (m *matcher) match(expr ebnf.Expression, offset int) []int {
	switch e := expr.(type) {
	case nil:
		return []int{offset}

	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return []int{offset + len(e.String)}
		}
		return nil

	case *ebnf.Range:
		r, size := utf8.DecodeRuneInString(m.input[offset:])
		if size == 0 {
			return nil
		}
		begin, _ := utf8.DecodeRuneInString(e.Begin.String)
		end, _ := utf8.DecodeRuneInString(e.End.String)
		if r >= begin && r <= end {
			return []int{offset + size}
		}
		return nil

	case ebnf.Sequence:
		ends := []int{offset}
		for _, item := range e {
			var next []int
			for _, pos := range ends {
				next = union(next, m.match(item, pos))
			}
			if len(next) == 0 {
				return nil
			}
			ends = next
		}
		return ends

	case ebnf.Alternative:
		var ends []int
		for _, alt := range e {
			ends = union(ends, m.match(alt, offset))
		}
		return ends

	case *ebnf.Repetition:
		ends := []int{offset}
		frontier := []int{offset}
		for len(frontier) > 0 {
			var next []int
			for _, pos := range frontier {
				for _, end := range m.match(e.Body, pos) {
					if !slices.Contains(ends, end) {
						next = union(next, []int{end})
					}
				}
			}
			ends = union(ends, next)
			frontier = next
		}
		return ends

	case *ebnf.Option:
		return union([]int{offset}, m.match(e.Body, offset))

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.name(e.String, offset)
	}
	return nil
}

func (m *matcher) name(name string, offset int) []int {
	key := memoKey{name: name, offset: offset}
	if ends, ok := m.memo[key]; ok {
		return ends
	}
	if m.visiting[key] {
		return nil
	}
	prod, ok := m.grammar[name]
	if !ok {
		return nil
	}
	m.visiting[key] = true
	ends := m.match(prod.Expr, offset)
	delete(m.visiting, key)
	m.memo[key] = ends
	return ends
}

func union(a, b []int) []int {
	for _, v := range b {
		i, found := slices.BinarySearch(a, v)
		if !found {
			a = slices.Insert(a, i, v)
		}
	}
	return a
}
