// Package grammar holds the EBNF description of diary text and tools to
// verify grammars and match text against them.
package grammar

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Source is the diary grammar in EBNF.
//
//go:embed diary.ebnf
var Source string

// Start is the production a whole diary derives from.
const Start = "Document"

// Load parses and verifies the diary grammar.
func Load() (ebnf.Grammar, error) {
	return Check("diary.ebnf", strings.NewReader(Source), Start)
}

// LoadFile parses and verifies a grammar file against start.
func LoadFile(filename, start string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Check(filename, f, start)
}

// Check parses a grammar and, if start is not empty, verifies that every
// production is defined, reachable from start and lexically consistent.
func Check(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	if start != "" {
		if err := ebnf.Verify(g, start); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Errors splits the error lists returned by Parse and Verify.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return []error{err}
	}
	errs := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}

// Productions returns the production names of g in sorted order.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
