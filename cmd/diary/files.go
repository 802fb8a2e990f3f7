package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/dhamidi/diary/diary"
	"github.com/dhamidi/diary/parser"
)

// parsed is the outcome for one input file.
type parsed struct {
	name   string
	source string
	doc    *diary.Document
	err    error
}

func readSource(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func parseOne(name string, vocab *diary.Vocabulary) parsed {
	res := parsed{name: name}
	res.source, res.err = readSource(name)
	if res.err != nil {
		return res
	}
	file := name
	if name == "-" {
		file = "<stdin>"
	}
	p := parser.New(parser.WithFile(file), parser.WithVocabulary(vocab))
	res.doc, res.err = p.Document(res.source)
	return res
}

// parseAll parses every file concurrently and returns the results in
// argument order. No names means standard input, which may be named at most
// once.
func parseAll(names []string, vocab *diary.Vocabulary) ([]parsed, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	if stdin := slices.IndexFunc(names, func(n string) bool { return n == "-" }); stdin >= 0 &&
		slices.Contains(names[stdin+1:], "-") {
		return nil, fmt.Errorf("standard input (-) given more than once")
	}
	results := make([]parsed, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = parseOne(name, vocab)
		}()
	}
	wg.Wait()
	return results, nil
}

func countFailures(results []parsed) int {
	n := 0
	for _, r := range results {
		if r.err != nil {
			n++
		}
	}
	return n
}

func failureError(failed, total int) error {
	if total == 1 {
		return fmt.Errorf("diary has errors")
	}
	return fmt.Errorf("%d of %d diaries have errors", failed, total)
}
