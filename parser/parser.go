// Package parser reads food diary text into diary values.
//
// Every entry point either returns a complete value or a single *Error
// describing the failure that got furthest into the text.
package parser

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/diary/diary"
)

type Option func(*Parser)

// WithFile names the source in reported positions.
func WithFile(name string) Option {
	return func(p *Parser) { p.file = name }
}

// WithVocabulary replaces the default meal, unit and macro tables.
func WithVocabulary(v *diary.Vocabulary) Option {
	return func(p *Parser) {
		if v != nil {
			p.vocab = v
		}
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// Parser holds the settings of a parse. It keeps no state between calls
// and may be shared between goroutines.
type Parser struct {
	file  string
	vocab *diary.Vocabulary
	log   commonlog.Logger
}

var defaultVocabulary = diary.DefaultVocabulary()

func New(opts ...Option) *Parser {
	p := &Parser{
		vocab: defaultVocabulary,
		log:   commonlog.GetLogger("diary.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Document parses a whole diary.
func (p *Parser) Document(text string) (*diary.Document, error) {
	doc, err := run(p, text, "document", documentRule)
	if err != nil {
		return nil, err
	}
	p.log.Debugf("parsed %s: %d days", p.name(), doc.Days.Len())
	return doc, nil
}

// Quantity parses a single quantity such as "80.5g".
func (p *Parser) Quantity(text string) (diary.Quantity, error) {
	return run(p, text, "quantity", complete("end of input after quantity", named("quantity", quantity)))
}

// Date parses a single date.
func (p *Parser) Date(text string) (diary.Date, error) {
	return run(p, text, "date", complete("end of input after date", named("date", date)))
}

// Entry parses a single food entry line.
func (p *Parser) Entry(text string) (diary.FoodEntry, error) {
	return run(p, text, "food entry", complete("end of input after food entry", entryItem))
}

func (p *Parser) name() string {
	if p.file == "" {
		return "<input>"
	}
	return p.file
}

func run[T any](p *Parser, text, what string, r rule[T]) (T, error) {
	var zero T
	in := newInput(text, p.file, p.vocab)
	if !utf8.ValidString(text) {
		at := in.advance(invalidUTF8(text))
		err := failAt(KindLexical, at, at, "valid UTF-8 text", "").within(what)
		p.log.Debugf("%s: %s", p.name(), err)
		return zero, err
	}
	res := r(in)
	if res.failed() {
		p.log.Debugf("%s: %s", p.name(), res.err)
		return zero, res.err
	}
	return res.value, nil
}

func invalidUTF8(text string) int {
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				return i
			}
		}
	}
	return len(text)
}

// ParseDocument reads all of r and parses it as a diary.
func ParseDocument(r io.Reader, opts ...Option) (*diary.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading diary: %w", err)
	}
	return New(opts...).Document(string(data))
}

func ParseString(text string, opts ...Option) (*diary.Document, error) {
	return New(opts...).Document(text)
}

func ParseQuantity(text string, opts ...Option) (diary.Quantity, error) {
	return New(opts...).Quantity(text)
}

func ParseDate(text string, opts ...Option) (diary.Date, error) {
	return New(opts...).Date(text)
}

func ParseEntry(text string, opts ...Option) (diary.FoodEntry, error) {
	return New(opts...).Entry(text)
}
