package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/diary/diary"
)

// Position is a location in the diary text. Offset is a byte offset; Line
// and Column are 1-based, Column counting runes.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// env is shared, read-only state of one parse.
type env struct {
	text  string
	vocab *diary.Vocabulary
}

// input is the cursor threaded through every rule. It is a value: rules
// return a new input instead of moving a shared one.
type input struct {
	env *env
	pos Position
}

func newInput(text, file string, vocab *diary.Vocabulary) input {
	return input{
		env: &env{text: text, vocab: vocab},
		pos: Position{File: file, Offset: 0, Line: 1, Column: 1},
	}
}

func (in input) rest() string {
	return in.env.text[in.pos.Offset:]
}

func (in input) eof() bool {
	return in.pos.Offset >= len(in.env.text)
}

func (in input) peek() rune {
	if in.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(in.rest())
	return r
}

func (in input) peekByte(n int) byte {
	if in.pos.Offset+n >= len(in.env.text) {
		return 0
	}
	return in.env.text[in.pos.Offset+n]
}

// advance consumes n bytes, updating line and column.
func (in input) advance(n int) input {
	text := in.env.text
	end := in.pos.Offset + n
	if end > len(text) {
		end = len(text)
	}
	pos := in.pos
	for pos.Offset < end {
		r, size := utf8.DecodeRuneInString(text[pos.Offset:])
		pos.Offset += size
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	in.pos = pos
	return in
}

// text returns the source between in and a later cursor.
func (in input) text(to input) string {
	return in.env.text[in.pos.Offset:to.pos.Offset]
}
