package parser

import (
	"unicode"
	"unicode/utf8"
)

func isHSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordRune(r rune) bool {
	return r != 0 && !isHSpace(r) && r != '\n' && r != '\r'
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_' || r == '-'
}

// scanWhile consumes the longest prefix whose runes satisfy pred.
func scanWhile(in input, pred func(rune) bool) (string, input) {
	rest := in.rest()
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !pred(r) {
			break
		}
		n += size
	}
	if n == 0 {
		return "", in
	}
	return rest[:n], in.advance(n)
}

func skipHSpace(in input) input {
	_, out := scanWhile(in, isHSpace)
	return out
}

func digits(in input) (string, input) {
	return scanWhile(in, isDigit)
}

func letters(in input) (string, input) {
	return scanWhile(in, unicode.IsLetter)
}

func word(in input) (string, input) {
	return scanWhile(in, isWordRune)
}

// identifier scans a letter followed by letters, digits, '_' or '-'.
func identifier(in input) (string, input) {
	if !unicode.IsLetter(in.peek()) {
		return "", in
	}
	return scanWhile(in, isIdentRune)
}

// newline consumes "\n" or "\r\n".
func newline(in input) (input, bool) {
	switch {
	case in.peekByte(0) == '\n':
		return in.advance(1), true
	case in.peekByte(0) == '\r' && in.peekByte(1) == '\n':
		return in.advance(2), true
	}
	return in, false
}

// atLineEnd reports whether only horizontal space remains on the line.
func atLineEnd(in input) bool {
	in = skipHSpace(in)
	if in.eof() {
		return true
	}
	_, ok := newline(in)
	return ok
}

// endLine consumes trailing space, the line terminator and any following
// blank lines. It fails without consuming if other text remains on the line.
func endLine(in input, expected string) (input, *Error) {
	cur := skipHSpace(in)
	if cur.eof() {
		return cur, nil
	}
	next, ok := newline(cur)
	if !ok {
		return in, lexical(cur, expected)
	}
	return skipBlank(next), nil
}

// skipBlank skips whitespace-only lines and the indentation of the next
// non-blank line.
func skipBlank(in input) input {
	cur := in
	for {
		cur = skipHSpace(cur)
		next, ok := newline(cur)
		if !ok {
			return cur
		}
		cur = next
	}
}

// startsNumber reports whether a numeric literal begins at in: an optional
// sign, then a digit or a decimal point followed by a digit.
func startsNumber(in input) bool {
	i := 0
	if c := in.peekByte(0); c == '+' || c == '-' {
		i = 1
	}
	c := in.peekByte(i)
	if c >= '0' && c <= '9' {
		return true
	}
	d := in.peekByte(i + 1)
	return c == '.' && d >= '0' && d <= '9'
}
