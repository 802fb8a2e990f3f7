package parser

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/dhamidi/diary/diary"
)

var ten = big.NewInt(10)

// decimalLiteral scans [sign] digits [. digits] or [sign] . digits and
// builds the value digit by digit, never through a float.
func decimalLiteral(expected string) rule[decimal.Decimal] {
	return func(in input) result[decimal.Decimal] {
		cur := in
		negative := false
		if c := cur.peekByte(0); c == '+' || c == '-' {
			negative = c == '-'
			cur = cur.advance(1)
		}
		whole, cur := digits(cur)
		var frac string
		if cur.peekByte(0) == '.' {
			if f, after := digits(cur.advance(1)); f != "" {
				frac, cur = f, after
			}
		}
		if whole == "" && frac == "" {
			return failure[decimal.Decimal](in, lexical(in, expected))
		}

		coefficient := new(big.Int)
		digit := new(big.Int)
		for _, c := range whole + frac {
			coefficient.Mul(coefficient, ten)
			coefficient.Add(coefficient, digit.SetInt64(int64(c-'0')))
		}
		if negative {
			coefficient.Neg(coefficient)
		}
		return success(decimal.NewFromBigInt(coefficient, -int32(len(frac))), cur, nil)
	}
}

func quantity(in input) result[diary.Quantity] {
	num := decimalLiteral("numeric quantity")(in)
	if num.failed() {
		return failure[diary.Quantity](in, num.err)
	}
	if num.value.IsNegative() {
		return failure[diary.Quantity](in, failAt(KindSemantic, in, num.rest,
			"non-negative quantity", fmt.Sprintf("%s is negative", in.text(num.rest))))
	}
	unit := alt(gluedUnit, spacedUnit, noUnit)(num.rest)
	if unit.failed() {
		return failure[diary.Quantity](in, unit.err)
	}
	return success(diary.Quantity{Amount: num.value, Unit: unit.value}, unit.rest, unit.hint)
}

// gluedUnit matches a unit written directly after the number, as in "80g".
// Letters that are not a known unit are an error there.
func gluedUnit(in input) result[diary.Unit] {
	tok, cur := letters(in)
	if tok == "" {
		return failure[diary.Unit](in, lexical(in, "unit"))
	}
	u, ok := in.env.vocab.Unit(tok)
	if !ok {
		return failure[diary.Unit](in, failAt(KindLexical, in, cur, "unit", fmt.Sprintf("unknown unit %q", tok)))
	}
	return success(u, cur, nil)
}

// spacedUnit matches a unit separated from the number by whitespace, as in
// "80 g". Only known units followed by a word boundary qualify.
func spacedUnit(in input) result[diary.Unit] {
	start := skipHSpace(in)
	if start.pos.Offset == in.pos.Offset {
		return failure[diary.Unit](in, lexical(in, "unit"))
	}
	tok, cur := letters(start)
	if tok == "" || !(atLineEnd(cur) || isHSpace(cur.peek())) {
		return failure[diary.Unit](in, lexical(start, "unit"))
	}
	u, ok := in.env.vocab.Unit(tok)
	if !ok {
		return failure[diary.Unit](in, lexical(start, "unit"))
	}
	return success(u, cur, nil)
}

func noUnit(in input) result[diary.Unit] {
	return success(diary.NoUnit, in, nil)
}
