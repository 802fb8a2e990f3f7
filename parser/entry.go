package parser

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dhamidi/diary/diary"
)

// foodEntry parses "<name> <quantity> [key=value ...]". The first word
// always belongs to the name; the name ends before the first later word
// that starts a number.
func foodEntry(in input) result[diary.FoodEntry] {
	start := skipHSpace(in)
	first, cur := word(start)
	if first == "" {
		return failure[diary.FoodEntry](in, lexical(start, "food name"))
	}
	nameEnd := cur
	for {
		next := skipHSpace(cur)
		if next.pos.Offset == cur.pos.Offset {
			// only a line end or the end of input stops a word
			return failure[diary.FoodEntry](in, failAt(KindLexical, next, next, "numeric quantity",
				fmt.Sprintf("no quantity after %q", start.text(nameEnd))))
		}
		if startsNumber(next) {
			cur = next
			break
		}
		_, cur = word(next)
		if cur.pos.Offset == next.pos.Offset {
			return failure[diary.FoodEntry](in, failAt(KindLexical, next, next, "numeric quantity",
				fmt.Sprintf("no quantity after %q", start.text(nameEnd))))
		}
		nameEnd = cur
	}
	name := start.text(nameEnd)

	q := named("quantity", quantity)(cur)
	if q.failed() {
		return failure[diary.FoodEntry](in, q.err)
	}
	hint := q.hint
	cur = q.rest

	var overrides diary.Overrides
	for !atLineEnd(cur) {
		if !isHSpace(cur.peek()) {
			return failure[diary.FoodEntry](in, deeper(lexical(cur, "whitespace, key=value override or end of line"), hint))
		}
		ov := named("override", override)(skipHSpace(cur))
		if ov.failed() {
			return failure[diary.FoodEntry](in, cause(ov, hint))
		}
		if _, dup := overrides[ov.value.kind]; dup {
			return failure[diary.FoodEntry](in, failAt(KindSemantic, ov.value.at, ov.rest, "unique override key",
				fmt.Sprintf("duplicate override key %q", ov.value.kind)))
		}
		if overrides == nil {
			overrides = make(diary.Overrides)
		}
		overrides[ov.value.kind] = ov.value.amount
		cur = ov.rest
	}

	rest, err := endLine(cur, "end of line")
	if err != nil {
		return failure[diary.FoodEntry](in, err)
	}
	return success(diary.FoodEntry{
		Name:      name,
		Quantity:  q.value,
		Overrides: overrides,
	}, rest, hint)
}

type macroValue struct {
	kind   diary.MacroKind
	amount decimal.Decimal
	at     input
}

// override parses key=value with key from the macro vocabulary.
func override(in input) result[macroValue] {
	key, cur := identifier(in)
	if key == "" || cur.peekByte(0) != '=' {
		found, _ := word(in)
		return failure[macroValue](in, failAt(KindLexical, in, cur, "key=value override",
			fmt.Sprintf("found %q", found)))
	}
	kind, ok := in.env.vocab.Macro(key)
	if !ok {
		return failure[macroValue](in, failAt(KindLexical, in, cur, "macro kind",
			fmt.Sprintf("unknown override key %q", key)))
	}
	val := decimalLiteral("numeric override value")(cur.advance(1))
	if val.failed() {
		return failure[macroValue](in, val.err)
	}
	if !atLineEnd(val.rest) && !isHSpace(val.rest.peek()) {
		return failure[macroValue](in, lexical(val.rest, "whitespace or end of line after override value"))
	}
	return success(macroValue{kind: kind, amount: val.value, at: in}, val.rest, nil)
}
