package parser

// result is the outcome of applying a rule. On failure err is set and rest
// equals the input the rule was given. On success hint holds the deepest
// failure met on the way, so that a later failure of an enclosing rule can
// still report it.
type result[T any] struct {
	value T
	rest  input
	err   *Error
	hint  *Error
}

type rule[T any] func(input) result[T]

func success[T any](v T, rest input, hint *Error) result[T] {
	return result[T]{value: v, rest: rest, hint: hint}
}

func failure[T any](in input, err *Error) result[T] {
	return result[T]{rest: in, err: err}
}

func (r result[T]) failed() bool {
	return r.err != nil
}

// cause returns the failure merged with the hint carried in from earlier
// successful steps of the same sequence.
func cause[T any](r result[T], hint *Error) *Error {
	return deeper(r.err, hint)
}

// named pushes name onto the context of every failure leaving r.
func named[T any](name string, r rule[T]) rule[T] {
	return func(in input) result[T] {
		res := r(in)
		res.err = res.err.within(name)
		res.hint = res.hint.within(name)
		return res
	}
}

// alt tries each candidate in order and returns the first success. When all
// fail, the deepest failure is returned. A failed candidate that got further
// than the winning one is kept as a hint.
func alt[T any](candidates ...rule[T]) rule[T] {
	return func(in input) result[T] {
		var best *Error
		for _, c := range candidates {
			res := c(in)
			if !res.failed() {
				if best != nil && best.reach > res.rest.pos.Offset {
					res.hint = deeper(res.hint, best)
				}
				return res
			}
			best = deeper(best, res.err)
		}
		return failure[T](in, best)
	}
}

// section describes a repetition that ends where one of terminators
// matches, or at end of input.
type section[T any] struct {
	item        rule[T]
	terminators []rule[struct{}]

	// empty builds the failure for a section without items at in.
	empty func(in input) *Error
}

// many1 applies the section's item until it fails, requiring at least one
// item.
//
// When the item fails on a line that a terminator accepts, the section ends
// cleanly and the item failure is dropped. Otherwise the item failure is
// kept as a hint: enclosing rules try the terminators themselves and the
// deepest of all failures is what gets reported.
//
// With zero items the deepest candidate failure is propagated if it got past
// the start of the line; otherwise the section's own structural failure is
// returned.
func (s section[T]) many1(in input) result[[]T] {
	var items []T
	var hint *Error
	cur := in
	for {
		if cur.eof() {
			return s.finish(in, cur, items, hint, nil, true)
		}
		res := s.item(cur)
		if !res.failed() {
			if res.rest.pos.Offset == cur.pos.Offset {
				panic("parser: section item consumed no input")
			}
			items = append(items, res.value)
			hint = deeper(hint, res.hint)
			cur = res.rest
			continue
		}
		stop := res.err
		for _, t := range s.terminators {
			tr := t(cur)
			if !tr.failed() {
				return s.finish(in, cur, items, hint, nil, true)
			}
			if len(items) == 0 {
				stop = deeper(stop, tr.err)
			}
		}
		return s.finish(in, cur, items, hint, stop, false)
	}
}

func (s section[T]) finish(start, cur input, items []T, hint, stop *Error, clean bool) result[[]T] {
	if len(items) > 0 {
		return success(items, cur, deeper(hint, stop))
	}
	if !clean && stop != nil && stop.reach > cur.pos.Offset {
		return failure[[]T](start, stop)
	}
	return failure[[]T](start, s.empty(cur))
}

// complete runs r and requires the whole remaining input to be consumed,
// apart from trailing blank space.
func complete[T any](expected string, r rule[T]) rule[T] {
	return func(in input) result[T] {
		res := r(in)
		if res.failed() {
			return res
		}
		rest := skipBlank(res.rest)
		if !rest.eof() {
			return failure[T](in, deeper(res.hint, lexical(rest, expected)))
		}
		res.rest = rest
		return res
	}
}
