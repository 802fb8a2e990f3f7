package diary

import "iter"

// NonEmpty is an ordered sequence holding at least one element.
// The zero value holds exactly one zero element.
type NonEmpty[T any] struct {
	Head T
	Tail []T
}

func NewNonEmpty[T any](head T, tail ...T) NonEmpty[T] {
	return NonEmpty[T]{Head: head, Tail: tail}
}

// FromSlice returns false when items is empty.
func FromSlice[T any](items []T) (NonEmpty[T], bool) {
	if len(items) == 0 {
		return NonEmpty[T]{}, false
	}
	tail := make([]T, len(items)-1)
	copy(tail, items[1:])
	return NonEmpty[T]{Head: items[0], Tail: tail}, true
}

func (n NonEmpty[T]) Len() int {
	return 1 + len(n.Tail)
}

func (n NonEmpty[T]) At(i int) T {
	if i == 0 {
		return n.Head
	}
	return n.Tail[i-1]
}

func (n NonEmpty[T]) Last() T {
	if len(n.Tail) == 0 {
		return n.Head
	}
	return n.Tail[len(n.Tail)-1]
}

// Slice returns a fresh slice; modifying it does not affect n.
func (n NonEmpty[T]) Slice() []T {
	out := make([]T, 0, n.Len())
	out = append(out, n.Head)
	return append(out, n.Tail...)
}

func (n NonEmpty[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if !yield(0, n.Head) {
			return
		}
		for i, v := range n.Tail {
			if !yield(i+1, v) {
				return
			}
		}
	}
}

func (n NonEmpty[T]) Append(v T) NonEmpty[T] {
	tail := make([]T, len(n.Tail), len(n.Tail)+1)
	copy(tail, n.Tail)
	return NonEmpty[T]{Head: n.Head, Tail: append(tail, v)}
}
