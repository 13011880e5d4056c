// Package flat provides lazily nested values and a depth-first flattener.
//
// A Value is absent (nil), a single leaf, or a sequence of further Values of
// any depth. Flatten turns it into a flat iter.Seq that is only produced as far
// as the consumer ranges over it. Absent values surface as the zero leaf;
// deciding what to do with them is left to the caller.
package flat

import "iter"

// Value is a single leaf or a nested sequence of leaves of type T.
// A nil Value is absent and flattens to a single zero T.
type Value[T any] interface {
	walk(yield func(T) bool) bool
}

type leaf[T any] struct {
	v T
}

func (l leaf[T]) walk(yield func(T) bool) bool {
	return yield(l.v)
}

type list[T any] []Value[T]

func (l list[T]) walk(yield func(T) bool) bool {
	for _, v := range l {
		if !walk(v, yield) {
			return false
		}
	}

	return true
}

type lazy[T any] iter.Seq[Value[T]]

func (l lazy[T]) walk(yield func(T) bool) bool {
	ok := true

	for v := range l {
		if !walk(v, yield) {
			ok = false

			break
		}
	}

	return ok
}

// Of wraps a single leaf.
func Of[T any](v T) Value[T] {
	return leaf[T]{v: v}
}

// Items wraps several leaves in order.
func Items[T any](vs ...T) Value[T] {
	l := make(list[T], 0, len(vs))
	for _, v := range vs {
		l = append(l, leaf[T]{v: v})
	}

	return l
}

// List concatenates nested values in order.
func List[T any](vs ...Value[T]) Value[T] {
	return list[T](vs)
}

// Lazy wraps a producer of nested values. The producer runs only while the
// flattened sequence is being consumed and stops as soon as the consumer does.
func Lazy[T any](seq iter.Seq[Value[T]]) Value[T] {
	if seq == nil {
		return nil
	}

	return lazy[T](seq)
}

// Gen is a generator-style shorthand for Lazy.
func Gen[T any](fn func(yield func(Value[T]) bool)) Value[T] {
	return Lazy(iter.Seq[Value[T]](fn))
}

// Seq lifts a flat sequence of leaves into a Value.
func Seq[T any](seq iter.Seq[T]) Value[T] {
	if seq == nil {
		return nil
	}

	return Gen(func(yield func(Value[T]) bool) {
		for v := range seq {
			if !yield(leaf[T]{v: v}) {
				return
			}
		}
	})
}

// Flatten returns the leaves of v depth-first, left to right.
func Flatten[T any](v Value[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		walk(v, yield)
	}
}

// Collect drains seq into a slice, keeping every leaf including zero ones.
func Collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}

	return out
}

func walk[T any](v Value[T], yield func(T) bool) bool {
	if v == nil {
		var zero T

		return yield(zero)
	}

	return v.walk(yield)
}
