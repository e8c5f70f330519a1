// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package iter provides small synchronous iterators used by the parser.
package iter

// Iterator yields values until it returns false.
type Iterator[T any] interface {
	Next() (T, bool)
}

// Lookahead is an Iterator that can peek at upcoming values. Lookahead(0) is
// the value the next call to Next will return.
type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(n int) (T, bool)
}

// Filter selects values from an Iterator.
type Filter[T any] interface {
	Keep(v T) bool
}

// NewSlice converts a slice of values into an Iterator implementation.
func NewSlice[T any](vs []T) Iterator[T] {
	return &iteratorSlice[T]{slice: vs, offset: -1}
}

type iteratorSlice[T any] struct {
	slice  []T
	offset int
}

func (it *iteratorSlice[T]) Next() (T, bool) {
	it.offset = it.offset + 1
	if it.offset >= len(it.slice) {
		var zero T
		return zero, false
	}
	return it.slice[it.offset], true
}

// NewIteratorFilter wraps an iterator with a filter so that only values that
// pass the filter are returned.
func NewIteratorFilter[T any](it Iterator[T], f Filter[T]) Iterator[T] {
	return &iteratorFilter[T]{
		iter:   it,
		filter: f,
	}
}

type iteratorFilter[T any] struct {
	iter   Iterator[T]
	filter Filter[T]
}

func (it *iteratorFilter[T]) Next() (T, bool) {
	for {
		v, ok := it.iter.Next()
		if !ok {
			return v, false
		}
		if it.filter.Keep(v) {
			return v, true
		}
	}
}

// NewLookahead wraps an iterator in a Lookahead implementation to enable
// peeking at the next n+1 values.
func NewLookahead[T any](it Iterator[T], n int) Lookahead[T] {
	return &lookahead[T]{
		iter:  it,
		n:     n,
		peeks: make([]peeked[T], 0, n+1),
	}
}

type peeked[T any] struct {
	value T
	ok    bool
}

type lookahead[T any] struct {
	iter  Iterator[T]
	n     int
	peeks []peeked[T]
}

func (look *lookahead[T]) fill(k int) {
	for len(look.peeks) <= k {
		v, ok := look.iter.Next()
		look.peeks = append(look.peeks, peeked[T]{value: v, ok: ok})
	}
}

func (look *lookahead[T]) Next() (T, bool) {
	if len(look.peeks) == 0 {
		return look.iter.Next()
	}
	head := look.peeks[0]
	copy(look.peeks, look.peeks[1:])
	look.peeks = look.peeks[:len(look.peeks)-1]
	return head.value, head.ok
}

func (look *lookahead[T]) Lookahead(n int) (T, bool) {
	if n < 0 || n > look.n {
		var zero T
		return zero, false
	}
	look.fill(n)
	return look.peeks[n].value, look.peeks[n].ok
}

// FilterFunc is an adaptor for simple filter functions that makes them
// compatible with the Filter interface. Use like:
//
//	FilterFunc[T](func(val T) bool { return true })
type FilterFunc[T any] func(val T) bool

func (f FilterFunc[T]) Keep(val T) bool {
	return f(val)
}
