// Package source defines the pull sources and push sinks that connect the
// lexer, parser and interpreter stages.
package source

import (
	"iter"
	"unicode/utf8"
)

// Source yields items one at a time. Next returns false once the source is
// permanently exhausted; a finite source never blocks past its end.
type Source[T any] interface {
	Next() (T, bool)
}

// Sink accepts items one at a time. There is no backpressure.
type Sink[T any] interface {
	Put(T)
}

// SliceSource is a Source over an in-memory slice.
type SliceSource[T any] struct {
	items []T
	pos   int
}

// FromSlice returns a source that yields items in order.
func FromSlice[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Next implements Source.
func (s *SliceSource[T]) Next() (T, bool) {
	var zero T
	if s.pos >= len(s.items) {
		return zero, false
	}
	item := s.items[s.pos]
	s.pos++
	return item, true
}

// StringSource yields the runes of a string in order.
type StringSource struct {
	s string
}

// FromString returns a rune source over s.
func FromString(s string) *StringSource {
	return &StringSource{s: s}
}

// Next implements Source.
func (s *StringSource) Next() (rune, bool) {
	if len(s.s) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s.s)
	s.s = s.s[size:]
	return r, true
}

// Collector is a Sink that appends every item to a slice.
type Collector[T any] struct {
	Items []T
}

// Collect returns an empty slice-backed sink.
func Collect[T any]() *Collector[T] {
	return &Collector[T]{}
}

// Put implements Sink.
func (c *Collector[T]) Put(item T) {
	c.Items = append(c.Items, item)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc[T any] func(T)

// Put implements Sink.
func (f SinkFunc[T]) Put(item T) {
	f(item)
}

// Discard is a sink that drops everything.
func Discard[T any]() Sink[T] {
	return SinkFunc[T](func(T) {})
}

// All adapts src to a range-over-func iterator. Breaking out of the loop
// leaves the remaining items in src.
func All[T any](src Source[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := src.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}
