package internal

import "iter"

// Ring is a fixed capacity queue that drops its oldest item when a new item is pushed while full.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// NewRing creates a Ring holding up to capacity items. A capacity below one is raised to one.
func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{items: make([]T, max(capacity, 1))}
}

// Push appends item, overwriting the oldest item if the ring is full.
func (r *Ring[T]) Push(item T) {
	tail := (r.head + r.size) % len(r.items)
	r.items[tail] = item
	if r.size == len(r.items) {
		r.head = (r.head + 1) % len(r.items)
		return
	}
	r.size++
}

// Get returns the item at index, where 0 is the oldest item.
func (r *Ring[T]) Get(index int) (item T, ok bool) {
	if index < 0 || index >= r.size {
		return item, false
	}
	return r.items[(r.head+index)%len(r.items)], true
}

// Last returns the most recently pushed item.
func (r *Ring[T]) Last() (T, bool) {
	return r.Get(r.size - 1)
}

// Len returns the number of items in the ring.
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the maximum number of items the ring holds.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Clear removes all items.
func (r *Ring[T]) Clear() {
	clear(r.items)
	r.head, r.size = 0, 0
}

// All iterates over the items from oldest to newest.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range r.size {
			if !yield(r.items[(r.head+i)%len(r.items)]) {
				return
			}
		}
	}
}
