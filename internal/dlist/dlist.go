// Package dlist adapts github.com/bahlo/generic-list-go into the MRU/LRU
// vocabulary every engine in this module needs: push to the most-recently-used
// end, detach in O(1), move an existing element back to MRU, and pop the
// least-recently-used end for eviction. The same wrapper serves recency
// lists (LRU, ARC's T1/T2), frequency buckets (LFU — insertion order within
// a bucket), and ghost FIFOs (ARC's B1/B2 — push at MRU, evict oldest from
// the LRU end).
package dlist

import list "github.com/bahlo/generic-list-go"

// Element is a handle into a List, returned by PushMRU and consumed by
// MoveToMRU and Detach.
type Element[T any] = list.Element[T]

// List is an intrusive doubly linked list ordered from MRU (front) to LRU
// (back). The zero value is not usable; construct with New.
type List[T any] struct {
	l *list.List[T]
}

// New returns an empty List.
func New[T any]() *List[T] {
	return &List[T]{l: list.New[T]()}
}

// Len reports the number of elements.
func (s *List[T]) Len() int {
	if s.l == nil {
		return 0
	}
	return s.l.Len()
}

// PushMRU inserts v at the MRU end and returns its element handle.
func (s *List[T]) PushMRU(v T) *Element[T] {
	return s.l.PushFront(v)
}

// MoveToMRU relocates an existing element to the MRU end in O(1).
func (s *List[T]) MoveToMRU(e *Element[T]) {
	s.l.MoveToFront(e)
}

// Detach removes e from the list and returns its value. The caller must
// ensure e belongs to this list.
func (s *List[T]) Detach(e *Element[T]) T {
	return s.l.Remove(e)
}

// LRU returns the element at the LRU end without removing it, or nil if the
// list is empty.
func (s *List[T]) LRU() *Element[T] {
	return s.l.Back()
}

// PopLRU detaches and returns the value at the LRU end. ok is false if the
// list was empty.
func (s *List[T]) PopLRU() (v T, ok bool) {
	e := s.l.Back()
	if e == nil {
		return v, false
	}
	return s.l.Remove(e), true
}

// Clear resets the list to empty.
func (s *List[T]) Clear() {
	s.l = list.New[T]()
}
