package set

import (
	"cmp"
	"slices"
)

// Set is a generic set data structure that stores unique values of type T
type Set[T comparable] struct {
	items map[T]struct{}
}

// New creates a new empty set
func New[T comparable]() *Set[T] {
	return &Set[T]{
		items: make(map[T]struct{}),
	}
}

// Add adds a value to the set
func (s *Set[T]) Add(value T) {
	s.items[value] = struct{}{}
}

// Contains checks if the set contains a value. A nil set contains nothing.
func (s *Set[T]) Contains(value T) bool {
	if s == nil {
		return false
	}
	_, exists := s.items[value]
	return exists
}

// Len returns the number of elements in the set
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Values returns a slice containing all values in the set (in no particular order)
func (s *Set[T]) Values() []T {
	if s == nil {
		return nil
	}
	values := make([]T, 0, len(s.items))
	for value := range s.items {
		values = append(values, value)
	}
	return values
}

// Sorted returns the values of an ordered set in ascending order
func Sorted[T cmp.Ordered](s *Set[T]) []T {
	values := s.Values()
	slices.Sort(values)
	return values
}
