package common

import (
	"slices"
)

type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, v := range items {
		s.Add(v)
	}
	return s
}

func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

func (s Set[T]) Remove(v T) {
	delete(s, v)
}

func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

func MergeSets[T comparable](sets ...Set[T]) Set[T] {
	result := NewSet[T]()
	for _, set := range sets {
		for v := range set {
			result.Add(v)
		}
	}
	return result
}

func SortedStrings(s Set[string]) []string {
	items := make([]string, 0, len(s))
	for v := range s {
		items = append(items, v)
	}
	slices.Sort(items)
	return items
}
