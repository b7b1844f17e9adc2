package slices

import (
	stdslices "slices"
)

// UniqueAdd adds v to s. It returns a slice and a boolean to indicate whether
// the element has been inserted or not.
func UniqueAdd[S ~[]E, E comparable](s S, v E) (S, bool) {
	if i := stdslices.Index(s, v); i == -1 {
		return append(s, v), true
	}
	return s, false
}

// Dedupe returns a new slice holding the elements of s in their order of
// first appearance, each exactly once. s is left untouched.
func Dedupe[S ~[]E, E comparable](s S) S {
	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
