// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

// Package slice complements the standard [slices] package with set-style
// helpers used by the tag reconciliation logic.
package slice

// Difference returns the elements of a that are not present in b.
// Order of a is preserved.
func Difference[T comparable](a, b []T) []T {
	exclude := make(map[T]struct{}, len(b))
	for _, v := range b {
		exclude[v] = struct{}{}
	}

	var result []T
	for _, v := range a {
		if _, found := exclude[v]; !found {
			result = append(result, v)
		}
	}

	return result
}
