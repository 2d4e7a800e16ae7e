// Package utils collects small generic helpers shared across the engine:
// slice/map utilities and a keyed pseudorandom stream, grounded on the
// teacher's utils package of the same name and shape.
package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// AllDistinct reports whether every element of s is unique.
func AllDistinct(s []uint64) bool {
	seen := make(map[uint64]bool, len(s))
	for _, v := range s {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// GetDistincts returns the distinct elements of s, order unspecified.
func GetDistincts(s []int) []int {
	seen := make(map[int]bool, len(s))
	out := make([]int, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// GetSortedKeys returns the keys of m in ascending order.
func GetSortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// RotateUint64SliceAllocFree writes into dst the left-rotation of s by k
// positions (negative k rotates right), matching the teacher's
// RotateUint64SliceAllocFree. dst may be s itself, in which case the
// rotation is done in place.
func RotateUint64SliceAllocFree(s []uint64, k int, dst []uint64) {
	n := len(s)
	if n == 0 {
		return
	}
	k = ((k % n) + n) % n
	if &dst[0] == &s[0] {
		RotateSliceInPlace(s, k)
		return
	}
	copy(dst, s[k:])
	copy(dst[n-k:], s[:k])
}

// RotateSlice returns a new slice holding s rotated left by k positions.
func RotateSlice[T any](s []T, k int) []T {
	n := len(s)
	out := make([]T, n)
	if n == 0 {
		return out
	}
	k = ((k % n) + n) % n
	copy(out, s[k:])
	copy(out[n-k:], s[:k])
	return out
}

// RotateSliceInPlace rotates s left by k positions without allocating.
func RotateSliceInPlace[T any](s []T, k int) {
	n := len(s)
	if n == 0 {
		return
	}
	k = ((k % n) + n) % n
	if k == 0 {
		return
	}
	reverse(s[:k])
	reverse(s[k:])
	reverse(s)
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
