package util

import "sort"

func IntMapKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// SortedIntKeys returns the keys of m in ascending order.
func SortedIntKeys[V any](m map[int]V) []int {
	keys := IntMapKeys(m)
	sort.Ints(keys)
	return keys
}
