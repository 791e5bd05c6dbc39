// Package listing provides the in-memory filter/sort/paginate helpers the
// list endpoints share. The data service returns whole tenant collections,
// so shaping happens here rather than in queries.
package listing

import (
	"sort"
	"strings"
)

// Filter returns the items for which keep is true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// SortBy returns a sorted copy. less defines ascending order; desc flips it.
// The sort is stable so repeated toggling keeps ties in place.
func SortBy[T any](items []T, less func(a, b T) bool, desc bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Page slices one page out of items. Pages are 1-based; a page past the end
// comes back empty.
func Page[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// MatchFold reports whether s contains the query, case-insensitively.
// An empty query matches everything.
func MatchFold(s, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}
