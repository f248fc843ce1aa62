// Package spotlight ranks in-memory items against a free-text query.
package spotlight

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Find returns the items whose label fuzzy-matches q, best match first.
// A blank query returns items unchanged.
func Find[T any](q string, items []T, label func(T) string) []T {
	q = strings.TrimSpace(q)
	if q == "" {
		return items
	}
	words := make([]string, len(items))
	for i, it := range items {
		words[i] = label(it)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, words)
	sort.Stable(ranks)

	result := make([]T, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, items[rank.OriginalIndex])
	}
	return result
}
