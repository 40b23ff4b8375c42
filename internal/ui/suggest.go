package ui

import (
	"cmp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestNames returns up to limit catalog names close to name. Fuzzy
// subsequence matches rank first, then near misses by edit distance.
func suggestNames(name string, candidates []string, limit int) []string {
	name = strings.TrimSpace(name)
	if limit <= 0 || name == "" || len(candidates) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, limit)
	out := make([]string, 0, limit)
	add := func(candidate string) bool {
		if _, ok := seen[candidate]; !ok {
			seen[candidate] = struct{}{}
			out = append(out, candidate)
		}
		return len(out) >= limit
	}

	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	sort.Stable(ranks)
	for _, rank := range ranks {
		if add(rank.Target) {
			return out
		}
	}

	type scored struct {
		name string
		dist int
	}
	lower := strings.ToLower(name)
	maxDist := max(2, utf8.RuneCountInString(name)/3)
	var near []scored
	for _, candidate := range candidates {
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(candidate)); d <= maxDist {
			near = append(near, scored{name: candidate, dist: d})
		}
	}
	slices.SortStableFunc(near, func(a, b scored) int { return cmp.Compare(a.dist, b.dist) })
	for _, s := range near {
		if add(s.name) {
			break
		}
	}
	return out
}
