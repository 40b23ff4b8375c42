package catalog

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/five82/pwarps/internal/warps"
)

// SortKey selects the ordering applied to the filtered catalog.
type SortKey string

const (
	SortName    SortKey = "name"
	SortOwner   SortKey = "owner"
	SortCreated SortKey = "created"
	SortVisits  SortKey = "visits"
	SortShuffle SortKey = "shuffle"
)

var sortKeyOrder = []SortKey{SortName, SortOwner, SortCreated, SortVisits, SortShuffle}

// SortKeys returns every key in display order.
func SortKeys() []SortKey {
	return slices.Clone(sortKeyOrder)
}

// ParseSortKey validates a user-supplied key.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	if slices.Contains(sortKeyOrder, key) {
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want one of %s)", value, joinKeys())
}

// Next returns the key after k, wrapping around.
func (k SortKey) Next() SortKey {
	return k.step(1)
}

// Prev returns the key before k, wrapping around.
func (k SortKey) Prev() SortKey {
	return k.step(-1)
}

func (k SortKey) step(delta int) SortKey {
	idx := slices.Index(sortKeyOrder, k)
	if idx < 0 {
		return SortName
	}
	n := len(sortKeyOrder)
	return sortKeyOrder[((idx+delta)%n+n)%n]
}

// Label returns the title-cased key for display.
func (k SortKey) Label() string {
	s := string(k)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func joinKeys() string {
	names := make([]string, len(sortKeyOrder))
	for i, k := range sortKeyOrder {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// SortOrder is the comparator direction. It has no meaning for SortShuffle.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder validates a user-supplied order.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want asc or desc)", value)
}

// Toggle flips asc and desc.
func (o SortOrder) Toggle() SortOrder {
	if o == Desc {
		return Asc
	}
	return Desc
}

// Rand is the random source used by shuffle mode.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the runtime's randomly seeded global generator.
var DefaultRand Rand = globalRand{}

// ComputeView filters records by term and orders them by key and order.
// The input slice is never modified. A nil rng uses DefaultRand.
func ComputeView(records []warps.Record, term string, key SortKey, order SortOrder, rng Rand) []warps.Record {
	view := Filter(records, term)
	if key == SortShuffle {
		if rng == nil {
			rng = DefaultRand
		}
		Shuffle(view, rng)
		return view
	}
	sign := 1
	if order == Desc {
		sign = -1
	}
	slices.SortStableFunc(view, func(a, b warps.Record) int {
		return sign * Compare(a, b, key)
	})
	return view
}

// Filter returns a new slice holding the records whose name or owner contains
// term, ignoring case. An empty term keeps everything.
func Filter(records []warps.Record, term string) []warps.Record {
	out := make([]warps.Record, 0, len(records))
	needle := strings.ToLower(term)
	for _, r := range records {
		if Matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a record passes the search filter. needle must
// already be lower-cased.
func Matches(r warps.Record, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Owner), needle)
}

// Compare orders two records by key in ascending direction. It is total:
// unparsable created values tie with each other and sort before valid ones,
// unparsable visits count as zero. SortShuffle compares everything equal.
func Compare(a, b warps.Record, key SortKey) int {
	switch key {
	case SortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortOwner:
		return strings.Compare(strings.ToLower(a.Owner), strings.ToLower(b.Owner))
	case SortCreated:
		ta, okA := a.CreatedAt()
		tb, okB := b.CreatedAt()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		}
		return ta.Compare(tb)
	case SortVisits:
		return cmp.Compare(a.VisitCount(), b.VisitCount())
	}
	return 0
}

// Shuffle permutes records in place with a Fisher-Yates pass.
func Shuffle(records []warps.Record, rng Rand) {
	for i := len(records) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		records[i], records[j] = records[j], records[i]
	}
}
