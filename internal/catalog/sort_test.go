package catalog

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/five82/pwarps/internal/warps"
)

func names(records []warps.Record) string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return strings.Join(out, ",")
}

func scenario() []warps.Record {
	return []warps.Record{
		{Name: "a", Owner: "x", Visits: "10"},
		{Name: "b", Owner: "y", Visits: "5"},
		{Name: "c", Owner: "x", Visits: "bad"},
	}
}

func TestComputeView_Scenario(t *testing.T) {
	records := scenario()

	stats := Summarize(records)
	if stats.TotalVisits != 15 || stats.UniqueOwners != 2 || stats.Warps != 3 {
		t.Fatalf("Summarize = %+v, want 15 visits, 2 owners, 3 warps", stats)
	}
	if got := names(ComputeView(records, "y", SortName, Asc, nil)); got != "b" {
		t.Fatalf("search y = %q, want b", got)
	}
	if got := names(ComputeView(records, "", SortVisits, Desc, nil)); got != "a,b,c" {
		t.Fatalf("visits desc = %q, want a,b,c", got)
	}
	if got := names(ComputeView(records, "", SortVisits, Asc, nil)); got != "c,b,a" {
		t.Fatalf("visits asc = %q, want c,b,a", got)
	}
}

func TestComputeView_DoesNotMutateInput(t *testing.T) {
	records := scenario()
	before := names(records)
	_ = ComputeView(records, "", SortVisits, Desc, nil)
	_ = ComputeView(records, "", SortShuffle, Asc, rand.New(rand.NewPCG(1, 2)))
	if got := names(records); got != before {
		t.Fatalf("input reordered to %q, want %q", got, before)
	}
}

func TestFilter_CaseInsensitiveNameOrOwner(t *testing.T) {
	records := []warps.Record{
		{Name: "SpawnHub", Owner: "Alice"},
		{Name: "Farm", Owner: "SPAWNER"},
		{Name: "Mall", Owner: "bob"},
	}
	cases := []struct {
		term string
		want string
	}{
		{"", "SpawnHub,Farm,Mall"},
		{"spawn", "SpawnHub,Farm"},
		{"ALICE", "SpawnHub"},
		{"ob", "Mall"},
		{"zzz", ""},
		{" spawn", ""},
	}
	for _, tc := range cases {
		if got := names(Filter(records, tc.term)); got != tc.want {
			t.Fatalf("Filter(%q) = %q, want %q", tc.term, got, tc.want)
		}
	}
}

func TestComputeView_NameOrderIsCaseInsensitive(t *testing.T) {
	records := []warps.Record{
		{Name: "banana"}, {Name: "Apple"}, {Name: "cherry"}, {Name: "apricot"},
	}
	if got := names(ComputeView(records, "", SortName, Asc, nil)); got != "Apple,apricot,banana,cherry" {
		t.Fatalf("name asc = %q", got)
	}
	if got := names(ComputeView(records, "", SortName, Desc, nil)); got != "cherry,banana,apricot,Apple" {
		t.Fatalf("name desc = %q", got)
	}
}

func TestComputeView_StableForTiesInBothOrders(t *testing.T) {
	records := []warps.Record{
		{Name: "one", Owner: "Zed"},
		{Name: "two", Owner: "amy"},
		{Name: "three", Owner: "zed"},
		{Name: "four", Owner: "AMY"},
	}
	if got := names(ComputeView(records, "", SortOwner, Asc, nil)); got != "two,four,one,three" {
		t.Fatalf("owner asc = %q, want two,four,one,three", got)
	}
	// Desc flips the comparator, so tied records keep their input order.
	if got := names(ComputeView(records, "", SortOwner, Desc, nil)); got != "one,three,two,four" {
		t.Fatalf("owner desc = %q, want one,three,two,four", got)
	}
}

func TestComputeView_CreatedUnparsableSortFirst(t *testing.T) {
	records := []warps.Record{
		{Name: "late", Created: "2024-06-01T00:00:00Z"},
		{Name: "broken1", Created: "not a date"},
		{Name: "early", Created: "2023-01-01"},
		{Name: "broken2", Created: ""},
	}
	if got := names(ComputeView(records, "", SortCreated, Asc, nil)); got != "broken1,broken2,early,late" {
		t.Fatalf("created asc = %q", got)
	}
	if got := names(ComputeView(records, "", SortCreated, Desc, nil)); got != "late,early,broken1,broken2" {
		t.Fatalf("created desc = %q", got)
	}
}

func TestComputeView_ToggleReversesDistinctKeys(t *testing.T) {
	records := []warps.Record{
		{Name: "m", Visits: "3"}, {Name: "q", Visits: "1"}, {Name: "d", Visits: "2"},
	}
	for _, key := range []SortKey{SortName, SortVisits} {
		asc := ComputeView(records, "", key, Asc, nil)
		desc := ComputeView(records, "", key, Desc, nil)
		slices.Reverse(desc)
		if names(asc) != names(desc) {
			t.Fatalf("%s: asc %q is not the reverse of desc", key, names(asc))
		}
	}
}

func TestComputeView_ShuffleIsPermutation(t *testing.T) {
	records := []warps.Record{
		{Name: "a", Owner: "o"}, {Name: "b", Owner: "o"}, {Name: "c", Owner: "p"},
		{Name: "d", Owner: "o"}, {Name: "a", Owner: "q"},
	}
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 20; i++ {
		out := ComputeView(records, "", SortShuffle, Desc, rng)
		if len(out) != len(records) {
			t.Fatalf("len = %d, want %d", len(out), len(records))
		}
		got := strings.Split(names(out), ",")
		want := strings.Split(names(records), ",")
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			t.Fatalf("shuffle produced %v, want permutation of %v", got, want)
		}
	}

	filtered := ComputeView(records, "o", SortShuffle, Asc, rng)
	if len(filtered) != 4 {
		t.Fatalf("filtered shuffle len = %d, want 4", len(filtered))
	}
}

func TestComputeView_ShuffleSeededIsReproducible(t *testing.T) {
	records := scenario()
	first := ComputeView(records, "", SortShuffle, Asc, rand.New(rand.NewPCG(3, 4)))
	second := ComputeView(records, "", SortShuffle, Asc, rand.New(rand.NewPCG(3, 4)))
	if names(first) != names(second) {
		t.Fatalf("seeded shuffles differ: %q vs %q", names(first), names(second))
	}
}

func TestComputeView_ShuffleVariesAcrossCalls(t *testing.T) {
	records := []warps.Record{
		{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"}, {Name: "f"},
	}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[names(ComputeView(records, "", SortShuffle, Asc, nil))] = true
	}
	if len(seen) < 2 {
		t.Fatalf("shuffle produced a constant order over 50 calls")
	}
}

func TestShuffle_Uniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	counts := map[string]int{}
	const runs = 6000
	for i := 0; i < runs; i++ {
		recs := []warps.Record{{Name: "a"}, {Name: "b"}, {Name: "c"}}
		Shuffle(recs, rng)
		counts[names(recs)]++
	}
	if len(counts) != 6 {
		t.Fatalf("saw %d permutations, want 6", len(counts))
	}
	for perm, n := range counts {
		if n < 800 || n > 1200 {
			t.Fatalf("permutation %s seen %d times, want about %d", perm, n, runs/6)
		}
	}
}

func TestSortKeyCycleAndParse(t *testing.T) {
	if SortShuffle.Next() != SortName {
		t.Fatalf("Next(shuffle) = %q, want name", SortShuffle.Next())
	}
	if SortName.Prev() != SortShuffle {
		t.Fatalf("Prev(name) = %q, want shuffle", SortName.Prev())
	}
	if key, err := ParseSortKey(" Visits "); err != nil || key != SortVisits {
		t.Fatalf("ParseSortKey = %q, %v", key, err)
	}
	if _, err := ParseSortKey("rating"); err == nil {
		t.Fatalf("ParseSortKey(rating) returned nil error")
	}
	if order, err := ParseSortOrder("DESC"); err != nil || order != Desc {
		t.Fatalf("ParseSortOrder = %q, %v", order, err)
	}
	if Asc.Toggle() != Desc || Desc.Toggle() != Asc {
		t.Fatalf("Toggle did not flip")
	}
	if SortCreated.Label() != "Created" {
		t.Fatalf("Label = %q", SortCreated.Label())
	}
}
