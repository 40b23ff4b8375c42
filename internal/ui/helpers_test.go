package ui

import (
	"reflect"
	"testing"

	"github.com/five82/pwarps/internal/warps"
)

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{15000, "15,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tc := range cases {
		if got := formatCount(tc.in); got != tc.want {
			t.Fatalf("formatCount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  abc  ", 10); got != "abc" {
		t.Fatalf("truncate trims = %q, want abc", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("truncate limit<=3 = %q, want abc", got)
	}
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q, want abc...", got)
	}
}

func TestVisibleWindow(t *testing.T) {
	cases := []struct {
		name                  string
		selected, total, rows int
		start, end            int
	}{
		{"fits", 2, 5, 10, 0, 5},
		{"top", 0, 50, 10, 0, 10},
		{"middle", 25, 50, 10, 20, 30},
		{"bottom", 49, 50, 10, 40, 50},
		{"empty", 0, 0, 10, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := visibleWindow(tc.selected, tc.total, tc.rows)
			if start != tc.start || end != tc.end {
				t.Fatalf("visibleWindow = [%d,%d), want [%d,%d)", start, end, tc.start, tc.end)
			}
		})
	}
}

func TestSuggestNames(t *testing.T) {
	names := []string{"alpha", "beta", "alphabet", "gamma", "alpha"}
	cases := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"prefix ranks closest first", "alph", 3, []string{"alpha", "alphabet"}},
		{"subsequence", "bta", 3, []string{"beta"}},
		{"edit distance fallback", "gamna", 3, []string{"gamma"}},
		{"limit keeps the tightest match", "a", 1, []string{"beta"}},
		{"blank", "  ", 3, nil},
		{"nothing close", "zzzzzz", 3, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := suggestNames(tc.query, names, tc.limit)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("suggestNames(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestDescribeLoadError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&warps.FetchError{Kind: warps.FetchStatus, Status: 404}, "server returned 404"},
		{&warps.FetchError{Kind: warps.FetchDecode}, "catalog data is not a list of warps"},
		{&warps.FetchError{Kind: warps.FetchRequest}, "network error"},
	}
	for _, tc := range cases {
		if got := describeLoadError(tc.err); got != tc.want {
			t.Fatalf("describeLoadError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestFormatCreated(t *testing.T) {
	if got := formatCreated(warps.Record{Created: "2024-03-05T10:30:00Z"}, false); got != "2024-03-05" {
		t.Fatalf("formatCreated = %q, want 2024-03-05", got)
	}
	if got := formatCreated(warps.Record{Created: "soon"}, false); got != "soon" {
		t.Fatalf("formatCreated unparsable = %q, want raw value", got)
	}
	if got := formatCreated(warps.Record{}, true); got != "unknown date" {
		t.Fatalf("formatCreated empty = %q, want unknown date", got)
	}
}
