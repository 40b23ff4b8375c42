package warps

import (
	"testing"
	"time"
)

func TestParseVisits(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10", 10},
		{" 42 ", 42},
		{"7 visits", 7},
		{"+3", 3},
		{"-4", -4},
		{"bad", 0},
		{"", 0},
		{"-", 0},
		{"99999999999999999999999", 0},
	}
	for _, tc := range cases {
		if got := ParseVisits(tc.in); got != tc.want {
			t.Fatalf("ParseVisits(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCreated(t *testing.T) {
	want := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-05T10:30:00Z", "2024-03-05 10:30:00", "2024-03-05T10:30:00"} {
		got, ok := ParseCreated(in)
		if !ok || !got.Equal(want) {
			t.Fatalf("ParseCreated(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if got, ok := ParseCreated("2024-03-05"); !ok || got.Day() != 5 {
		t.Fatalf("ParseCreated(date) = %v, %v", got, ok)
	}
	if got, ok := ParseCreated("1709634600000"); !ok || !got.Equal(want) {
		t.Fatalf("ParseCreated(epoch ms) = %v, %v; want %v", got, ok, want)
	}
	for _, in := range []string{"", "   ", "yesterday", "2024-13-45"} {
		if _, ok := ParseCreated(in); ok {
			t.Fatalf("ParseCreated(%q) ok = true, want false", in)
		}
	}
}

func TestRecordHelpers(t *testing.T) {
	r := Record{Name: "Spawn Hub", ImageURL: "https://img/spawn.png", Visits: "12"}
	if got := r.Command(); got != "/pwarp Spawn Hub" {
		t.Fatalf("Command = %q", got)
	}
	if got := r.Image(); got != "https://img/spawn.png" {
		t.Fatalf("Image = %q", got)
	}
	if got := r.VisitCount(); got != 12 {
		t.Fatalf("VisitCount = %d, want 12", got)
	}
	if got := (Record{ImageURL: "  "}).Image(); got != PlaceholderImage {
		t.Fatalf("Image blank = %q, want placeholder", got)
	}
}
