package warps

import (
	"strconv"
	"strings"
	"time"
)

// PlaceholderImage is shown when a record carries no image URL.
const PlaceholderImage = "/placeholder.svg"

// Record mirrors one entry of the catalog's data.json array.
// Every field is transported as a string; numeric and time values are parsed
// on demand so a malformed field never drops the record.
type Record struct {
	Name     string `json:"name" yaml:"name"`
	SafeName string `json:"safeName,omitempty" yaml:"safeName,omitempty"`
	Owner    string `json:"owner" yaml:"owner"`
	Created  string `json:"created" yaml:"created"`
	Visits   string `json:"visits" yaml:"visits"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
	Info     string `json:"info" yaml:"info"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// VisitCount returns the parsed visit counter, zero when it is not numeric.
func (r Record) VisitCount() int64 {
	return ParseVisits(r.Visits)
}

// CreatedAt returns the parsed creation time and whether parsing succeeded.
func (r Record) CreatedAt() (time.Time, bool) {
	return ParseCreated(r.Created)
}

// Image returns the image URL, or the placeholder when none is set.
func (r Record) Image() string {
	if strings.TrimSpace(r.ImageURL) == "" {
		return PlaceholderImage
	}
	return r.ImageURL
}

// Command returns the in-game command that teleports to the warp.
func (r Record) Command() string {
	return "/pwarp " + r.Name
}

// ParseVisits reads the leading integer of value. Surrounding whitespace and a
// single sign are accepted; anything without leading digits yields 0, as does
// a value that does not fit in an int64.
func ParseVisits(value string) int64 {
	s := strings.TrimSpace(value)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

var createdLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseCreated parses the created timestamp using the layouts the catalog is
// known to emit. Values without a zone are read as UTC.
func ParseCreated(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	// Epoch milliseconds.
	if ms, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}
