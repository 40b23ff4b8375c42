package catalog

import "github.com/five82/pwarps/internal/warps"

// Stats summarises a loaded catalog for the header line.
type Stats struct {
	Warps        int
	TotalVisits  int64
	UniqueOwners int
}

// Summarize counts warps, sums visits (non-numeric counts as zero) and
// counts distinct owner handles by exact match.
func Summarize(records []warps.Record) Stats {
	owners := make(map[string]struct{}, len(records))
	var total int64
	for _, r := range records {
		total += r.VisitCount()
		owners[r.Owner] = struct{}{}
	}
	return Stats{
		Warps:        len(records),
		TotalVisits:  total,
		UniqueOwners: len(owners),
	}
}
