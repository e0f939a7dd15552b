package recommend

import (
	"github.com/kailas-cloud/assessrec/internal/domain/catalog"
	"github.com/kailas-cloud/assessrec/internal/domain/constraint"
)

// Filter keeps records passing every active constraint, in input order.
// Only an explicit true on remote/adaptive filters; false and absent impose nothing.
func Filter(records []catalog.Record, c constraint.Constraints) []catalog.Record {
	out := make([]catalog.Record, 0, len(records))
	for _, r := range records {
		if matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r catalog.Record, c constraint.Constraints) bool {
	if c.DurationMax != nil && r.Duration() > *c.DurationMax {
		return false
	}
	if c.RequiresRemote() && !r.RemoteSupport().IsYes() {
		return false
	}
	if c.RequiresAdaptive() && !r.AdaptiveSupport().IsYes() {
		return false
	}
	return true
}
