package intake

import (
	"fmt"
	"path/filepath"
	"time"

	"luft/internal/capsule"
)

// SummaryCapsule condenses an intake run into a capsule record suitable for
// the merge: green when validation passed, red when it failed, hashed with
// the input file's digest and tagged with the run's warnings.
func (r *Result) SummaryCapsule() capsule.Record {
	status := capsule.StatusRed
	if r.Verdict.Passed {
		status = capsule.StatusGreen
	}

	tags := make([]string, 0, len(r.Warnings)+len(r.Verdict.Warnings()))
	tags = append(tags, r.Warnings...)
	for _, w := range r.Verdict.Warnings() {
		tags = append(tags, w.Text)
	}

	return capsule.Record{
		CapsuleID:    "run-" + r.RunID,
		TimestampUTC: r.FinishedAt.Format(time.RFC3339),
		Status:       status,
		Hash:         r.FileHash,
		Tags:         tags,
		Extra: map[string]any{
			"source_file":   filepath.Base(r.Source),
			"total_records": r.Profile.TotalRecords,
			"quality_score": fmt.Sprintf("%.4f", r.Profile.QualityScore()),
		},
	}
}
