package capsule

// Sourced pairs a record with the repository and manifest it was scanned from.
type Sourced struct {
	Record Record
	Repo   string
	Path   string
}

// Index is the merged view of all admissible capsules, one winner per
// capsule_id, in first-seen id order.
type Index struct {
	ids     []string
	winners map[string]Record
}

// IDs returns capsule ids in the order their first record was encountered.
func (ix *Index) IDs() []string {
	return append([]string(nil), ix.ids...)
}

// Get returns the winning record for a capsule id.
func (ix *Index) Get(id string) (Record, bool) {
	rec, ok := ix.winners[id]
	return rec, ok
}

// Len returns the number of distinct capsule ids in the index.
func (ix *Index) Len() int { return len(ix.ids) }

// Records returns the winning records in id order.
func (ix *Index) Records() []Record {
	out := make([]Record, 0, len(ix.ids))
	for _, id := range ix.ids {
		out = append(out, ix.winners[id])
	}
	return out
}

// MergeResult carries the merged index plus the records rejected for missing
// required fields, in scan order.
type MergeResult struct {
	Index    *Index
	Rejected []Sourced
}

// Merge folds scanned capsules into a single index. The first record seen for
// an id becomes the provisional winner; each later candidate replaces it
// entirely when the candidate is green and the winner is not, or when the
// candidate's timestamp sorts earlier. Otherwise the winner stays and only
// absorbs the candidate's tags. Input order matters and is preserved.
func Merge(scanned []Sourced) MergeResult {
	index := &Index{winners: make(map[string]Record)}
	var rejected []Sourced

	for _, item := range scanned {
		rec := item.Record
		if !rec.Admissible() {
			rejected = append(rejected, item)
			continue
		}
		if rec.SourceRepo == "" {
			rec.SourceRepo = item.Repo
		}
		if rec.ManifestPath == "" {
			rec.ManifestPath = item.Path
		}

		winner, exists := index.winners[rec.CapsuleID]
		if !exists {
			index.ids = append(index.ids, rec.CapsuleID)
			index.winners[rec.CapsuleID] = rec
			continue
		}

		if supersedes(rec, winner) {
			index.winners[rec.CapsuleID] = rec
			continue
		}

		winner.Tags = unionTags(winner.Tags, rec.Tags)
		index.winners[rec.CapsuleID] = winner
	}

	return MergeResult{Index: index, Rejected: rejected}
}

// supersedes reports whether the candidate replaces the current winner.
// Green status dominates; between records of equal standing the earlier
// timestamp wins. Timestamps are RFC 3339 UTC strings, so the lexicographic
// comparison is also chronological. The relation is a total order over status
// then timestamp, which makes winner selection independent of input order.
func supersedes(candidate, winner Record) bool {
	candidateGreen := candidate.Status == StatusGreen
	winnerGreen := winner.Status == StatusGreen
	if candidateGreen != winnerGreen {
		return candidateGreen
	}
	return candidate.TimestampUTC < winner.TimestampUTC
}

// unionTags appends the candidate tags the winner does not already carry,
// keeping the winner's order and then candidate order.
func unionTags(winner, candidate []string) []string {
	if len(candidate) == 0 {
		return winner
	}
	seen := make(map[string]struct{}, len(winner))
	for _, tag := range winner {
		seen[tag] = struct{}{}
	}
	out := winner
	for _, tag := range candidate {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
