package internal

// Deduplicator merges commit lists by hash, keeping the first record seen
type Deduplicator struct {
	seen map[string]bool
}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]bool)}
}

// Merge appends the commits in incoming whose hash has not been seen yet
func (d *Deduplicator) Merge(merged []CommitRecord, incoming []CommitRecord) []CommitRecord {
	for _, commit := range incoming {
		if commit.Hash == "" || d.seen[commit.Hash] {
			continue
		}
		d.seen[commit.Hash] = true
		merged = append(merged, commit)
	}
	return merged
}

// Deduplicate removes duplicate hashes from a single list
func (d *Deduplicator) Deduplicate(commits []CommitRecord) []CommitRecord {
	return d.Merge(make([]CommitRecord, 0, len(commits)), commits)
}
