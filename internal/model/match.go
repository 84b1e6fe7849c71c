package model

import "sort"

// Outcome classifies how a match record was settled.
type Outcome string

const (
	OutcomeMatched        Outcome = "matched"
	OutcomeResolved       Outcome = "resolved"
	OutcomeBelowThreshold Outcome = "below_threshold"
	OutcomeAmbiguous      Outcome = "ambiguous"
	OutcomeNoTeam         Outcome = "no_team"
)

// Accepted reports whether the record links to a target entity.
func (o Outcome) Accepted() bool {
	return o == OutcomeMatched || o == OutcomeResolved
}

// MatchRecord links one analytics-provider entity to one fantasy-platform entity.
type MatchRecord struct {
	SourceID   int     `json:"source_id"`
	SourceName string  `json:"source_name"`
	TargetID   int     `json:"target_id"` // 0 when unmatched
	TargetName string  `json:"target_name,omitempty"`
	Confidence float64 `json:"confidence"`
	Outcome    Outcome `json:"outcome"`
}

// MatchTable is the correspondence table handed to downstream consumers.
// It is not guaranteed to be a bijection.
type MatchTable struct {
	Season  string        `json:"season"`
	Records []MatchRecord `json:"records"`
}

// ByTarget returns every accepted record pointing at the given target id.
func (t *MatchTable) ByTarget(targetID int) []MatchRecord {
	var out []MatchRecord
	for _, r := range t.Records {
		if r.Outcome.Accepted() && r.TargetID == targetID {
			out = append(out, r)
		}
	}
	return out
}

// Unmatched returns the records that did not link to a target.
func (t *MatchTable) Unmatched() []MatchRecord {
	var out []MatchRecord
	for _, r := range t.Records {
		if !r.Outcome.Accepted() {
			out = append(out, r)
		}
	}
	return out
}

// Duplicates maps each target id chosen by more than one source to those source ids.
func (t *MatchTable) Duplicates() map[int][]int {
	seen := make(map[int][]int)
	for _, r := range t.Records {
		if r.Outcome.Accepted() {
			seen[r.TargetID] = append(seen[r.TargetID], r.SourceID)
		}
	}
	for id, sources := range seen {
		if len(sources) < 2 {
			delete(seen, id)
			continue
		}
		sort.Ints(sources)
	}
	return seen
}

// Counts tallies records per outcome.
func (t *MatchTable) Counts() map[Outcome]int {
	out := make(map[Outcome]int)
	for _, r := range t.Records {
		out[r.Outcome]++
	}
	return out
}
