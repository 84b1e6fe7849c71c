package engine

import (
	"errors"
	"sort"
	"time"
)

// ErrReduction marks an entity whose series could not be folded.
var ErrReduction = errors.New("reduction failure")

// Cause labels why an entity was excluded.
type Cause string

const (
	CauseFetch  Cause = "fetch"
	CauseReduce Cause = "reduce"
)

// Exclusion records one entity left out of a dataset.
type Exclusion struct {
	EntityID int
	Cause    Cause
	Err      error
}

// Report summarises one build.
type Report struct {
	Requested  int
	Fetched    int
	Built      int
	Exclusions []Exclusion
	Duration   time.Duration
}

// ExcludedIDs returns the excluded entity ids in ascending order.
func (r *Report) ExcludedIDs() []int {
	ids := make([]int, 0, len(r.Exclusions))
	for _, ex := range r.Exclusions {
		ids = append(ids, ex.EntityID)
	}
	sort.Ints(ids)
	return ids
}

// CountByCause tallies exclusions per cause.
func (r *Report) CountByCause() map[Cause]int {
	out := make(map[Cause]int)
	for _, ex := range r.Exclusions {
		out[ex.Cause]++
	}
	return out
}

func (r *Report) sortExclusions() {
	sort.Slice(r.Exclusions, func(i, j int) bool {
		return r.Exclusions[i].EntityID < r.Exclusions[j].EntityID
	})
}
