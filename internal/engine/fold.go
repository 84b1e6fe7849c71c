package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/rickgao/fpl-data/internal/model"
	"github.com/rickgao/fpl-data/internal/stats"
)

const (
	minutesField = "minutes"
	returnsField = "returns"
)

// Fold reduces one entity's series into a master record. Periods are ordered
// by kickoff, then round, then fixture id; values are coerced best-effort and
// non-numeric values are kept as they arrived.
func Fold(entity model.Entity, catalog *model.Catalog, series *model.EntitySeries, cfg Config) (model.MasterRecord, error) {
	if series == nil || len(series.Periods) == 0 {
		return model.MasterRecord{}, fmt.Errorf("%w: entity %d has empty history", ErrReduction, entity.ID)
	}

	periods := make([]model.Period, len(series.Periods))
	copy(periods, series.Periods)
	sort.SliceStable(periods, func(i, j int) bool {
		a, b := periods[i], periods[j]
		if !a.Kickoff.Equal(b.Kickoff) {
			return a.Kickoff.Before(b.Kickoff)
		}
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		return a.Fixture < b.Fixture
	})

	rec := model.MasterRecord{
		ID:          entity.ID,
		Name:        entity.WebName,
		FullName:    entity.FullName(),
		TeamID:      entity.Team,
		ElementType: entity.ElementType,
		Position:    model.PositionName(entity.ElementType),
		Rounds:      make([]int, len(periods)),
		Kickoffs:    make([]time.Time, len(periods)),
		History:     make(map[string][]model.Value),
		Returns:     make([]int, len(periods)),
		Rolling:     make(map[string][]model.WindowStat),
		Upcoming:    series.Upcoming,
	}
	if team, ok := catalog.TeamByID(entity.Team); ok {
		rec.TeamName = team.Name
	}

	for _, field := range historyFields(cfg) {
		seq := make([]model.Value, len(periods))
		for i, p := range periods {
			seq[i] = p.Fields[field]
		}
		rec.History[field] = seq
	}

	for i, p := range periods {
		rec.Rounds[i] = p.Round
		rec.Kickoffs[i] = p.Kickoff
		rec.Returns[i] = stats.ClassifyValue(p.Fields[cfg.PointsField])
	}

	for _, field := range cfg.RollingFields {
		rec.Rolling[field] = stats.SummarizeValues(rec.History[field], cfg.Windows)
	}
	rec.Rolling[returnsField] = stats.Summarize(stats.Ints(rec.Returns), cfg.Windows)

	minutes := rec.History[minutesField]
	rec.Full90 = stats.CountValuesAtLeast(minutes, stats.MinutesSpan, stats.FullMatch)
	rec.Full60 = stats.CountValuesAtLeast(minutes, stats.MinutesSpan, stats.MostOfMatch)

	return rec, nil
}

// historyFields is the ordered union of tracked, rolling, points and minutes fields.
func historyFields(cfg Config) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(fields ...string) {
		for _, f := range fields {
			if f != "" && !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	add(cfg.TrackedFields...)
	add(cfg.RollingFields...)
	add(cfg.PointsField, minutesField)
	return out
}
