package engine

import (
	"context"
	"sort"

	"github.com/rickgao/fpl-data/internal/model"
	"github.com/rickgao/fpl-data/internal/stats"
)

// BuildTeams folds the played fixtures of the global fixture list into one
// record per catalog team. Teams without played fixtures get empty histories.
func (e *Engine) BuildTeams(ctx context.Context, catalog *model.Catalog, fixtures []model.FixtureResult, season string) (*model.TeamDataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	played := make([]model.FixtureResult, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Played() {
			played = append(played, f)
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		if !played[i].Kickoff.Equal(played[j].Kickoff) {
			return played[i].Kickoff.Before(played[j].Kickoff)
		}
		return played[i].ID < played[j].ID
	})

	records := make(map[int]*model.TeamRecord, len(catalog.Teams))
	for _, t := range catalog.Teams {
		records[t.ID] = &model.TeamRecord{ID: t.ID, Name: t.Name, ShortName: t.ShortName}
	}

	for _, f := range played {
		home, away := float64(*f.HomeGoals), float64(*f.AwayGoals)
		appendResult(records[f.HomeTeam], f.Event, home, away)
		appendResult(records[f.AwayTeam], f.Event, away, home)
	}

	ds := &model.TeamDataset{
		Season:  season,
		BuiltAt: e.now().UTC(),
		Records: make(map[int]model.TeamRecord, len(records)),
	}
	for id, rec := range records {
		rec.Rolling = map[string][]model.WindowStat{
			"goals_for":     stats.Summarize(rec.GoalsFor, e.cfg.Windows),
			"goals_against": stats.Summarize(rec.GoalsAgainst, e.cfg.Windows),
			"clean_sheets":  stats.Summarize(rec.CleanSheets, e.cfg.Windows),
		}
		ds.Records[id] = *rec
	}

	e.logger.Info("team build complete",
		"season", season,
		"teams", len(ds.Records),
		"fixtures", len(played),
	)
	return ds, nil
}

func appendResult(rec *model.TeamRecord, event int, scored, conceded float64) {
	if rec == nil {
		return
	}
	clean := 0.0
	if conceded == 0 {
		clean = 1
	}
	rec.Rounds = append(rec.Rounds, event)
	rec.GoalsFor = append(rec.GoalsFor, scored)
	rec.GoalsAgainst = append(rec.GoalsAgainst, conceded)
	rec.CleanSheets = append(rec.CleanSheets, clean)
}
