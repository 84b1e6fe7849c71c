package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rickgao/fpl-data/internal/model"
)

func intp(n int) *int { return &n }

func TestBuildTeams(t *testing.T) {
	cat := testCatalog()
	kick := time.Date(2023, 8, 12, 14, 0, 0, 0, time.UTC)
	fixtures := []model.FixtureResult{
		{ID: 2, Event: 2, HomeTeam: 12, AwayTeam: 1, HomeGoals: intp(2), AwayGoals: intp(2), Finished: true, Kickoff: kick.AddDate(0, 0, 7)},
		{ID: 1, Event: 1, HomeTeam: 1, AwayTeam: 12, HomeGoals: intp(3), AwayGoals: intp(0), Finished: true, Kickoff: kick},
		{ID: 3, Event: 3, HomeTeam: 1, AwayTeam: 12, Kickoff: kick.AddDate(0, 0, 14)},
	}

	e := New(DefaultConfig(), nil, nil)
	ds, err := e.BuildTeams(context.Background(), cat, fixtures, "2023-2024")
	if err != nil {
		t.Fatalf("BuildTeams failed: %v", err)
	}

	ars := ds.Records[1]
	if len(ars.GoalsFor) != 2 || ars.GoalsFor[0] != 3 || ars.GoalsFor[1] != 2 {
		t.Errorf("Arsenal GoalsFor = %v, want [3 2]", ars.GoalsFor)
	}
	if ars.CleanSheets[0] != 1 || ars.CleanSheets[1] != 0 {
		t.Errorf("Arsenal CleanSheets = %v, want [1 0]", ars.CleanSheets)
	}
	liv := ds.Records[12]
	if liv.GoalsAgainst[0] != 3 || liv.Rounds[1] != 2 {
		t.Errorf("Liverpool = %+v", liv)
	}
	if ws := liv.Rolling["goals_for"][0]; ws.Window != 0 || ws.Mean != 1 {
		t.Errorf("Liverpool goals_for full window = %+v, want mean 1", ws)
	}
}
