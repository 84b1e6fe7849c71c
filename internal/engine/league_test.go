package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rickgao/fpl-data/internal/api"
)

type fakeLeague struct {
	pages     [][]api.StandingJSON
	failPick  map[int]bool
	failPage  bool
	requested int
}

func (f *fakeLeague) LeagueStandings(_ context.Context, league, page int) (*api.StandingsResponse, error) {
	f.requested++
	if f.failPage {
		return nil, api.ErrEntityUnavailable
	}
	var resp api.StandingsResponse
	resp.League.ID = league
	resp.League.Name = "Mini League"
	resp.Standings.Page = page
	resp.Standings.Results = f.pages[page-1]
	resp.Standings.HasNext = page < len(f.pages)
	return &resp, nil
}

func (f *fakeLeague) Picks(_ context.Context, manager, gameweek int) (*api.PicksResponse, error) {
	if f.failPick[manager] {
		return nil, api.ErrEntityUnavailable
	}
	var resp api.PicksResponse
	resp.EntryHistory.Event = gameweek
	resp.EntryHistory.Points = manager
	resp.Picks = []api.PickJSON{{Element: 10, Position: 1, Multiplier: 2, IsCaptain: true}, {Element: manager, Position: 2, Multiplier: 1}}
	return &resp, nil
}

func TestBuildLeague(t *testing.T) {
	f := &fakeLeague{
		pages: [][]api.StandingJSON{
			{{Entry: 1, Rank: 1}, {Entry: 2, Rank: 2}},
			{{Entry: 3, Rank: 3}},
		},
		failPick: map[int]bool{2: true},
	}
	e := New(DefaultConfig(), nil, nil)

	ds, report, err := e.BuildLeague(context.Background(), f, 99, 5, "2023-2024")
	if err != nil {
		t.Fatalf("BuildLeague failed: %v", err)
	}
	if ds.Name != "Mini League" || ds.Gameweek != 5 {
		t.Errorf("dataset = %+v", ds)
	}
	if report.Requested != 3 || report.Built != 2 {
		t.Errorf("report = %+v", report)
	}
	if len(ds.Managers) != 2 || ds.Managers[0].Entry != 1 || ds.Managers[1].Entry != 3 {
		t.Errorf("managers should keep rank order without entry 2: %+v", ds.Managers)
	}
	if len(ds.Excluded) != 1 || ds.Excluded[0] != 2 {
		t.Errorf("Excluded = %v, want [2]", ds.Excluded)
	}
	if own := ds.Ownership(); own[10] != 2 || own[3] != 1 {
		t.Errorf("Ownership = %v", own)
	}
}

func TestBuildLeagueStandingsFailure(t *testing.T) {
	e := New(DefaultConfig(), nil, nil)
	_, _, err := e.BuildLeague(context.Background(), &fakeLeague{failPage: true}, 99, 5, "2023")
	if !errors.Is(err, api.ErrEntityUnavailable) {
		t.Errorf("error = %v, want ErrEntityUnavailable", err)
	}
}

func TestBuildLeagueTruncated(t *testing.T) {
	f := &fakeLeague{}
	for i := 1; i <= MaxStandingsPages+1; i++ {
		f.pages = append(f.pages, []api.StandingJSON{{Entry: i, Rank: i}})
	}
	var logs bytes.Buffer
	e := New(DefaultConfig(), nil, slog.New(slog.NewTextHandler(&logs, nil)))

	ds, _, err := e.BuildLeague(context.Background(), f, 99, 5, "2023-2024")
	if err != nil {
		t.Fatalf("BuildLeague failed: %v", err)
	}
	if f.requested != MaxStandingsPages {
		t.Errorf("pages requested = %d, want %d", f.requested, MaxStandingsPages)
	}
	if len(ds.Managers) != MaxStandingsPages {
		t.Errorf("len(Managers) = %d, want %d", len(ds.Managers), MaxStandingsPages)
	}
	if out := logs.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "league standings truncated") {
		t.Errorf("log = %q, want a truncation warning", out)
	}
}

func TestBuildLeagueLastPageNoWarning(t *testing.T) {
	f := &fakeLeague{pages: [][]api.StandingJSON{{{Entry: 1, Rank: 1}}}}
	var logs bytes.Buffer
	e := New(DefaultConfig(), nil, slog.New(slog.NewTextHandler(&logs, nil)))

	if _, _, err := e.BuildLeague(context.Background(), f, 99, 5, "2023-2024"); err != nil {
		t.Fatalf("BuildLeague failed: %v", err)
	}
	if strings.Contains(logs.String(), "truncated") {
		t.Errorf("log = %q, want no truncation warning", logs.String())
	}
}
