package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rickgao/fpl-data/internal/cache"
	"github.com/rickgao/fpl-data/internal/engine"
	"github.com/rickgao/fpl-data/internal/matcher"
	"github.com/rickgao/fpl-data/internal/model"
)

// Cache key components.
const (
	ProviderFantasy   = "fpl"
	ProviderAnalytics = "understat"

	categoryPlayers = "players"
	categoryTeams   = "teams"
	categoryLeagues = "leagues"
)

// Catalog downloads the roster snapshot and derives the season span. Every
// other step waits on it.
func (rt *Runtime) Catalog(ctx context.Context) (*model.Catalog, string, error) {
	catalog, err := rt.Fantasy.Catalog(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: %w", err)
	}
	span, err := model.SeasonSpan(catalog.Gameweeks)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: %w", err)
	}
	rt.Logger.Info("catalog loaded",
		"season", span,
		"entities", len(catalog.Entities),
		"teams", len(catalog.Teams),
		"gameweek", catalog.CurrentGameweek(),
	)
	return catalog, span, nil
}

// Master returns the master dataset, building it with one fetch per entity
// when no artifact exists for the span. The report is nil on a cache hit.
func (rt *Runtime) Master(ctx context.Context, catalog *model.Catalog, span string) (*model.MasterDataset, *engine.Report, cache.Outcome, error) {
	key := cache.Key{Provider: ProviderFantasy, Season: span, Category: categoryPlayers, Name: "master"}

	var report *engine.Report
	ds, outcome, err := cache.GetOrBuild(ctx, rt.Cache, key, func(ctx context.Context) (*model.MasterDataset, error) {
		ds, r, err := rt.Engine.BuildMaster(ctx, catalog, span)
		report = r
		return ds, err
	}, rt.Config.Pipeline.ForceRefresh)
	if err != nil {
		return nil, nil, outcome, fmt.Errorf("master %s: %w", span, err)
	}
	rt.Metrics.ObserveDataset("master", len(ds.Records), len(ds.Excluded))
	return ds, report, outcome, nil
}

// Teams returns the team dataset folded from the fixture list.
func (rt *Runtime) Teams(ctx context.Context, catalog *model.Catalog, span string) (*model.TeamDataset, cache.Outcome, error) {
	key := cache.Key{Provider: ProviderFantasy, Season: span, Category: categoryTeams, Name: "master"}

	ds, outcome, err := cache.GetOrBuild(ctx, rt.Cache, key, func(ctx context.Context) (*model.TeamDataset, error) {
		fixtures, err := rt.Fantasy.Fixtures(ctx)
		if err != nil {
			return nil, err
		}
		return rt.Engine.BuildTeams(ctx, catalog, fixtures, span)
	}, rt.Config.Pipeline.ForceRefresh)
	if err != nil {
		return nil, outcome, fmt.Errorf("teams %s: %w", span, err)
	}
	rt.Metrics.ObserveDataset("teams", len(ds.Records), 0)
	return ds, outcome, nil
}

// Matches returns the analytics-to-fantasy correspondence table for the span.
func (rt *Runtime) Matches(ctx context.Context, catalog *model.Catalog, span string) (*model.MatchTable, cache.Outcome, error) {
	key := cache.Key{Provider: ProviderAnalytics, Season: span, Category: categoryPlayers, Name: "matches"}

	table, outcome, err := cache.GetOrBuild(ctx, rt.Cache, key, func(ctx context.Context) (*model.MatchTable, error) {
		return rt.buildMatches(ctx, catalog, span)
	}, rt.Config.Pipeline.ForceRefresh)
	if err != nil {
		return nil, outcome, fmt.Errorf("matches %s: %w", span, err)
	}
	rt.Metrics.ObserveDataset("matches", len(table.Records)-len(table.Unmatched()), len(table.Unmatched()))
	return table, outcome, nil
}

func (rt *Runtime) buildMatches(ctx context.Context, catalog *model.Catalog, span string) (*model.MatchTable, error) {
	year, err := model.SeasonStartYear(span)
	if err != nil {
		return nil, fmt.Errorf("season %q: %w", span, err)
	}

	teams, err := rt.Analytics.LeagueTeams(ctx, year)
	if err != nil {
		return nil, err
	}
	players, err := rt.Analytics.LeaguePlayers(ctx, year)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(teams))
	for _, t := range teams {
		titles = append(titles, t.Title)
	}
	names := make([]string, 0, len(catalog.Teams))
	for _, t := range catalog.Teams {
		names = append(names, t.Name)
	}
	resolved := matcher.MatchTeams(titles, names, rt.Config.Matcher.TeamThreshold)
	for _, title := range titles {
		if _, ok := resolved[title]; !ok {
			rt.Logger.Warn("analytics team has no catalog counterpart", "team", title)
		}
	}

	table, err := rt.Matcher.Match(ctx, analyticsCandidates(players), catalogCandidates(catalog))
	if err != nil {
		return nil, err
	}
	table.Season = span
	return table, nil
}

// Detail fetches per-match and per-shot analytics for every accepted match,
// keyed by fantasy entity id.
func (rt *Runtime) Detail(ctx context.Context, table *model.MatchTable, span string) (*model.DetailDataset, *engine.Report, cache.Outcome, error) {
	key := cache.Key{Provider: ProviderAnalytics, Season: span, Category: categoryPlayers, Name: "detail"}

	var report *engine.Report
	ds, outcome, err := cache.GetOrBuild(ctx, rt.Cache, key, func(ctx context.Context) (*model.DetailDataset, error) {
		ds, r, err := rt.buildDetail(ctx, table, span)
		report = r
		return ds, err
	}, rt.Config.Pipeline.ForceRefresh)
	if err != nil {
		return nil, nil, outcome, fmt.Errorf("detail %s: %w", span, err)
	}
	rt.Metrics.ObserveDataset("detail", len(ds.Records), len(ds.Excluded))
	return ds, report, outcome, nil
}

func (rt *Runtime) buildDetail(ctx context.Context, table *model.MatchTable, span string) (*model.DetailDataset, *engine.Report, error) {
	targets := make(map[int]int)
	var ids []int
	for _, r := range table.Records {
		if r.Outcome.Accepted() {
			targets[r.SourceID] = r.TargetID
			ids = append(ids, r.SourceID)
		}
	}

	details, report, err := engine.BuildDetail(ctx, rt.Engine, ids, func(ctx context.Context, id int) (model.PlayerDetail, error) {
		matches, err := rt.Analytics.PlayerMatches(ctx, id)
		if err != nil {
			return model.PlayerDetail{}, err
		}
		shots, err := rt.Analytics.PlayerShots(ctx, id)
		if err != nil {
			return model.PlayerDetail{}, err
		}
		return model.PlayerDetail{SourceID: id, TargetID: targets[id], Matches: matches, Shots: shots}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	ds := &model.DetailDataset{Season: span, Records: make(map[int]model.PlayerDetail, len(details))}
	for _, d := range details {
		ds.Records[d.SourceID] = d
	}
	ds.Excluded = report.ExcludedIDs()
	return ds, report, nil
}

// League returns picks for every manager of a classic league at a gameweek.
func (rt *Runtime) League(ctx context.Context, span string, leagueID, gameweek int) (*model.LeagueDataset, *engine.Report, cache.Outcome, error) {
	name := strconv.Itoa(leagueID) + "_gw" + strconv.Itoa(gameweek)
	key := cache.Key{Provider: ProviderFantasy, Season: span, Category: categoryLeagues, Name: name}

	var report *engine.Report
	ds, outcome, err := cache.GetOrBuild(ctx, rt.Cache, key, func(ctx context.Context) (*model.LeagueDataset, error) {
		ds, r, err := rt.Engine.BuildLeague(ctx, rt.Fantasy, leagueID, gameweek, span)
		report = r
		return ds, err
	}, rt.Config.Pipeline.ForceRefresh)
	if err != nil {
		return nil, nil, outcome, fmt.Errorf("league %d gw %d: %w", leagueID, gameweek, err)
	}
	rt.Metrics.ObserveDataset("league", len(ds.Managers), len(ds.Excluded))
	return ds, report, outcome, nil
}
