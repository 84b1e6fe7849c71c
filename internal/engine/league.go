package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/fpl-data/internal/api"
	"github.com/rickgao/fpl-data/internal/model"
)

// MaxStandingsPages bounds how many standings pages a league build reads.
const MaxStandingsPages = 20

// LeagueFetcher provides league standings and manager picks.
type LeagueFetcher interface {
	LeagueStandings(ctx context.Context, league, page int) (*api.StandingsResponse, error)
	Picks(ctx context.Context, manager, gameweek int) (*api.PicksResponse, error)
}

// BuildLeague reads every standings page of a classic league, then fetches
// each manager's picks for gameweek. A standings failure aborts the build;
// a picks failure only excludes that manager.
func (e *Engine) BuildLeague(ctx context.Context, f LeagueFetcher, leagueID, gameweek int, season string) (*model.LeagueDataset, *Report, error) {
	start := e.now()

	ds := &model.LeagueDataset{League: leagueID, Gameweek: gameweek, Season: season}
	var standings []model.Standing
	for page := 1; page <= MaxStandingsPages; page++ {
		resp, err := f.LeagueStandings(ctx, leagueID, page)
		if err != nil {
			return nil, nil, fmt.Errorf("league %d standings: %w", leagueID, err)
		}
		ds.Name = resp.League.Name
		for _, row := range resp.Standings.Results {
			standings = append(standings, row.ToModel())
		}
		if !resp.Standings.HasNext {
			break
		}
		if page == MaxStandingsPages {
			e.logger.Warn("league standings truncated",
				"league", leagueID,
				"pages", MaxStandingsPages,
				"managers", len(standings))
		}
	}

	report := &Report{Requested: len(standings)}
	managers := make([]*model.ManagerPicks, len(standings))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for i, st := range standings {
		g.Go(func() error {
			pctx := gctx
			if e.cfg.FetchTimeout > 0 {
				var cancel context.CancelFunc
				pctx, cancel = context.WithTimeout(gctx, e.cfg.FetchTimeout)
				defer cancel()
			}
			resp, err := f.Picks(pctx, st.Entry, gameweek)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				mu.Lock()
				e.exclude(report, st.Entry, CauseFetch, err)
				mu.Unlock()
				return nil
			}
			mp := resp.ToModel(st)
			managers[i] = &mp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("league %d picks: %w", leagueID, err)
	}

	for _, mp := range managers {
		if mp != nil {
			ds.Managers = append(ds.Managers, *mp)
			report.Fetched++
			report.Built++
		}
	}
	report.sortExclusions()
	ds.Excluded = report.ExcludedIDs()
	report.Duration = e.now().Sub(start)

	e.logger.Info("league build complete",
		"league", leagueID,
		"gameweek", gameweek,
		"managers", report.Requested,
		"fetched", report.Fetched,
		"excluded", len(report.Exclusions),
		"duration", report.Duration,
	)
	if report.Requested > 0 && report.Built == 0 {
		return nil, report, errors.New("no manager picks could be fetched")
	}
	return ds, report, nil
}
