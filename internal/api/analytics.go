package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/fpl-data/internal/model"
)

// AnalyticsClient talks to the analytics service (provider B).
type AnalyticsClient struct {
	*Client
	league  string
	matches *Memo[[]model.AnalyticsMatch]
}

// NewAnalyticsClient creates a provider B client for one league.
func NewAnalyticsClient(baseURL, league string, opts ...ClientOption) *AnalyticsClient {
	opts = append([]ClientOption{WithProvider("analytics")}, opts...)
	return &AnalyticsClient{
		Client:  NewClient(baseURL, opts...),
		league:  league,
		matches: NewMemo[[]model.AnalyticsMatch](),
	}
}

func (c *AnalyticsClient) leaguePath(season int, what string) string {
	return "/league/" + url.PathEscape(c.league) + "/" + strconv.Itoa(season) + "/" + what
}

// LeagueTeams fetches every team of the league for a season start year.
func (c *AnalyticsClient) LeagueTeams(ctx context.Context, season int) ([]AnalyticsTeam, error) {
	var resp []AnalyticsTeam
	if err := c.get(ctx, c.leaguePath(season, "teams"), nil, &resp); err != nil {
		return nil, fmt.Errorf("get league teams %d: %w", season, err)
	}
	return resp, nil
}

// LeaguePlayers fetches every player of the league for a season start year.
func (c *AnalyticsClient) LeaguePlayers(ctx context.Context, season int) ([]AnalyticsPlayer, error) {
	var resp []AnalyticsPlayer
	if err := c.get(ctx, c.leaguePath(season, "players"), nil, &resp); err != nil {
		return nil, fmt.Errorf("get league players %d: %w", season, err)
	}
	return resp, nil
}

// PlayerMatches fetches one player's per-match lines. Successes are memoised.
func (c *AnalyticsClient) PlayerMatches(ctx context.Context, id int) ([]model.AnalyticsMatch, error) {
	return c.matches.Do(ctx, id, func(ctx context.Context) ([]model.AnalyticsMatch, error) {
		var resp []AnalyticsMatchJSON
		if err := c.get(ctx, "/player/"+strconv.Itoa(id)+"/matches", nil, &resp); err != nil {
			return nil, fmt.Errorf("get player matches %d: %w", id, err)
		}
		out := make([]model.AnalyticsMatch, 0, len(resp))
		for _, m := range resp {
			out = append(out, m.ToModel())
		}
		return out, nil
	})
}

// PlayerShots fetches one player's shot events.
func (c *AnalyticsClient) PlayerShots(ctx context.Context, id int) ([]model.Shot, error) {
	var resp []ShotJSON
	if err := c.get(ctx, "/player/"+strconv.Itoa(id)+"/shots", nil, &resp); err != nil {
		return nil, fmt.Errorf("get player shots %d: %w", id, err)
	}
	out := make([]model.Shot, 0, len(resp))
	for _, s := range resp {
		out = append(out, s.ToModel())
	}
	return out, nil
}
