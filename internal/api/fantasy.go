package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/fpl-data/internal/model"
)

// FantasyClient talks to the fantasy platform (provider A).
type FantasyClient struct {
	*Client
	summaries *Memo[*ElementSummary]
}

// NewFantasyClient creates a provider A client.
func NewFantasyClient(baseURL string, opts ...ClientOption) *FantasyClient {
	opts = append([]ClientOption{WithProvider("fantasy")}, opts...)
	return &FantasyClient{
		Client:    NewClient(baseURL, opts...),
		summaries: NewMemo[*ElementSummary](),
	}
}

// Bootstrap fetches the catalog snapshot. Callers treat any error as fatal
// for the run: nothing can fan out without the entity ids.
func (c *FantasyClient) Bootstrap(ctx context.Context) (*BootstrapResponse, error) {
	var resp BootstrapResponse
	if err := c.get(ctx, "/bootstrap-static/", nil, &resp); err != nil {
		return nil, fmt.Errorf("get bootstrap: %w", err)
	}
	return &resp, nil
}

// Catalog fetches and converts the catalog snapshot.
func (c *FantasyClient) Catalog(ctx context.Context) (*model.Catalog, error) {
	resp, err := c.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	return resp.ToModel(), nil
}

// Fixtures fetches the global fixture list.
func (c *FantasyClient) Fixtures(ctx context.Context) ([]model.FixtureResult, error) {
	var resp []FixtureJSON
	if err := c.get(ctx, "/fixtures/", nil, &resp); err != nil {
		return nil, fmt.Errorf("get fixtures: %w", err)
	}
	out := make([]model.FixtureResult, 0, len(resp))
	for _, f := range resp {
		out = append(out, f.ToModel())
	}
	return out, nil
}

// ElementSummary fetches one entity's history and upcoming fixtures.
// Successful payloads are memoised for the life of the client.
func (c *FantasyClient) ElementSummary(ctx context.Context, id int) (*ElementSummary, error) {
	return c.summaries.Do(ctx, id, func(ctx context.Context) (*ElementSummary, error) {
		var resp ElementSummary
		path := "/element-summary/" + strconv.Itoa(id) + "/"
		if err := c.get(ctx, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("get element summary %d: %w", id, err)
		}
		return &resp, nil
	})
}

// EntitySeries fetches one entity's summary as a typed series.
func (c *FantasyClient) EntitySeries(ctx context.Context, id int) (*model.EntitySeries, error) {
	resp, err := c.ElementSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	return resp.ToModel(id), nil
}

// MemoLen returns the number of memoised entity summaries.
func (c *FantasyClient) MemoLen() int {
	return c.summaries.Len()
}

// Forget drops one memoised entity summary.
func (c *FantasyClient) Forget(id int) {
	c.summaries.Forget(id)
}

// LeagueStandings fetches one page (1-based) of a classic league table.
func (c *FantasyClient) LeagueStandings(ctx context.Context, league, page int) (*StandingsResponse, error) {
	query := url.Values{}
	query.Set("page_standings", strconv.Itoa(page))

	var resp StandingsResponse
	path := "/leagues-classic/" + strconv.Itoa(league) + "/standings/"
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("get standings %d page %d: %w", league, page, err)
	}
	return &resp, nil
}

// Picks fetches one manager's picks for a gameweek.
func (c *FantasyClient) Picks(ctx context.Context, manager, gameweek int) (*PicksResponse, error) {
	var resp PicksResponse
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", manager, gameweek)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get picks %d gw %d: %w", manager, gameweek, err)
	}
	return &resp, nil
}
