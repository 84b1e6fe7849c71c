package model

import "time"

// EntitySeries is one entity's raw per-period time series plus its upcoming
// fixtures, as returned by the per-entity summary call.
type EntitySeries struct {
	EntityID int       `json:"entity_id"`
	Periods  []Period  `json:"periods"`
	Upcoming []Fixture `json:"upcoming"`
}

// FixtureResult is one entry of the global fixture list. Goals are nil until
// the fixture has been played.
type FixtureResult struct {
	ID        int       `json:"id"`
	Event     int       `json:"event"` // 0 when unscheduled
	HomeTeam  int       `json:"team_h"`
	AwayTeam  int       `json:"team_a"`
	HomeGoals *int      `json:"team_h_score"`
	AwayGoals *int      `json:"team_a_score"`
	Finished  bool      `json:"finished"`
	Kickoff   time.Time `json:"kickoff_time"`
}

// Played reports whether both scores are known.
func (f FixtureResult) Played() bool {
	return f.Finished && f.HomeGoals != nil && f.AwayGoals != nil
}
