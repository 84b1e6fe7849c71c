package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BootstrapResponse is the catalog snapshot returned by /bootstrap-static/.
type BootstrapResponse struct {
	Elements []ElementJSON `json:"elements"`
	Teams    []TeamJSON    `json:"teams"`
	Events   []EventJSON   `json:"events"`
}

// ElementJSON is one player row of the catalog.
type ElementJSON struct {
	ID          int    `json:"id"`
	WebName     string `json:"web_name"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	Team        int    `json:"team"`
	ElementType int    `json:"element_type"`
	NowCost     int    `json:"now_cost"`
	Status      string `json:"status"`
}

// TeamJSON is one club row of the catalog.
type TeamJSON struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// EventJSON is one gameweek row of the catalog.
type EventJSON struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeadlineTime string `json:"deadline_time"`
	Finished     bool   `json:"finished"`
	IsCurrent    bool   `json:"is_current"`
}

// ElementSummary is the per-entity payload of /element-summary/{id}/.
type ElementSummary struct {
	Fixtures []UpcomingJSON `json:"fixtures"`
	History  []HistoryRow   `json:"history"`
}

// UpcomingJSON is one not-yet-played fixture of an element summary.
type UpcomingJSON struct {
	ID          int    `json:"id"`
	Event       *int   `json:"event"`
	TeamH       int    `json:"team_h"`
	TeamA       int    `json:"team_a"`
	IsHome      bool   `json:"is_home"`
	Difficulty  int    `json:"difficulty"`
	KickoffTime string `json:"kickoff_time"`
}

// HistoryRow is one played period of an element summary. The period keys are
// lifted into typed fields; every key, including those, stays in Fields.
type HistoryRow struct {
	Round       int
	Fixture     int
	KickoffTime string
	Fields      map[string]any
}

// UnmarshalJSON keeps numbers as json.Number so integer counts stay exact.
func (r *HistoryRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("history row: %w", err)
	}

	r.Fields = raw
	r.Round = numberField(raw["round"])
	r.Fixture = numberField(raw["fixture"])
	r.KickoffTime, _ = raw["kickoff_time"].(string)
	return nil
}

// FixtureJSON is one row of the global /fixtures/ list.
type FixtureJSON struct {
	ID          int    `json:"id"`
	Event       *int   `json:"event"`
	TeamH       int    `json:"team_h"`
	TeamA       int    `json:"team_a"`
	TeamHScore  *int   `json:"team_h_score"`
	TeamAScore  *int   `json:"team_a_score"`
	Finished    bool   `json:"finished"`
	KickoffTime string `json:"kickoff_time"`
}

// StandingsResponse is one page of /leagues-classic/{id}/standings/.
type StandingsResponse struct {
	League struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Standings struct {
		HasNext bool           `json:"has_next"`
		Page    int            `json:"page"`
		Results []StandingJSON `json:"results"`
	} `json:"standings"`
}

// StandingJSON is one manager row of a standings page.
type StandingJSON struct {
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
}

// PicksResponse is the payload of /entry/{id}/event/{gw}/picks/.
type PicksResponse struct {
	ActiveChip   string     `json:"active_chip"`
	Picks        []PickJSON `json:"picks"`
	EntryHistory struct {
		Event              int `json:"event"`
		Points             int `json:"points"`
		TotalPoints        int `json:"total_points"`
		EventTransfersCost int `json:"event_transfers_cost"`
	} `json:"entry_history"`
}

// PickJSON is one squad slot.
type PickJSON struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}
