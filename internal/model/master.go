package model

import "time"

// Fixture is an upcoming fixture attached to a master record.
type Fixture struct {
	Event      int       `json:"event"`
	Opponent   int       `json:"opponent"`
	IsHome     bool      `json:"is_home"`
	Difficulty int       `json:"difficulty"`
	Kickoff    time.Time `json:"kickoff_time"`
}

// Period is one raw per-period record of an entity's time series.
type Period struct {
	Round   int              `json:"round"`
	Fixture int              `json:"fixture"`
	Kickoff time.Time        `json:"kickoff_time"`
	Fields  map[string]Value `json:"fields"`
}

// WindowStat summarises a trailing window of a numeric series.
// Window 0 means the full history.
type WindowStat struct {
	Window int     `json:"window"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Stdev  float64 `json:"stdev"`
}

// MasterRecord is the fully folded history of one entity. It is built once per
// run and replaced wholesale on the next run.
type MasterRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	TeamID      int    `json:"team_id"`
	TeamName    string `json:"team_name"`
	ElementType int    `json:"element_type"`
	Position    string `json:"position"`

	Rounds   []int       `json:"rounds"`
	Kickoffs []time.Time `json:"kickoffs"`

	History map[string][]Value      `json:"history"`
	Returns []int                   `json:"returns"`
	Rolling map[string][]WindowStat `json:"rolling"`

	Full90 string `json:"full_90"`
	Full60 string `json:"full_60"`

	Upcoming []Fixture `json:"upcoming,omitempty"`
}

// Stat looks up the rolling summary of a field for a window.
func (r *MasterRecord) Stat(field string, window int) (WindowStat, bool) {
	for _, ws := range r.Rolling[field] {
		if ws.Window == window {
			return ws, true
		}
	}
	return WindowStat{}, false
}

// MasterDataset is the per-run collection of master records keyed by entity id.
// An id missing from Records means "no data this run".
type MasterDataset struct {
	Season   string               `json:"season"`
	BuiltAt  time.Time            `json:"built_at"`
	Records  map[int]MasterRecord `json:"records"`
	Excluded []int                `json:"excluded"`
}

// TeamRecord is the folded fixture history of one club.
type TeamRecord struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`

	Rounds       []int                   `json:"rounds"`
	GoalsFor     []float64               `json:"goals_for"`
	GoalsAgainst []float64               `json:"goals_against"`
	CleanSheets  []float64               `json:"clean_sheets"`
	Rolling      map[string][]WindowStat `json:"rolling"`
}

// TeamDataset collects team records keyed by team id.
type TeamDataset struct {
	Season  string             `json:"season"`
	BuiltAt time.Time          `json:"built_at"`
	Records map[int]TeamRecord `json:"records"`
}
