package model

// Pick is one squad slot chosen by a manager for a gameweek.
type Pick struct {
	Element     int  `json:"element"`
	Position    int  `json:"position"`
	Multiplier  int  `json:"multiplier"`
	Captain     bool `json:"is_captain"`
	ViceCaptain bool `json:"is_vice_captain"`
}

// Standing is one manager row of a classic league table.
type Standing struct {
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
}

// ManagerPicks joins a standing row with that manager's picks for one gameweek.
type ManagerPicks struct {
	Standing
	Points     int    `json:"points"`
	Transfers  int    `json:"transfers_cost"`
	ActiveChip string `json:"active_chip,omitempty"`
	Picks      []Pick `json:"picks"`
}

// LeagueDataset is a league snapshot for one gameweek.
type LeagueDataset struct {
	League   int            `json:"league"`
	Name     string         `json:"name"`
	Gameweek int            `json:"gameweek"`
	Season   string         `json:"season"`
	Managers []ManagerPicks `json:"managers"`
	Excluded []int          `json:"excluded"`
}

// Ownership counts how many managers in the league picked each element.
func (d *LeagueDataset) Ownership() map[int]int {
	out := make(map[int]int)
	for _, m := range d.Managers {
		for _, p := range m.Picks {
			out[p.Element]++
		}
	}
	return out
}
