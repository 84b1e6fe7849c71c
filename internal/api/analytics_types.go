package api

import "strings"

// AnalyticsTeam is one team row of /league/{league}/{season}/teams.
type AnalyticsTeam struct {
	ID    FlexInt `json:"id"`
	Title string  `json:"title"`
}

// AnalyticsPlayer is one player row of /league/{league}/{season}/players.
// Numeric columns arrive as strings.
type AnalyticsPlayer struct {
	ID         FlexInt   `json:"id"`
	PlayerName string    `json:"player_name"`
	TeamTitle  string    `json:"team_title"`
	Position   string    `json:"position"`
	Games      FlexInt   `json:"games"`
	Time       FlexInt   `json:"time"`
	Goals      FlexInt   `json:"goals"`
	Assists    FlexInt   `json:"assists"`
	Shots      FlexInt   `json:"shots"`
	KeyPasses  FlexInt   `json:"key_passes"`
	XG         FlexFloat `json:"xG"`
	XA         FlexFloat `json:"xA"`
	NPXG       FlexFloat `json:"npxG"`
}

// Teams splits the team title. Players transferred mid-season carry a
// comma-separated list of every club they appeared for.
func (p AnalyticsPlayer) Teams() []string {
	var out []string
	for _, t := range strings.Split(p.TeamTitle, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// AnalyticsMatchJSON is one row of /player/{id}/matches.
type AnalyticsMatchJSON struct {
	ID        FlexInt   `json:"id"`
	Date      string    `json:"date"`
	HTeam     string    `json:"h_team"`
	ATeam     string    `json:"a_team"`
	Time      FlexInt   `json:"time"`
	Goals     FlexInt   `json:"goals"`
	Assists   FlexInt   `json:"assists"`
	Shots     FlexInt   `json:"shots"`
	KeyPasses FlexInt   `json:"key_passes"`
	XG        FlexFloat `json:"xG"`
	XA        FlexFloat `json:"xA"`
	NPXG      FlexFloat `json:"npxG"`
	XGChain   FlexFloat `json:"xGChain"`
	XGBuildup FlexFloat `json:"xGBuildup"`
}

// ShotJSON is one row of /player/{id}/shots.
type ShotJSON struct {
	ID        FlexInt   `json:"id"`
	MatchID   FlexInt   `json:"match_id"`
	Minute    FlexInt   `json:"minute"`
	Result    string    `json:"result"`
	Situation string    `json:"situation"`
	ShotType  string    `json:"shotType"`
	X         FlexFloat `json:"X"`
	Y         FlexFloat `json:"Y"`
	XG        FlexFloat `json:"xG"`
}
