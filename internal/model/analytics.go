package model

import (
	"sort"
	"time"
)

// AnalyticsMatch is one per-match line from the analytics provider.
type AnalyticsMatch struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	HomeTeam  string    `json:"h_team"`
	AwayTeam  string    `json:"a_team"`
	Minutes   int       `json:"time"`
	Goals     int       `json:"goals"`
	Assists   int       `json:"assists"`
	Shots     int       `json:"shots"`
	KeyPasses int       `json:"key_passes"`
	XG        float64   `json:"xG"`
	XA        float64   `json:"xA"`
	NPXG      float64   `json:"npxG"`
	XGChain   float64   `json:"xGChain"`
	XGBuildup float64   `json:"xGBuildup"`
}

// Shot is one shot event from the analytics provider.
type Shot struct {
	ID        int     `json:"id"`
	MatchID   int     `json:"match_id"`
	Minute    int     `json:"minute"`
	Result    string  `json:"result"`
	Situation string  `json:"situation"`
	ShotType  string  `json:"shot_type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XG        float64 `json:"xG"`
}

// PlayerDetail is the analytics drill-down for one matched entity.
type PlayerDetail struct {
	SourceID int              `json:"source_id"`
	TargetID int              `json:"target_id"`
	Matches  []AnalyticsMatch `json:"matches"`
	Shots    []Shot           `json:"shots"`
}

// XGPer90 returns expected goals per 90 minutes over the detail's matches.
func (d *PlayerDetail) XGPer90() float64 {
	var xg float64
	var mins int
	for _, m := range d.Matches {
		xg += m.XG
		mins += m.Minutes
	}
	if mins == 0 {
		return 0
	}
	return xg * 90 / float64(mins)
}

// DetailDataset collects analytics detail keyed by analytics player id.
// Several analytics players may map to one fantasy entity; use ForTarget to
// gather them. Excluded holds analytics player ids.
type DetailDataset struct {
	Season   string               `json:"season"`
	Records  map[int]PlayerDetail `json:"records"`
	Excluded []int                `json:"excluded"`
}

// ForTarget returns every detail mapped to the fantasy entity, ordered by source id.
func (ds *DetailDataset) ForTarget(target int) []PlayerDetail {
	var out []PlayerDetail
	for _, d := range ds.Records {
		if d.TargetID == target {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceID < out[j].SourceID })
	return out
}
