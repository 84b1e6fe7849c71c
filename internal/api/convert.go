package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rickgao/fpl-data/internal/model"
)

// FlexFloat decodes a JSON number or a numeric string. Empty strings and
// null decode to zero.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("flex float %q: %w", s, err)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt decodes a JSON integer or an integer string.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler. Fractional input is truncated.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt(math.Trunc(float64(f)))
	return nil
}

// ParseTime parses provider timestamps. Returns the zero time for empty or
// invalid input.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func numberField(v any) int {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n)
		}
		if f, err := x.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(x)
	case string:
		if n, err := strconv.Atoi(x); err == nil {
			return n
		}
	}
	return 0
}

// ToModel converts the bootstrap payload into a catalog snapshot.
func (b *BootstrapResponse) ToModel() *model.Catalog {
	cat := &model.Catalog{
		Entities:  make([]model.Entity, 0, len(b.Elements)),
		Teams:     make([]model.Team, 0, len(b.Teams)),
		Gameweeks: make([]model.Gameweek, 0, len(b.Events)),
	}
	for _, e := range b.Elements {
		cat.Entities = append(cat.Entities, model.Entity{
			ID:          e.ID,
			WebName:     e.WebName,
			FirstName:   e.FirstName,
			SecondName:  e.SecondName,
			Team:        e.Team,
			ElementType: e.ElementType,
			NowCost:     e.NowCost,
			Status:      e.Status,
		})
	}
	for _, t := range b.Teams {
		cat.Teams = append(cat.Teams, model.Team{ID: t.ID, Name: t.Name, ShortName: t.ShortName})
	}
	for _, ev := range b.Events {
		cat.Gameweeks = append(cat.Gameweeks, model.Gameweek{
			ID:        ev.ID,
			Name:      ev.Name,
			Deadline:  ParseTime(ev.DeadlineTime),
			Finished:  ev.Finished,
			IsCurrent: ev.IsCurrent,
		})
	}
	return cat
}

// ToModel converts an element summary into a typed series. Periods keep the
// provider's order; the engine sorts them.
func (s *ElementSummary) ToModel(id int) *model.EntitySeries {
	series := &model.EntitySeries{
		EntityID: id,
		Periods:  make([]model.Period, 0, len(s.History)),
		Upcoming: make([]model.Fixture, 0, len(s.Fixtures)),
	}
	for _, row := range s.History {
		series.Periods = append(series.Periods, row.ToModel())
	}
	for _, f := range s.Fixtures {
		series.Upcoming = append(series.Upcoming, f.ToModel())
	}
	return series
}

// ToModel coerces every field of the row.
func (r HistoryRow) ToModel() model.Period {
	p := model.Period{
		Round:   r.Round,
		Fixture: r.Fixture,
		Kickoff: ParseTime(r.KickoffTime),
		Fields:  make(map[string]model.Value, len(r.Fields)),
	}
	for k, v := range r.Fields {
		p.Fields[k] = model.Coerce(v)
	}
	return p
}

// ToModel converts an upcoming fixture, resolving the opponent from the
// home flag.
func (f UpcomingJSON) ToModel() model.Fixture {
	out := model.Fixture{
		IsHome:     f.IsHome,
		Difficulty: f.Difficulty,
		Kickoff:    ParseTime(f.KickoffTime),
		Opponent:   f.TeamH,
	}
	if f.IsHome {
		out.Opponent = f.TeamA
	}
	if f.Event != nil {
		out.Event = *f.Event
	}
	return out
}

// ToModel converts a global fixture row.
func (f FixtureJSON) ToModel() model.FixtureResult {
	out := model.FixtureResult{
		ID:        f.ID,
		HomeTeam:  f.TeamH,
		AwayTeam:  f.TeamA,
		HomeGoals: f.TeamHScore,
		AwayGoals: f.TeamAScore,
		Finished:  f.Finished,
		Kickoff:   ParseTime(f.KickoffTime),
	}
	if f.Event != nil {
		out.Event = *f.Event
	}
	return out
}

// ToModel converts a standings row.
func (s StandingJSON) ToModel() model.Standing {
	return model.Standing{
		Entry:      s.Entry,
		EntryName:  s.EntryName,
		PlayerName: s.PlayerName,
		Rank:       s.Rank,
		Total:      s.Total,
		EventTotal: s.EventTotal,
	}
}

// ToModel joins a picks payload with the manager's standing row.
func (p *PicksResponse) ToModel(standing model.Standing) model.ManagerPicks {
	out := model.ManagerPicks{
		Standing:   standing,
		Points:     p.EntryHistory.Points,
		Transfers:  p.EntryHistory.EventTransfersCost,
		ActiveChip: p.ActiveChip,
		Picks:      make([]model.Pick, 0, len(p.Picks)),
	}
	for _, pk := range p.Picks {
		out.Picks = append(out.Picks, model.Pick{
			Element:     pk.Element,
			Position:    pk.Position,
			Multiplier:  pk.Multiplier,
			Captain:     pk.IsCaptain,
			ViceCaptain: pk.IsViceCaptain,
		})
	}
	sort.Slice(out.Picks, func(i, j int) bool { return out.Picks[i].Position < out.Picks[j].Position })
	return out
}

// ToModel converts a per-match analytics row.
func (m AnalyticsMatchJSON) ToModel() model.AnalyticsMatch {
	return model.AnalyticsMatch{
		ID:        int(m.ID),
		Date:      ParseTime(m.Date),
		HomeTeam:  m.HTeam,
		AwayTeam:  m.ATeam,
		Minutes:   int(m.Time),
		Goals:     int(m.Goals),
		Assists:   int(m.Assists),
		Shots:     int(m.Shots),
		KeyPasses: int(m.KeyPasses),
		XG:        float64(m.XG),
		XA:        float64(m.XA),
		NPXG:      float64(m.NPXG),
		XGChain:   float64(m.XGChain),
		XGBuildup: float64(m.XGBuildup),
	}
}

// ToModel converts a shot row.
func (s ShotJSON) ToModel() model.Shot {
	return model.Shot{
		ID:        int(s.ID),
		MatchID:   int(s.MatchID),
		Minute:    int(s.Minute),
		Result:    s.Result,
		Situation: s.Situation,
		ShotType:  s.ShotType,
		X:         float64(s.X),
		Y:         float64(s.Y),
		XG:        float64(s.XG),
	}
}
