package model

import (
	"sort"
	"strings"
	"time"
)

// Position codes as issued by the fantasy platform (element_type).
const (
	PositionGoalkeeper = 1
	PositionDefender   = 2
	PositionMidfielder = 3
	PositionForward    = 4
)

// PositionName returns the short label for an element type code.
func PositionName(elementType int) string {
	switch elementType {
	case PositionGoalkeeper:
		return "GKP"
	case PositionDefender:
		return "DEF"
	case PositionMidfielder:
		return "MID"
	case PositionForward:
		return "FWD"
	default:
		return "UNK"
	}
}

// Entity is one player from the catalog snapshot.
type Entity struct {
	ID          int    `json:"id"`
	WebName     string `json:"web_name"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	Team        int    `json:"team"`
	ElementType int    `json:"element_type"`
	NowCost     int    `json:"now_cost"` // tenths of a unit (55 = 5.5)
	Status      string `json:"status"`
}

// FullName joins first and second name, falling back to the display name.
func (e Entity) FullName() string {
	full := strings.TrimSpace(e.FirstName + " " + e.SecondName)
	if full == "" {
		return e.WebName
	}
	return full
}

// Team is one club from the catalog snapshot.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Gameweek is one scoring period with its transfer deadline.
type Gameweek struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Deadline  time.Time `json:"deadline_time"`
	Finished  bool      `json:"finished"`
	IsCurrent bool      `json:"is_current"`
}

// Catalog is the full roster snapshot downloaded once per run.
type Catalog struct {
	Entities  []Entity   `json:"entities"`
	Teams     []Team     `json:"teams"`
	Gameweeks []Gameweek `json:"gameweeks"`
}

// EntityIDs returns every entity id in ascending order.
func (c *Catalog) EntityIDs() []int {
	ids := make([]int, 0, len(c.Entities))
	for _, e := range c.Entities {
		ids = append(ids, e.ID)
	}
	sort.Ints(ids)
	return ids
}

// EntityByID finds an entity by id.
func (c *Catalog) EntityByID(id int) (Entity, bool) {
	for _, e := range c.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// TeamByID finds a team by id.
func (c *Catalog) TeamByID(id int) (Team, bool) {
	for _, t := range c.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// CurrentGameweek returns the gameweek flagged current, or the last finished one.
func (c *Catalog) CurrentGameweek() int {
	last := 0
	for _, gw := range c.Gameweeks {
		if gw.IsCurrent {
			return gw.ID
		}
		if gw.Finished && gw.ID > last {
			last = gw.ID
		}
	}
	return last
}
