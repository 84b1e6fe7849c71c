package pipeline

import (
	"github.com/rickgao/fpl-data/internal/api"
	"github.com/rickgao/fpl-data/internal/matcher"
	"github.com/rickgao/fpl-data/internal/model"
)

func analyticsCandidates(players []api.AnalyticsPlayer) []matcher.Candidate {
	out := make([]matcher.Candidate, 0, len(players))
	for _, p := range players {
		out = append(out, matcher.Candidate{
			ID:    int(p.ID),
			Name:  p.PlayerName,
			Teams: p.Teams(),
		})
	}
	return out
}

// catalogCandidates offers the display name first and the full name as an alias.
func catalogCandidates(catalog *model.Catalog) []matcher.Candidate {
	teams := make(map[int]string, len(catalog.Teams))
	for _, t := range catalog.Teams {
		teams[t.ID] = t.Name
	}

	out := make([]matcher.Candidate, 0, len(catalog.Entities))
	for _, e := range catalog.Entities {
		c := matcher.Candidate{ID: e.ID, Name: e.WebName}
		if full := e.FullName(); full != e.WebName {
			c.Aliases = []string{full}
		}
		if title, ok := teams[e.Team]; ok {
			c.Teams = []string{title}
		}
		out = append(out, c)
	}
	return out
}
