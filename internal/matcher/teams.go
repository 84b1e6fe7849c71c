package matcher

import "sort"

// teamVariants maps canonical titles to the short forms either provider uses.
var teamVariants = map[string][]string{
	"manchester city":         {"man city"},
	"manchester united":       {"man utd", "man united"},
	"tottenham":               {"spurs", "tottenham hotspur"},
	"nottingham forest":       {"nottm forest", "nott m forest"},
	"wolverhampton wanderers": {"wolves"},
	"sheffield united":        {"sheffield utd"},
	"newcastle united":        {"newcastle"},
	"west ham":                {"west ham united"},
	"brighton":                {"brighton and hove albion", "brighton hove albion"},
	"leicester":               {"leicester city"},
	"leeds":                   {"leeds united"},
	"ipswich":                 {"ipswich town"},
	"luton":                   {"luton town"},
}

// canonicalTeam maps a normalized title to its canonical form.
func canonicalTeam(title string) string {
	n := Normalize(title)
	for canon, variants := range teamVariants {
		if n == canon {
			return canon
		}
		for _, v := range variants {
			if n == v {
				return canon
			}
		}
	}
	return n
}

// MatchTeams maps each source team title to a target team title. Exact and
// known-variant matches win; otherwise the most similar target at or above
// threshold is taken. Titles that resolve to nothing are absent from the map.
func MatchTeams(sources, targets []string, threshold float64) map[string]string {
	targets = append([]string(nil), targets...)
	sort.Strings(targets)

	canon := make(map[string]string, len(targets))
	for _, t := range targets {
		canon[t] = canonicalTeam(t)
	}

	out := make(map[string]string, len(sources))
	for _, s := range sources {
		cs := canonicalTeam(s)

		var best string
		bestScore := -1.0
		for _, t := range targets {
			if canon[t] == cs {
				best, bestScore = t, 1
				break
			}
			if score := ratio(cs, canon[t]); score > bestScore {
				best, bestScore = t, score
			}
		}
		if best != "" && bestScore >= threshold {
			out[s] = best
		}
	}
	return out
}
