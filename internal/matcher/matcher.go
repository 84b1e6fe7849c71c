package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/rickgao/fpl-data/internal/model"
)

// Default thresholds.
const (
	DefaultThreshold     = 0.40
	DefaultTeamThreshold = 0.75
	maxOptions           = 5
	tieEpsilon           = 1e-9
)

// Candidate is one entity as seen by one provider.
type Candidate struct {
	ID      int
	Name    string
	Aliases []string // other spellings, e.g. the full name
	Teams   []string // team titles; more than one after a mid-season transfer
}

func (c Candidate) names() []string {
	return append([]string{c.Name}, c.Aliases...)
}

// Config holds matcher thresholds.
type Config struct {
	Threshold     float64
	TeamThreshold float64
}

// Observer receives one event per match record.
type Observer interface {
	ObserveMatch(outcome string)
}

// Matcher builds correspondence tables.
type Matcher struct {
	cfg      Config
	resolver Resolver
	logger   *slog.Logger
	observer Observer
}

// New creates a Matcher. A nil resolver rejects everything it is offered.
func New(cfg Config, resolver Resolver, logger *slog.Logger) *Matcher {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.TeamThreshold <= 0 {
		cfg.TeamThreshold = DefaultTeamThreshold
	}
	if resolver == nil {
		resolver = RejectResolver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{cfg: cfg, resolver: resolver, logger: logger}
}

// SetObserver reports every record's outcome to o.
func (m *Matcher) SetObserver(o Observer) {
	m.observer = o
}

// Match links every source to at most one target.
func (m *Matcher) Match(ctx context.Context, sources, targets []Candidate) (*model.MatchTable, error) {
	targets = append([]Candidate(nil), targets...)
	sort.Slice(targets, func(i, j int) bool { return targets[i].ID < targets[j].ID })

	teamMap := MatchTeams(teamTitles(sources), teamTitles(targets), m.cfg.TeamThreshold)
	byTeam := make(map[string][]Candidate)
	for _, t := range targets {
		for _, title := range t.Teams {
			byTeam[title] = append(byTeam[title], t)
		}
	}

	table := &model.MatchTable{Records: make([]model.MatchRecord, 0, len(sources))}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pool := narrow(src, teamMap, byTeam)
		rec, options := m.score(src, pool)
		if rec.Outcome == model.OutcomeNoTeam {
			options = m.rank(src, targets)
		}

		if !rec.Outcome.Accepted() {
			id, ok, err := m.resolver.Resolve(ctx, src, rec.Outcome, options)
			if err != nil {
				return nil, fmt.Errorf("resolve %d: %w", src.ID, err)
			}
			if ok {
				rec = resolved(rec, id, options)
			}
		}

		if m.observer != nil {
			m.observer.ObserveMatch(string(rec.Outcome))
		}
		table.Records = append(table.Records, rec)
	}

	for target, srcs := range table.Duplicates() {
		m.logger.Warn("target matched by several sources",
			"target_id", target,
			"source_ids", srcs,
		)
	}

	counts := table.Counts()
	m.logger.Info("match complete",
		"sources", len(sources),
		"targets", len(targets),
		"teams_resolved", len(teamMap),
		"matched", counts[model.OutcomeMatched],
		"resolved", counts[model.OutcomeResolved],
		"unmatched", len(table.Unmatched()),
	)
	return table, nil
}

// narrow returns the targets sharing a resolved team with src, deduplicated.
func narrow(src Candidate, teamMap map[string]string, byTeam map[string][]Candidate) []Candidate {
	seen := make(map[int]bool)
	var pool []Candidate
	for _, title := range src.Teams {
		resolved, ok := teamMap[title]
		if !ok {
			continue
		}
		for _, t := range byTeam[resolved] {
			if !seen[t.ID] {
				seen[t.ID] = true
				pool = append(pool, t)
			}
		}
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	return pool
}

// score picks the best candidate from pool and classifies the outcome.
func (m *Matcher) score(src Candidate, pool []Candidate) (model.MatchRecord, []Option) {
	rec := model.MatchRecord{SourceID: src.ID, SourceName: src.Name}
	if len(pool) == 0 {
		rec.Outcome = model.OutcomeNoTeam
		return rec, nil
	}

	options := m.rank(src, pool)
	best := options[0]
	rec.Confidence = best.Score

	switch {
	case best.Score < m.cfg.Threshold:
		rec.Outcome = model.OutcomeBelowThreshold
	case len(options) > 1 && best.Score-options[1].Score < tieEpsilon:
		rec.Outcome = model.OutcomeAmbiguous
	default:
		rec.Outcome = model.OutcomeMatched
		rec.TargetID = best.ID
		rec.TargetName = best.Name
	}
	return rec, options
}

// rank scores every candidate and returns the best few, highest first.
func (m *Matcher) rank(src Candidate, pool []Candidate) []Option {
	options := make([]Option, 0, len(pool))
	for _, c := range pool {
		options = append(options, Option{Candidate: c, Score: bestScore(src, c)})
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].Score > options[j].Score })
	if len(options) > maxOptions {
		options = options[:maxOptions]
	}
	return options
}

func bestScore(a, b Candidate) float64 {
	best := 0.0
	for _, x := range a.names() {
		nx := Normalize(x)
		for _, y := range b.names() {
			if s := ratio(nx, Normalize(y)); s > best {
				best = s
			}
		}
	}
	return best
}

func resolved(rec model.MatchRecord, id int, options []Option) model.MatchRecord {
	rec.Outcome = model.OutcomeResolved
	rec.TargetID = id
	for _, o := range options {
		if o.ID == id {
			rec.TargetName = o.Name
			rec.Confidence = o.Score
		}
	}
	return rec
}

func teamTitles(cs []Candidate) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range cs {
		for _, t := range c.Teams {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}
