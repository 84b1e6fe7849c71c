// Package report renders run results as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rickgao/fpl-data/internal/cache"
	"github.com/rickgao/fpl-data/internal/engine"
	"github.com/rickgao/fpl-data/internal/model"
	"github.com/rickgao/fpl-data/internal/pipeline"
	"github.com/rickgao/fpl-data/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintSummary prints a one-line header and the per-artifact cache outcomes.
func PrintSummary(w io.Writer, s *pipeline.Summary) {
	fmt.Fprintf(w, "\nRun: %s  |  Season: %s  |  Built: %d  |  Excluded: %d  |  Unmatched: %d  |  Took: %s\n\n",
		s.RunID, s.Season, s.Built, s.Excluded, s.Unmatched, s.Duration.Round(time.Millisecond))

	keys := make([]string, 0, len(s.CacheOutcomes))
	for k := range s.CacheOutcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := newTable(w)
	table.Header("ARTIFACT", "OUTCOME")
	for _, k := range keys {
		table.Append(k, string(s.CacheOutcomes[k]))
	}
	table.Render()
}

// PrintExclusions lists entities left out of a build with their cause.
func PrintExclusions(w io.Writer, exclusions []engine.Exclusion) {
	if len(exclusions) == 0 {
		return
	}
	table := newTable(w)
	table.Header("ENTITY", "CAUSE", "ERROR")
	for _, ex := range exclusions {
		msg := ""
		if ex.Err != nil {
			msg = ex.Err.Error()
		}
		table.Append(strconv.Itoa(ex.EntityID), string(ex.Cause), msg)
	}
	table.Render()
}

// PrintMatches prints the correspondence table. With unmatchedOnly set,
// accepted records are skipped.
func PrintMatches(w io.Writer, t *model.MatchTable, unmatchedOnly bool) {
	table := newTable(w)
	table.Header("SOURCE", "NAME", "TARGET", "MATCHED_NAME", "SCORE", "OUTCOME")
	for _, r := range t.Records {
		if unmatchedOnly && r.Outcome.Accepted() {
			continue
		}
		target := "—"
		if r.TargetID != 0 {
			target = strconv.Itoa(r.TargetID)
		}
		table.Append(
			strconv.Itoa(r.SourceID),
			r.SourceName,
			target,
			r.TargetName,
			fmt.Sprintf("%.2f", r.Confidence),
			string(r.Outcome),
		)
	}
	table.Render()

	counts := t.Counts()
	fmt.Fprintf(w, "matched %d  resolved %d  below_threshold %d  ambiguous %d  no_team %d\n",
		counts[model.OutcomeMatched], counts[model.OutcomeResolved],
		counts[model.OutcomeBelowThreshold], counts[model.OutcomeAmbiguous], counts[model.OutcomeNoTeam])
}

// PrintMaster prints the top entities by mean points over the full history.
// limit <= 0 prints every record.
func PrintMaster(w io.Writer, ds *model.MasterDataset, pointsField string, limit int) {
	recs := make([]model.MasterRecord, 0, len(ds.Records))
	for _, r := range ds.Records {
		recs = append(recs, r)
	}
	mean := func(r *model.MasterRecord) float64 {
		ws, _ := r.Stat(pointsField, 0)
		return ws.Mean
	}
	sort.Slice(recs, func(i, j int) bool {
		mi, mj := mean(&recs[i]), mean(&recs[j])
		if mi != mj {
			return mi > mj
		}
		return recs[i].ID < recs[j].ID
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	table := newTable(w)
	table.Header("ID", "NAME", "TEAM", "POS", "GP", "PTS/GP", "LAST3", "90s", "60s")
	for i := range recs {
		r := &recs[i]
		last3, _ := r.Stat(pointsField, 3)
		table.Append(
			strconv.Itoa(r.ID),
			r.Name,
			r.TeamName,
			r.Position,
			strconv.Itoa(len(r.Rounds)),
			fmt.Sprintf("%.2f", mean(r)),
			fmt.Sprintf("%.2f", last3.Mean),
			r.Full90,
			r.Full60,
		)
	}
	table.Render()
}

// PrintLeague prints each manager's gameweek result.
func PrintLeague(w io.Writer, ds *model.LeagueDataset) {
	fmt.Fprintf(w, "\nLeague: %s (%d)  |  Gameweek: %d  |  Managers: %d  |  Excluded: %d\n\n",
		ds.Name, ds.League, ds.Gameweek, len(ds.Managers), len(ds.Excluded))

	table := newTable(w)
	table.Header("RANK", "TEAM", "MANAGER", "GW", "HIT", "CHIP", "TOTAL")
	for _, m := range ds.Managers {
		chip := m.ActiveChip
		if chip == "" {
			chip = "—"
		}
		table.Append(
			strconv.Itoa(m.Rank),
			m.EntryName,
			m.PlayerName,
			strconv.Itoa(m.Points),
			strconv.Itoa(m.Transfers),
			chip,
			strconv.Itoa(m.Total),
		)
	}
	table.Render()
}

// PrintArtifacts lists cached artifacts.
func PrintArtifacts(w io.Writer, entries []cache.Entry) {
	table := newTable(w)
	table.Header("PROVIDER", "SEASON", "CATEGORY", "NAME", "SIZE", "MODIFIED")
	for _, e := range entries {
		table.Append(
			e.Key.Provider,
			e.Key.Season,
			e.Key.Category,
			e.Key.Name,
			humanize.IBytes(uint64(e.Size)),
			time.Unix(e.Mtime, 0).UTC().Format(time.DateTime),
		)
	}
	table.Render()
}

// PrintRuns lists ledger runs.
func PrintRuns(w io.Writer, runs []storage.Run) {
	table := newTable(w)
	table.Header("RUN", "SEASON", "STARTED", "TOOK", "STATUS", "BUILT", "EXCL", "UNMATCHED")
	for _, r := range runs {
		took := "—"
		if !r.FinishedAt.IsZero() {
			took = r.FinishedAt.Sub(r.StartedAt).String()
		}
		status := r.Status
		if r.Error != "" {
			status += ": " + r.Error
		}
		table.Append(
			r.ID,
			r.Season,
			r.StartedAt.Format(time.DateTime),
			took,
			status,
			strconv.Itoa(r.Built),
			strconv.Itoa(r.Excluded),
			strconv.Itoa(r.Unmatched),
		)
	}
	table.Render()
}
