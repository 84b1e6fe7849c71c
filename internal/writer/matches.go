package writer

import (
	"context"
	"fmt"

	"github.com/rickgao/fpl-data/internal/model"
)

const upsertMatch = `
	INSERT INTO player_matches (season, source_id, source_name, target_id, target_name, confidence, outcome)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (season, source_id) DO UPDATE SET
		source_name = EXCLUDED.source_name,
		target_id = EXCLUDED.target_id,
		target_name = EXCLUDED.target_name,
		confidence = EXCLUDED.confidence,
		outcome = EXCLUDED.outcome
`

// WriteMatches upserts the correspondence table, unmatched records included.
func (w *Writer) WriteMatches(ctx context.Context, t *model.MatchTable) (int, error) {
	if t == nil || len(t.Records) == 0 {
		return 0, nil
	}

	stmts := make([]queued, 0, len(t.Records))
	for _, r := range t.Records {
		stmts = append(stmts, queued{sql: upsertMatch, args: []any{
			t.Season, r.SourceID, r.SourceName, r.TargetID, r.TargetName, r.Confidence, string(r.Outcome),
		}})
	}

	n, err := w.send(ctx, "player_matches", stmts)
	if err != nil {
		return n, fmt.Errorf("write matches %s: %w", t.Season, err)
	}
	w.logger.Info("exported match table", "season", t.Season, "rows", n)
	return n, nil
}
