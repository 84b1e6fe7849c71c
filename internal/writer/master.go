package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/rickgao/fpl-data/internal/model"
)

const upsertMaster = `
	INSERT INTO master_records (season, entity_id, name, full_name, team_id, team_name, position,
		periods, full_90, full_60, history, rolling, returns, upcoming, built_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (season, entity_id) DO UPDATE SET
		name = EXCLUDED.name,
		full_name = EXCLUDED.full_name,
		team_id = EXCLUDED.team_id,
		team_name = EXCLUDED.team_name,
		position = EXCLUDED.position,
		periods = EXCLUDED.periods,
		full_90 = EXCLUDED.full_90,
		full_60 = EXCLUDED.full_60,
		history = EXCLUDED.history,
		rolling = EXCLUDED.rolling,
		returns = EXCLUDED.returns,
		upcoming = EXCLUDED.upcoming,
		built_at = EXCLUDED.built_at
`

type masterRow struct {
	Season   string
	EntityID int
	Name     string
	FullName string
	TeamID   int
	TeamName string
	Position string
	Periods  int
	Full90   string
	Full60   string
	History  []byte
	Rolling  []byte
	Returns  []byte
	Upcoming []byte
	BuiltAt  time.Time
}

func (r masterRow) args() []any {
	return []any{r.Season, r.EntityID, r.Name, r.FullName, r.TeamID, r.TeamName, r.Position,
		r.Periods, r.Full90, r.Full60, r.History, r.Rolling, r.Returns, r.Upcoming, r.BuiltAt}
}

func toMasterRow(season string, builtAt time.Time, rec model.MasterRecord) (masterRow, error) {
	row := masterRow{
		Season:   season,
		EntityID: rec.ID,
		Name:     rec.Name,
		FullName: rec.FullName,
		TeamID:   rec.TeamID,
		TeamName: rec.TeamName,
		Position: rec.Position,
		Periods:  len(rec.Rounds),
		Full90:   rec.Full90,
		Full60:   rec.Full60,
		BuiltAt:  builtAt,
	}

	upcoming := rec.Upcoming
	if upcoming == nil {
		upcoming = []model.Fixture{}
	}
	returns := rec.Returns
	if returns == nil {
		returns = []int{}
	}

	var err error
	if row.History, err = json.Marshal(rec.History); err != nil {
		return row, fmt.Errorf("entity %d history: %w", rec.ID, err)
	}
	if row.Rolling, err = json.Marshal(rec.Rolling); err != nil {
		return row, fmt.Errorf("entity %d rolling: %w", rec.ID, err)
	}
	if row.Returns, err = json.Marshal(returns); err != nil {
		return row, fmt.Errorf("entity %d returns: %w", rec.ID, err)
	}
	if row.Upcoming, err = json.Marshal(upcoming); err != nil {
		return row, fmt.Errorf("entity %d upcoming: %w", rec.ID, err)
	}
	return row, nil
}

// WriteMaster upserts every record of the dataset, in entity id order.
func (w *Writer) WriteMaster(ctx context.Context, ds *model.MasterDataset) (int, error) {
	if ds == nil || len(ds.Records) == 0 {
		return 0, nil
	}

	ids := make([]int, 0, len(ds.Records))
	for id := range ds.Records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	stmts := make([]queued, 0, len(ids))
	for _, id := range ids {
		row, err := toMasterRow(ds.Season, ds.BuiltAt, ds.Records[id])
		if err != nil {
			return 0, err
		}
		stmts = append(stmts, queued{sql: upsertMaster, args: row.args()})
	}

	n, err := w.send(ctx, "master_records", stmts)
	if err != nil {
		return n, fmt.Errorf("write master %s: %w", ds.Season, err)
	}
	w.logger.Info("exported master records", "season", ds.Season, "rows", n)
	return n, nil
}
