package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rickgao/fpl-data/internal/database"
	"github.com/rickgao/fpl-data/internal/model"
	"github.com/rickgao/fpl-data/internal/pipeline"
	"github.com/rickgao/fpl-data/internal/writer"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upsert the master dataset and match table into Postgres",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	catalog, span, err := rt.Catalog(ctx)
	if err != nil {
		return err
	}
	master, _, _, err := rt.Master(ctx, catalog, span)
	if err != nil {
		return err
	}
	table, _, err := rt.Matches(ctx, catalog, span)
	if err != nil {
		return err
	}
	return exportDatasets(ctx, rt, master, table)
}

func exportDatasets(ctx context.Context, rt *pipeline.Runtime, master *model.MasterDataset, table *model.MatchTable) error {
	dbCfg := rt.Config.Database
	if !dbCfg.Enabled() {
		return fmt.Errorf("no export database configured; set database.host")
	}

	rt.Logger.Info("connecting to database",
		"host", dbCfg.Host,
		"port", dbCfg.Port,
		"database", dbCfg.Name,
	)
	pool, err := database.Connect(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	w := writer.New(writer.DefaultConfig(), pool, rt.Logger)
	if _, err := w.WriteMaster(ctx, master); err != nil {
		return err
	}
	if _, err := w.WriteMatches(ctx, table); err != nil {
		return err
	}

	stats := w.Stats()
	rt.Logger.Info("export complete", "upserts", stats.Upserts, "batches", stats.Batches)
	return nil
}
