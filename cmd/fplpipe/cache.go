package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/fpl-data/internal/cache"
	"github.com/rickgao/fpl-data/internal/report"
	"github.com/rickgao/fpl-data/internal/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect cached artifacts",
}

var cacheLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cached artifacts",
	Args:  cobra.NoArgs,
	RunE:  runCacheLs,
}

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs from the ledger",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	cacheCmd.AddCommand(cacheLsCmd)
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to show (0 shows all)")
}

func runCacheLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	entries, err := cache.New(cfg.Cache.Dir).List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stdout, "No artifacts under %s yet. Run 'fplpipe run' to build some.\n", cfg.Cache.Dir)
		return nil
	}
	report.PrintArtifacts(os.Stdout, entries)
	return nil
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Cache.LedgerPath == "" {
		return fmt.Errorf("no ledger configured; set cache.ledger_path")
	}

	db, err := storage.Open(cfg.Cache.LedgerPath)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded yet.")
		return nil
	}
	report.PrintRuns(os.Stdout, runs)
	return nil
}
