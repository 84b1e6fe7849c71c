package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/fpl-data/internal/report"
)

var buildTop int

var buildCmd = &cobra.Command{
	Use:       "build {master|teams|detail}",
	Short:     "Build or read back one dataset",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"master", "teams", "detail"},
	RunE:      runBuild,
}

func init() {
	buildCmd.Flags().IntVar(&buildTop, "top", 20, "rows to print for the master dataset (0 prints all)")
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	switch args[0] {
	case "master":
		ds, rep, outcome, err := rt.Master(ctx, catalog, span)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "master %s: %d records, %d excluded (%s)\n", span, len(ds.Records), len(ds.Excluded), outcome)
		report.PrintMaster(os.Stdout, ds, rt.Config.Pipeline.PointsField, buildTop)
		if rep != nil {
			report.PrintExclusions(os.Stdout, rep.Exclusions)
		}
	case "teams":
		ds, outcome, err := rt.Teams(ctx, catalog, span)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "teams %s: %d records (%s)\n", span, len(ds.Records), outcome)
	case "detail":
		table, _, err := rt.Matches(ctx, catalog, span)
		if err != nil {
			return err
		}
		ds, rep, outcome, err := rt.Detail(ctx, table, span)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "detail %s: %d records, %d excluded (%s)\n", span, len(ds.Records), len(ds.Excluded), outcome)
		if rep != nil {
			report.PrintExclusions(os.Stdout, rep.Exclusions)
		}
	}
	return nil
}
