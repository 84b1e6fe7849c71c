package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/fpl-data/internal/report"
)

var runWithExport bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build master, team and match datasets for the current season",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runWithExport, "export", false, "export the master dataset and match table to Postgres afterwards")
}

func runRun(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	sum, err := rt.Run(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintSummary(os.Stdout, sum)
	report.PrintExclusions(os.Stdout, sum.Exclusions)

	if runWithExport {
		return exportDatasets(cmd.Context(), rt, sum.Master, sum.Matches)
	}
	return nil
}
