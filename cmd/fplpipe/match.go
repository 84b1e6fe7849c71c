package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/fpl-data/internal/matcher"
	"github.com/rickgao/fpl-data/internal/pipeline"
	"github.com/rickgao/fpl-data/internal/report"
)

var (
	matchUnmatched   bool
	matchInteractive bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Link analytics players to fantasy entities",
	Args:  cobra.NoArgs,
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchUnmatched, "unmatched", false, "print only records that did not link")
	matchCmd.Flags().BoolVarP(&matchInteractive, "interactive", "i", false, "prompt for every unsettled record")
}

func runMatch(cmd *cobra.Command, args []string) error {
	var opts []pipeline.Option
	if matchInteractive {
		opts = append(opts, pipeline.WithResolver(&matcher.PromptResolver{In: os.Stdin, Out: os.Stderr}))
	}
	rt, err := setup(cmd, opts...)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	catalog, span, err := rt.Catalog(ctx)
	if err != nil {
		return err
	}
	table, _, err := rt.Matches(ctx, catalog, span)
	if err != nil {
		return err
	}
	report.PrintMatches(os.Stdout, table, matchUnmatched)
	return nil
}
