package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rickgao/fpl-data/internal/report"
)

var leagueGameweek int

var leagueCmd = &cobra.Command{
	Use:   "league <league-id>",
	Short: "Fetch every manager's picks in a classic league",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeague,
}

func init() {
	leagueCmd.Flags().IntVar(&leagueGameweek, "gw", 0, "gameweek (defaults to the current one)")
}

func runLeague(cmd *cobra.Command, args []string) error {
	leagueID, err := strconv.Atoi(args[0])
	if err != nil || leagueID <= 0 {
		return fmt.Errorf("invalid league id %q", args[0])
	}

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
	gw := leagueGameweek
	if gw == 0 {
		gw = catalog.CurrentGameweek()
	}
	if gw == 0 {
		return fmt.Errorf("season %s has no current gameweek; pass --gw", span)
	}

	ds, rep, _, err := rt.League(ctx, span, leagueID, gw)
	if err != nil {
		return err
	}
	report.PrintLeague(os.Stdout, ds)
	if rep != nil {
		report.PrintExclusions(os.Stdout, rep.Exclusions)
	}
	return nil
}
