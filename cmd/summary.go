package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/report"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all games stored in the database:
game count, date range, team records and game type distribution.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalGames == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'hoopsmetrics ingest <game.json>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Games stored  : %d\n", ov.TotalGames)
	fmt.Fprintf(os.Stdout, "  Date range    : %s → %s\n", ov.EarliestGame, ov.LatestGame)
	fmt.Fprintf(os.Stdout, "  Teams         : %d\n", ov.UniqueTeams)
	fmt.Fprintf(os.Stdout, "  Players seen  : %d\n", ov.UniquePlayers)
	fmt.Fprintf(os.Stdout, "  Box rows      : %d\n", ov.PlayerRows)
	fmt.Fprintf(os.Stdout, "  Plays         : %d\n", ov.TotalPlays)

	records, err := db.GetTeamRecords()
	if err != nil {
		return fmt.Errorf("get team records: %w", err)
	}
	report.Section(os.Stdout, "Teams")
	report.PrintTeamRecords(os.Stdout, records)

	// Game type breakdown, only shown when more than one type is present.
	types, err := db.GetGameTypeCounts()
	if err != nil {
		return fmt.Errorf("get game types: %w", err)
	}
	if len(types) > 1 {
		report.Section(os.Stdout, "Game Types")
		report.PrintTypeCounts(os.Stdout, types)
	}
	return nil
}
