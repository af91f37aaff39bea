package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored games",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := db.ListGames()
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'hoopsmetrics ingest <game.json>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-10s  %-10s  %-22s  %-22s  %7s  %5s  %5s\n",
		"GAME", "DATE", "TYPE", "AWAY", "HOME", "SCORE", "ROWS", "PLAYS")
	fmt.Fprintf(os.Stdout, "%-12s  %-10s  %-10s  %-22s  %-22s  %7s  %5s  %5s\n",
		"────────────", "──────────", "──────────", "──────────────────────", "──────────────────────", "───────", "─────", "─────")
	for _, g := range games {
		score := fmt.Sprintf("%d-%d", g.AwayScore, g.HomeScore)
		fmt.Fprintf(os.Stdout, "%-12s  %-10s  %-10s  %-22s  %-22s  %7s  %5d  %5d\n",
			clip(g.GameID, 12), g.Date, clip(g.GameType, 10), clip(g.AwayTeam, 22), clip(g.HomeTeam, 22),
			score, g.PlayerRows, g.PlayCount)
	}
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
