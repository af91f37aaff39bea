package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/report"
)

var gameCmd = &cobra.Command{
	Use:   "game <id-prefix>",
	Short: "Show the box score of a stored game",
	Args:  cobra.ExactArgs(1),
	RunE:  runGame,
}

func runGame(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := db.GetGameByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("find game: %w", err)
	}
	if g == nil {
		return fmt.Errorf("no game found with prefix %q", args[0])
	}

	report.PrintGameHeader(os.Stdout, g.Meta)
	report.PrintBoxScore(os.Stdout, g)
	return nil
}
