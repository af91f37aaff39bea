package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the games database",
	Long: `Run an arbitrary SQL query against the games database and print results as a table.

Schema overview:
  games(game_id, date, date_key, season, game_type, away_team, home_team,
    away_score, home_score, source_file, source_hash)
  player_games(game_id, row_idx, side, name, player_id, starter, minutes,
    pts, trb, ast, stl, blk, tov, pf, fg, fga, fg3, fg3a, ft, fta, orb, drb,
    plus_minus, has_plus_minus)
  plays(game_id, seq, clock, period, team, side, player, text, play_type,
    scoring, points, away_score, home_score)

Only read statements (SELECT, WITH, PRAGMA, EXPLAIN) are accepted.
Example: hoopsmetrics sql "SELECT name, SUM(pts) FROM player_games GROUP BY name ORDER BY 2 DESC LIMIT 10"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

