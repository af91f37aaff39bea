package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/report"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var (
	seasonTable     string
	seasonType      string
	seasonSeason    string
	seasonTeam      string
	seasonTop       int
	seasonMetric    string
	seasonMinGames  int
	seasonThreshold int
)

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Aggregate stored games into season tables",
	Long: `Recompute the season tables from every stored game matching the filters.

Tables: players, games, splits, highs, triples, doubles, all (default).
Use --top with --metric to print a leaderboard instead.`,
	Args: cobra.NoArgs,
	RunE: runSeason,
}

func init() {
	seasonCmd.Flags().StringVar(&seasonTable, "table", "all", "table to print: players, games, splits, highs, triples, doubles, all")
	seasonCmd.Flags().StringVar(&seasonType, "type", "", "only games of this type (e.g. regular, playoff)")
	seasonCmd.Flags().StringVar(&seasonSeason, "season", "", "only games of this season label")
	seasonCmd.Flags().StringVar(&seasonTeam, "team", "", "only games involving this team")
	seasonCmd.Flags().IntVar(&seasonTop, "top", 0, "print the top N players by --metric")
	seasonCmd.Flags().StringVar(&seasonMetric, "metric", "ppg",
		"leaderboard metric: "+strings.Join(aggregator.MetricNames(), ", "))
	seasonCmd.Flags().IntVar(&seasonMinGames, "min-games", 1, "minimum games played for the leaderboard")
	seasonCmd.Flags().IntVar(&seasonThreshold, "milestone", 0, "double-digit threshold for milestones (env HOOPS_MILESTONE_THRESHOLD)")
}

func runSeason(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := filteredGames(db, aggregator.Filter{
		GameType: seasonType,
		Season:   seasonSeason,
		Team:     seasonTeam,
	})
	if err != nil {
		return err
	}
	n := len(games)
	if n == 0 {
		fmt.Fprintln(os.Stdout, "No games match. Run 'hoopsmetrics ingest <game.json>' or relax the filters.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "\n=== Season (%d games) ===\n", n)
	tables := aggregator.ProcessAll(games, aggregatorOptions())

	if seasonTop > 0 {
		top, err := aggregator.TopBy(tables.Players, seasonMetric, seasonTop, seasonMinGames)
		if err != nil {
			return err
		}
		report.Section(os.Stdout, fmt.Sprintf("Top %d by %s", seasonTop, strings.ToLower(seasonMetric)))
		report.PrintSeasonLines(os.Stdout, top)
		return nil
	}

	switch strings.ToLower(seasonTable) {
	case "all":
		report.PrintSeasonTables(os.Stdout, tables)
	case "players":
		report.PrintSeasonLines(os.Stdout, tables.Players)
	case "games":
		report.PrintPlayerGames(os.Stdout, tables.PlayerGames)
	case "splits":
		report.PrintStartersVsBench(os.Stdout, tables.StartersVsBench)
	case "highs":
		report.PrintSeasonHighs(os.Stdout, tables.SeasonHighs)
	case "triples":
		report.PrintMilestones(os.Stdout, tables.TripleDoubles)
	case "doubles":
		report.PrintMilestones(os.Stdout, tables.DoubleDoubles)
	default:
		return fmt.Errorf("unknown table %q", seasonTable)
	}
	return nil
}

// filteredGames loads the stored corpus, oldest first, and applies f.
func filteredGames(db *storage.DB, f aggregator.Filter) ([]model.Game, error) {
	games, err := db.LoadCorpus()
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	return aggregator.FilterGames(games, f), nil
}

func aggregatorOptions() aggregator.Options {
	opts := cfg.Aggregator()
	if seasonThreshold > 0 {
		opts.MilestoneThreshold = seasonThreshold
	}
	return opts
}
