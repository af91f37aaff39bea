package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/pbp"
	"github.com/pable/go-hoops-metrics/internal/report"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var (
	pbpSummaryOnly bool
	pbpMinRun      int
	pbpMinStreak   int
	pbpWorkers     int
)

var pbpCmd = &cobra.Command{
	Use:   "pbp [id-prefix...]",
	Short: "Analyze play-by-play: runs, streaks, comebacks, clutch and go-ahead shots",
	Long: `Run the play-by-play analyzer over stored games and print each game's
narrative. With no arguments every stored game is analyzed.`,
	RunE: runPBP,
}

func init() {
	pbpCmd.Flags().BoolVar(&pbpSummaryOnly, "summary", false, "print only the headline summary per game")
	pbpCmd.Flags().IntVar(&pbpMinRun, "min-run", 0, "minimum team run in points (env HOOPS_MIN_RUN_POINTS)")
	pbpCmd.Flags().IntVar(&pbpMinStreak, "min-streak", 0, "minimum player streak in points (env HOOPS_MIN_STREAK_POINTS)")
	pbpCmd.Flags().IntVar(&pbpWorkers, "workers", 0, "games analyzed in parallel (env HOOPS_WORKERS)")
}

func runPBP(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := loadSelectedGames(db, args)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'hoopsmetrics ingest <game.json>' to add one.")
		return nil
	}

	narratives, err := pbp.AnalyzeAll(cmd.Context(), games, pbpOptions(), workerCount(pbpWorkers))
	if err != nil {
		return fmt.Errorf("analyze games: %w", err)
	}

	for i, g := range games {
		if len(g.Plays) == 0 {
			slog.Info("game has no play-by-play", "game_id", g.Meta.GameID)
		}
		report.PrintGameHeader(os.Stdout, g.Meta)
		if pbpSummaryOnly {
			report.PrintSummary(os.Stdout, pbp.Summarize(g.Meta.GameID, g.Plays, narratives[i]))
			continue
		}
		report.PrintNarrative(os.Stdout, narratives[i])
	}
	return nil
}

// pbpOptions returns the analyzer options from config with flag overrides.
func pbpOptions() pbp.Options {
	opts := cfg.PBP()
	if pbpMinRun > 0 {
		opts.MinRunPoints = pbpMinRun
	}
	if pbpMinStreak > 0 {
		opts.MinStreakPoints = pbpMinStreak
	}
	return opts
}

func workerCount(flag int) int {
	if flag > 0 {
		return flag
	}
	return cfg.Workers
}

// loadSelectedGames resolves id prefixes to games, or loads the whole corpus
// when no prefix is given.
func loadSelectedGames(db *storage.DB, prefixes []string) ([]model.Game, error) {
	if len(prefixes) == 0 {
		games, err := db.LoadCorpus()
		if err != nil {
			return nil, fmt.Errorf("load games: %w", err)
		}
		return games, nil
	}
	games := make([]model.Game, 0, len(prefixes))
	for _, p := range prefixes {
		g, err := db.GetGameByPrefix(p)
		if err != nil {
			return nil, fmt.Errorf("find game %q: %w", p, err)
		}
		if g == nil {
			return nil, fmt.Errorf("no game found with prefix %q", p)
		}
		games = append(games, *g)
	}
	return games, nil
}
