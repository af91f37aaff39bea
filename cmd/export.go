package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/pbp"
)

var (
	exportType    string
	exportSeason  string
	exportTeam    string
	exportOut     string
	exportNoPBP   bool
	exportWorkers int
)

// exportDoc is the top-level JSON document consumed by the season web page.
type exportDoc struct {
	GeneratedAt string             `json:"generated_at"`
	GameCount   int                `json:"game_count"`
	Filters     aggregator.Filter  `json:"filters"`
	Season      model.SeasonTables `json:"season"`
	Games       []exportGame       `json:"games,omitempty"`
}

type exportGame struct {
	Meta      model.GameMeta         `json:"meta"`
	Narrative model.GameNarrative    `json:"narrative"`
	Summary   model.NarrativeSummary `json:"summary"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export season tables and game narratives as JSON",
	Long: `Recompute the six season tables and every game's play-by-play narrative
from the stored games and write them as a single JSON document.

Example:
  hoopsmetrics export --season 2023-24 --type regular --out season.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportType, "type", "", "only games of this type")
	exportCmd.Flags().StringVar(&exportSeason, "season", "", "only games of this season label")
	exportCmd.Flags().StringVar(&exportTeam, "team", "", "only games involving this team")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportNoPBP, "no-pbp", false, "omit per-game narratives")
	exportCmd.Flags().IntVar(&exportWorkers, "workers", 0, "games analyzed in parallel (env HOOPS_WORKERS)")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	filter := aggregator.Filter{GameType: exportType, Season: exportSeason, Team: exportTeam}
	games, err := filteredGames(db, filter)
	if err != nil {
		return err
	}
	slog.Info("exporting games", "count", len(games))

	doc := exportDoc{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		GameCount:   len(games),
		Filters:     filter,
		Season:      aggregator.ProcessAll(games, cfg.Aggregator()),
	}

	if !exportNoPBP {
		narratives, err := pbp.AnalyzeAll(cmd.Context(), games, cfg.PBP(), workerCount(exportWorkers))
		if err != nil {
			return fmt.Errorf("analyze games: %w", err)
		}
		doc.Games = make([]exportGame, len(games))
		for i, g := range games {
			doc.Games[i] = exportGame{
				Meta:      g.Meta,
				Narrative: narratives[i],
				Summary:   pbp.Summarize(g.Meta.GameID, g.Plays, narratives[i]),
			}
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if exportOut == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(exportOut, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	slog.Info("wrote export", "path", exportOut)
	return nil
}
