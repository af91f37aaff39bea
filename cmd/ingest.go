package cmd

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/parser"
	"github.com/pable/go-hoops-metrics/internal/report"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var (
	ingestForce bool
	ingestType  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <game.json|dir>...",
	Short: "Ingest game JSON files and store them",
	Long: `Read parsed game documents (box score and play-by-play) and store them in
the database. Directories are walked for *.json files. Games already stored
are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestForce, "force", "f", false, "re-ingest games that are already stored")
	ingestCmd.Flags().StringVar(&ingestType, "type", "", "override the game type label (e.g. regular, playoff)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	files, err := collectGameFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stdout, "No .json game files found.")
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var stored, skipped, failed int
	for _, path := range files {
		ok, err := ingestFile(db, path)
		switch {
		case err != nil:
			failed++
			slog.Warn("skipping file", "path", path, "err", err)
		case ok:
			stored++
		default:
			skipped++
		}
	}

	fmt.Fprintf(os.Stdout, "\nIngested %d game(s), skipped %d already stored, %d failed.\n", stored, skipped, failed)
	if stored == 0 && failed > 0 {
		return fmt.Errorf("no games ingested (%d failed)", failed)
	}
	return nil
}

// ingestFile parses and stores one file. It reports false when the game was
// already stored and --force is off.
func ingestFile(db *storage.DB, path string) (bool, error) {
	g, err := parser.ParseGameFile(path)
	if err != nil {
		return false, err
	}
	if ingestType != "" {
		g.Meta.GameType = ingestType
	}

	exists, err := db.GameExists(g.Meta.GameID)
	if err != nil {
		return false, fmt.Errorf("check game: %w", err)
	}
	if exists && !ingestForce {
		slog.Info("game already stored", "game_id", g.Meta.GameID, "path", path)
		return false, nil
	}

	if err := db.InsertGame(g); err != nil {
		return false, fmt.Errorf("insert game: %w", err)
	}
	slog.Debug("stored game", "game_id", g.Meta.GameID, "players", len(g.Players), "plays", len(g.Plays))
	report.PrintGameHeader(os.Stdout, g.Meta)
	return true, nil
}

// collectGameFiles expands directories into the *.json files they contain.
func collectGameFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return files, nil
}
