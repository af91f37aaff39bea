package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dropForce bool
	dropGame  string
)

// dropCmd deletes the games database, or a single stored game.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the games database or one stored game",
	Long: `Permanently delete the SQLite games database. All stored games will be lost.
Re-ingest your game files afterwards to rebuild.

With --game only that game's box score rows and plays are removed.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropGame, "game", "", "delete only the game with this id")
}

func runDrop(cmd *cobra.Command, args []string) error {
	target := dbPath
	if dropGame != "" {
		target = fmt.Sprintf("game %s in %s", dropGame, dbPath)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", target)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	if dropGame != "" {
		return dropOneGame(dropGame)
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL side files are left behind by an unclean shutdown.
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(dbPath + suffix)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropOneGame(id string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.DeleteGame(id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if !ok {
		fmt.Fprintf(os.Stdout, "No game %s stored, nothing to drop.\n", id)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted game %s\n", id)
	return nil
}
