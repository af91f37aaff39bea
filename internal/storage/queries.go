package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

const gameColumns = `game_id, date, date_key, season, game_type, away_team, home_team,
	away_score, home_score, source_file, source_hash`

// GameExists returns true if a game with the given id is already stored.
func (db *DB) GameExists(gameID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertGame stores a game with its player rows and plays in one transaction.
// An existing game with the same id is replaced.
func (db *DB) InsertGame(g *model.Game) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	m := g.Meta
	if err := deleteChildren(tx, m.GameID); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO games(`+gameColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		m.GameID, m.Date, m.DateKey, m.Season, m.GameType, m.AwayTeam, m.HomeTeam,
		m.AwayScore, m.HomeScore, m.SourceFile, m.SourceHash,
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", m.GameID, err)
	}

	pstmt, err := tx.Prepare(`
		INSERT INTO player_games(
			game_id, row_idx, side, name, player_id, starter, minutes,
			pts, trb, ast, stl, blk, tov, pf,
			fg, fga, fg3, fg3a, ft, fta, orb, drb,
			plus_minus, has_plus_minus
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer pstmt.Close()

	for i, p := range g.Players {
		_, err = pstmt.Exec(
			m.GameID, i, string(p.Side), p.Name, p.PlayerID, boolInt(p.Starter), p.Minutes,
			p.PTS, p.TRB, p.AST, p.STL, p.BLK, p.TOV, p.PF,
			p.FG, p.FGA, p.FG3, p.FG3A, p.FT, p.FTA, p.ORB, p.DRB,
			p.PlusMinus, boolInt(p.HasPlusMinus),
		)
		if err != nil {
			return fmt.Errorf("insert player_games for %q: %w", p.Name, err)
		}
	}

	sstmt, err := tx.Prepare(`
		INSERT INTO plays(
			game_id, seq, clock, period, team, side, player, text, play_type,
			scoring, points, away_score, home_score
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer sstmt.Close()

	for i, p := range g.Plays {
		_, err = sstmt.Exec(
			m.GameID, i, p.Clock, p.Period, p.Team, string(p.Side), p.Player, p.Text, string(p.Type),
			boolInt(p.Scoring), p.Points, p.AwayScore, p.HomeScore,
		)
		if err != nil {
			return fmt.Errorf("insert plays: %w", err)
		}
	}
	return tx.Commit()
}

// DeleteGame removes a game and its rows. It reports whether the game existed.
func (db *DB) DeleteGame(gameID string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if err := deleteChildren(tx, gameID); err != nil {
		return false, err
	}
	res, err := tx.Exec("DELETE FROM games WHERE game_id = ?", gameID)
	if err != nil {
		return false, fmt.Errorf("delete game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// DeleteAll empties every table.
func (db *DB) DeleteAll() error {
	for _, table := range []string{"plays", "player_games", "games"} {
		if _, err := db.conn.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func deleteChildren(tx *sql.Tx, gameID string) error {
	for _, table := range []string{"plays", "player_games"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("clear %s for %s: %w", table, gameID, err)
		}
	}
	return nil
}

// ListGames returns the stored game summaries, newest first.
func (db *DB) ListGames() ([]model.GameSummary, error) {
	rows, err := db.conn.Query(`
		SELECT ` + prefixed("g.", gameColumns) + `,
		       (SELECT COUNT(1) FROM player_games p WHERE p.game_id = g.game_id),
		       (SELECT COUNT(1) FROM plays s WHERE s.game_id = g.game_id)
		FROM games g ORDER BY g.date_key DESC, g.game_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameSummary
	for rows.Next() {
		var s model.GameSummary
		dest := append(metaDest(&s.GameMeta), &s.PlayerRows, &s.PlayCount)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetGameByPrefix finds the first game whose id starts with the given prefix.
// It returns nil, nil when nothing matches.
func (db *DB) GetGameByPrefix(prefix string) (*model.Game, error) {
	var id string
	err := db.conn.QueryRow(
		"SELECT game_id FROM games WHERE game_id LIKE ? ORDER BY game_id LIMIT 1", prefix+"%",
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	games, err := db.LoadGames([]string{id})
	if err != nil || len(games) == 0 {
		return nil, err
	}
	return &games[0], nil
}

// LoadCorpus returns every stored game with its player rows and plays,
// oldest first.
func (db *DB) LoadCorpus() ([]model.Game, error) {
	return db.loadGames("", nil)
}

// LoadGames returns the named games, oldest first. Unknown ids are ignored.
func (db *DB) LoadGames(ids []string) ([]model.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return db.loadGames("WHERE game_id IN ("+placeholders(len(ids))+")", args)
}

// loadGames runs three flat queries (games, player rows, plays) filtered by
// where, and stitches the children onto their games.
func (db *DB) loadGames(where string, args []any) ([]model.Game, error) {
	rows, err := db.conn.Query(
		"SELECT "+gameColumns+" FROM games "+where+" ORDER BY date_key, game_id", args...)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	var games []model.Game
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(metaDest(&g.Meta)...); err != nil {
			rows.Close()
			return nil, err
		}
		games = append(games, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(games))
	for i, g := range games {
		index[g.Meta.GameID] = i
	}

	if err := db.loadPlayerRows(where, args, games, index); err != nil {
		return nil, err
	}
	if err := db.loadPlays(where, args, games, index); err != nil {
		return nil, err
	}
	return games, nil
}

func (db *DB) loadPlayerRows(where string, args []any, games []model.Game, index map[string]int) error {
	rows, err := db.conn.Query(`
		SELECT game_id, side, name, player_id, starter, minutes,
		       pts, trb, ast, stl, blk, tov, pf,
		       fg, fga, fg3, fg3a, ft, fta, orb, drb,
		       plus_minus, has_plus_minus
		FROM player_games `+where+` ORDER BY game_id, row_idx`, args...)
	if err != nil {
		return fmt.Errorf("query player_games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			gameID, side   string
			starter, hasPM int
			p              model.PlayerLine
		)
		if err := rows.Scan(&gameID, &side, &p.Name, &p.PlayerID, &starter, &p.Minutes,
			&p.PTS, &p.TRB, &p.AST, &p.STL, &p.BLK, &p.TOV, &p.PF,
			&p.FG, &p.FGA, &p.FG3, &p.FG3A, &p.FT, &p.FTA, &p.ORB, &p.DRB,
			&p.PlusMinus, &hasPM); err != nil {
			return err
		}
		p.Side = model.Side(side)
		p.Starter = starter != 0
		p.HasPlusMinus = hasPM != 0
		if i, ok := index[gameID]; ok {
			games[i].Players = append(games[i].Players, p)
		}
	}
	return rows.Err()
}

func (db *DB) loadPlays(where string, args []any, games []model.Game, index map[string]int) error {
	rows, err := db.conn.Query(`
		SELECT game_id, clock, period, team, side, player, text, play_type,
		       scoring, points, away_score, home_score
		FROM plays `+where+` ORDER BY game_id, seq`, args...)
	if err != nil {
		return fmt.Errorf("query plays: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			gameID, side, typ string
			scoring           int
			p                 model.Play
		)
		if err := rows.Scan(&gameID, &p.Clock, &p.Period, &p.Team, &side, &p.Player, &p.Text, &typ,
			&scoring, &p.Points, &p.AwayScore, &p.HomeScore); err != nil {
			return err
		}
		p.Side = model.Side(side)
		p.Type = model.PlayType(typ)
		p.Scoring = scoring != 0
		if i, ok := index[gameID]; ok {
			games[i].Plays = append(games[i].Plays, p)
		}
	}
	return rows.Err()
}

// metaDest returns scan destinations matching gameColumns.
func metaDest(m *model.GameMeta) []any {
	return []any{
		&m.GameID, &m.Date, &m.DateKey, &m.Season, &m.GameType, &m.AwayTeam, &m.HomeTeam,
		&m.AwayScore, &m.HomeScore, &m.SourceFile, &m.SourceHash,
	}
}

// prefixed qualifies each column of a comma-separated list with p.
func prefixed(p, cols string) string {
	parts := strings.Split(cols, ",")
	for i, c := range parts {
		parts[i] = p + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}

// placeholders returns a comma-separated string of n "?" for SQL IN clauses,
// e.g. placeholders(3) → "?,?,?".
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
