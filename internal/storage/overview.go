package storage

import (
	"fmt"
	"strings"
)

// Overview holds high-level corpus counts for the summary command.
type Overview struct {
	TotalGames    int
	EarliestGame  string
	LatestGame    string
	UniqueTeams   int
	UniquePlayers int
	PlayerRows    int
	TotalPlays    int
}

// TeamRecord is one team's win/loss record over the stored games.
type TeamRecord struct {
	Team   string
	Games  int
	Wins   int
	Losses int
}

// TypeCount is the number of stored games of one game type.
type TypeCount struct {
	GameType string
	Games    int
}

// GetOverview returns corpus-wide counts.
func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(1), COALESCE(MIN(date), ''), COALESCE(MAX(date), '')
		FROM games`).Scan(&ov.TotalGames, &ov.EarliestGame, &ov.LatestGame)
	if err != nil {
		return ov, fmt.Errorf("count games: %w", err)
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(1) FROM (SELECT away_team AS t FROM games UNION SELECT home_team FROM games)
		WHERE t != ''`).Scan(&ov.UniqueTeams)
	if err != nil {
		return ov, fmt.Errorf("count teams: %w", err)
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(DISTINCT CASE WHEN player_id != '' THEN player_id ELSE name END), COUNT(1)
		FROM player_games WHERE name != ''`).Scan(&ov.UniquePlayers, &ov.PlayerRows)
	if err != nil {
		return ov, fmt.Errorf("count players: %w", err)
	}
	if err := db.conn.QueryRow("SELECT COUNT(1) FROM plays").Scan(&ov.TotalPlays); err != nil {
		return ov, fmt.Errorf("count plays: %w", err)
	}
	return ov, nil
}

// GetTeamRecords returns every team's record, best win count first.
func (db *DB) GetTeamRecords() ([]TeamRecord, error) {
	rows, err := db.conn.Query(`
		SELECT team, COUNT(1), SUM(won), SUM(1 - won) FROM (
			SELECT away_team AS team, CASE WHEN away_score > home_score THEN 1 ELSE 0 END AS won FROM games
			UNION ALL
			SELECT home_team, CASE WHEN home_score > away_score THEN 1 ELSE 0 END FROM games
		) WHERE team != ''
		GROUP BY team ORDER BY SUM(won) DESC, team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TeamRecord
	for rows.Next() {
		var r TeamRecord
		if err := rows.Scan(&r.Team, &r.Games, &r.Wins, &r.Losses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetGameTypeCounts returns the number of games per game type.
func (db *DB) GetGameTypeCounts() ([]TypeCount, error) {
	rows, err := db.conn.Query(`
		SELECT game_type, COUNT(1) FROM games GROUP BY game_type ORDER BY COUNT(1) DESC, game_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeCount
	for rows.Next() {
		var c TypeCount
		if err := rows.Scan(&c.GameType, &c.Games); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary read query and returns column names and rows
// rendered as strings. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	if !isReadOnly(query) {
		return nil, nil, fmt.Errorf("only SELECT, WITH, PRAGMA and EXPLAIN statements are allowed")
	}
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func isReadOnly(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	for _, kw := range []string{"SELECT", "WITH", "PRAGMA", "EXPLAIN"} {
		if strings.HasPrefix(q, kw) {
			return true
		}
	}
	return false
}
