package model

// GameMeta is the per-game result metadata taken from the box score.
// AwayScore/HomeScore are the authoritative final tally.
type GameMeta struct {
	GameID     string `json:"game_id"`
	Date       string `json:"date"`
	DateKey    string `json:"date_key"` // YYYYMMDD, used for ordering
	Season     string `json:"season"`
	GameType   string `json:"game_type"`
	AwayTeam   string `json:"away_team"`
	HomeTeam   string `json:"home_team"`
	AwayScore  int    `json:"away_score"`
	HomeScore  int    `json:"home_score"`
	SourceFile string `json:"source_file,omitempty"`
	SourceHash string `json:"source_hash,omitempty"`
}

// Final returns the authoritative final score.
func (m GameMeta) Final() Score {
	return Score{Away: m.AwayScore, Home: m.HomeScore}
}

// Team returns the team name playing on side.
func (m GameMeta) Team(side Side) string {
	if side == SideHome {
		return m.HomeTeam
	}
	return m.AwayTeam
}

// SortKey returns DateKey when present, otherwise Date.
func (m GameMeta) SortKey() string {
	if m.DateKey != "" {
		return m.DateKey
	}
	return m.Date
}

// BoxLine holds the canonical counting stats of one box-score row.
type BoxLine struct {
	PTS int `json:"pts"`
	TRB int `json:"trb"`
	AST int `json:"ast"`
	STL int `json:"stl"`
	BLK int `json:"blk"`
	TOV int `json:"tov"`
	PF  int `json:"pf"`

	FG   int `json:"fg"`
	FGA  int `json:"fga"`
	FG3  int `json:"fg3"`
	FG3A int `json:"fg3a"`
	FT   int `json:"ft"`
	FTA  int `json:"fta"`
	ORB  int `json:"orb"`
	DRB  int `json:"drb"`

	PlusMinus int `json:"plus_minus"`
}

// Add sums o into b.
func (b *BoxLine) Add(o BoxLine) {
	b.PTS += o.PTS
	b.TRB += o.TRB
	b.AST += o.AST
	b.STL += o.STL
	b.BLK += o.BLK
	b.TOV += o.TOV
	b.PF += o.PF
	b.FG += o.FG
	b.FGA += o.FGA
	b.FG3 += o.FG3
	b.FG3A += o.FG3A
	b.FT += o.FT
	b.FTA += o.FTA
	b.ORB += o.ORB
	b.DRB += o.DRB
	b.PlusMinus += o.PlusMinus
}

// PlayerLine is one player's box-score row for one game, as ingested.
type PlayerLine struct {
	Side     Side    `json:"side"`
	Name     string  `json:"name"`
	PlayerID string  `json:"player_id"`
	Starter  bool    `json:"starter"`
	Minutes  float64 `json:"mp"`
	BoxLine

	// HasPlusMinus is false when the source row carried no +/- value.
	HasPlusMinus bool `json:"has_plus_minus"`
}

// Game is one finalized game: metadata, box-score rows for both sides and the
// ordered play list (may be empty when no play-by-play was captured).
type Game struct {
	Meta    GameMeta     `json:"meta"`
	Players []PlayerLine `json:"players"`
	Plays   []Play       `json:"plays"`
}

// GameSummary is a lightweight record for list/show commands.
type GameSummary struct {
	GameMeta
	PlayerRows int `json:"player_rows"`
	PlayCount  int `json:"play_count"`
}
