package model

// ---- Cross-game aggregator outputs ----

// PlayerGameRecord is one player's full line for one game.
type PlayerGameRecord struct {
	Player    string  `json:"player"`
	PlayerID  string  `json:"player_id"`
	Date      string  `json:"date"`
	DateKey   string  `json:"date_key"`
	Team      string  `json:"team"`
	Opponent  string  `json:"opponent"`
	Result    string  `json:"result"` // "W" or "L"
	Score     string  `json:"score"`  // team-opponent
	GameID    string  `json:"game_id"`
	GameType  string  `json:"game_type"`
	Season    string  `json:"season"`
	Starter   bool    `json:"starter"`
	Minutes   float64 `json:"mp"`
	BoxLine
	GameScore float64 `json:"game_score"`
}

// PlayerSeasonLine is the aggregated season row for one player identity.
// Rates and percentages are computed from summed totals.
type PlayerSeasonLine struct {
	Player   string `json:"player"`
	PlayerID string `json:"player_id"`
	Teams    string `json:"teams"` // sorted, comma separated
	Games    int    `json:"games"`
	Wins     int    `json:"wins"`

	MPG  float64 `json:"mpg"`
	PPG  float64 `json:"ppg"`
	RPG  float64 `json:"rpg"`
	APG  float64 `json:"apg"`
	SPG  float64 `json:"spg"`
	BPG  float64 `json:"bpg"`
	TOPG float64 `json:"topg"`

	FGPct  float64 `json:"fg_pct"`
	FG3Pct float64 `json:"fg3_pct"`
	FTPct  float64 `json:"ft_pct"`
	TSPct  float64 `json:"ts_pct"`
	EFGPct float64 `json:"efg_pct"`

	Minutes float64 `json:"minutes"`
	Totals  BoxLine `json:"totals"`
}

// Unit labels for StarterBenchSplit rows.
const (
	UnitStarters = "Starters"
	UnitBench    = "Bench"
)

// StarterBenchSplit is one (team, unit) row of the starters-vs-bench table.
type StarterBenchSplit struct {
	Team     string  `json:"team"`
	Unit     string  `json:"unit"`
	Games    int     `json:"games"`
	PPG      float64 `json:"ppg"`
	RPG      float64 `json:"rpg"`
	APG      float64 `json:"apg"`
	MPG      float64 `json:"mpg"`
	TotalPTS int     `json:"total_pts"`
	TotalREB int     `json:"total_reb"`
	TotalAST int     `json:"total_ast"`
}

// SeasonHigh is the best value of one category with its provenance.
// Set is false until a value has been recorded.
type SeasonHigh struct {
	Value    float64 `json:"value"`
	GameID   string  `json:"game_id"`
	Date     string  `json:"date"`
	DateKey  string  `json:"date_key"`
	Opponent string  `json:"opponent"`
	Set      bool    `json:"set"`
}

// SeasonHighs is one player's row of independently tracked highs.
type SeasonHighs struct {
	Player    string     `json:"player"`
	PlayerID  string     `json:"player_id"`
	Teams     string     `json:"teams"`
	PTS       SeasonHigh `json:"pts"`
	TRB       SeasonHigh `json:"trb"`
	AST       SeasonHigh `json:"ast"`
	STL       SeasonHigh `json:"stl"`
	BLK       SeasonHigh `json:"blk"`
	FG3       SeasonHigh `json:"fg3"`
	PlusMinus SeasonHigh `json:"plus_minus"`
	GameScore SeasonHigh `json:"game_score"`
}

// Milestone classifies a single game line.
type Milestone int

const (
	MilestoneNone Milestone = iota
	MilestoneDoubleDouble
	MilestoneTripleDouble
)

func (m Milestone) String() string {
	switch m {
	case MilestoneTripleDouble:
		return "triple-double"
	case MilestoneDoubleDouble:
		return "double-double"
	default:
		return ""
	}
}

// MilestoneGame is one triple-double or double-double game.
type MilestoneGame struct {
	Player   string `json:"player"`
	PlayerID string `json:"player_id"`
	Date     string `json:"date"`
	DateKey  string `json:"date_key"`
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Result   string `json:"result"`
	PTS      int    `json:"pts"`
	TRB      int    `json:"trb"`
	AST      int    `json:"ast"`
	STL      int    `json:"stl"`
	BLK      int    `json:"blk"`
	GameID   string `json:"game_id"`
}

// SeasonTables is the full output of the cross-game aggregator.
type SeasonTables struct {
	Players         []PlayerSeasonLine  `json:"players"`
	PlayerGames     []PlayerGameRecord  `json:"player_games"`
	StartersVsBench []StarterBenchSplit `json:"starters_vs_bench"`
	SeasonHighs     []SeasonHighs       `json:"season_highs"`
	TripleDoubles   []MilestoneGame     `json:"triple_doubles"`
	DoubleDoubles   []MilestoneGame     `json:"double_doubles"`
}
