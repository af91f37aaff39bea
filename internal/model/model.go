package model

import "fmt"

// Side identifies which team of a game a play or player belongs to.
type Side string

const (
	SideUnknown Side = ""
	SideAway    Side = "away"
	SideHome    Side = "home"
)

// Opponent returns the other side. Unknown stays unknown.
func (s Side) Opponent() Side {
	switch s {
	case SideAway:
		return SideHome
	case SideHome:
		return SideAway
	default:
		return SideUnknown
	}
}

func (s Side) String() string {
	if s == SideUnknown {
		return "?"
	}
	return string(s)
}

// ParseSide maps a loosely written side label onto a Side.
func ParseSide(s string) Side {
	switch s {
	case "away", "Away", "AWAY", "visitor", "road":
		return SideAway
	case "home", "Home", "HOME":
		return SideHome
	default:
		return SideUnknown
	}
}

// Score is an away/home score pair.
type Score struct {
	Away int `json:"away"`
	Home int `json:"home"`
}

// String formats the score as "away-home".
func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Away, s.Home)
}

// IsZero reports whether neither team has scored.
func (s Score) IsZero() bool {
	return s.Away == 0 && s.Home == 0
}

// Margin is away minus home.
func (s Score) Margin() int {
	return s.Away - s.Home
}

// Leader returns the side ahead, with ties going to away.
func (s Score) Leader() Side {
	if s.Home > s.Away {
		return SideHome
	}
	return SideAway
}

// For returns the score of the given side.
func (s Score) For(side Side) int {
	if side == SideHome {
		return s.Home
	}
	return s.Away
}

// ---- Play-by-play input ----

// PlayType is the classified tag of a play, e.g. "made_three" or "missed_ft".
type PlayType string

const (
	PlayMadeThree        PlayType = "made_three"
	PlayMadeFT           PlayType = "made_ft"
	PlayMadeDunk         PlayType = "made_dunk"
	PlayMadeLayup        PlayType = "made_layup"
	PlayMadeJumper       PlayType = "made_jumper"
	PlayMadeFG           PlayType = "made_fg"
	PlayMissedThree      PlayType = "missed_three"
	PlayMissedFT         PlayType = "missed_ft"
	PlayMissedFG         PlayType = "missed_fg"
	PlayOffensiveRebound PlayType = "offensive_rebound"
	PlayDefensiveRebound PlayType = "defensive_rebound"
	PlayRebound          PlayType = "rebound"
	PlayTurnover         PlayType = "turnover"
	PlaySteal            PlayType = "steal"
	PlayBlock            PlayType = "block"
	PlayFoul             PlayType = "foul"
	PlayAssist           PlayType = "assist"
	PlayTimeout          PlayType = "timeout"
	PlayJumpBall         PlayType = "jump_ball"
	PlayPeriodEnd        PlayType = "period_end"
	PlayOther            PlayType = "other"
)

// Play is one recorded event. AwayScore/HomeScore are cumulative after the event.
type Play struct {
	Clock     string   `json:"clock"`
	Period    int      `json:"period"`
	Team      string   `json:"team"`
	Side      Side     `json:"side"`
	Player    string   `json:"player"`
	Text      string   `json:"text"`
	Type      PlayType `json:"play_type"`
	Scoring   bool     `json:"scoring"`
	Points    int      `json:"points"`
	AwayScore int      `json:"away_score"`
	HomeScore int      `json:"home_score"`
}

// Score returns the cumulative score after the play.
func (p Play) Score() Score {
	return Score{Away: p.AwayScore, Home: p.HomeScore}
}

// ---- Play-by-play narratives ----

// ScoringRun is a maximal stretch of unanswered points by one team.
type ScoringRun struct {
	Team        string `json:"team"`
	Side        Side   `json:"side"`
	Points      int    `json:"points"`
	StartClock  string `json:"start_clock"`
	EndClock    string `json:"end_clock"`
	StartPeriod int    `json:"start_period"`
	EndPeriod   int    `json:"end_period"`
	StartScore  Score  `json:"start_score"`
	EndScore    Score  `json:"end_score"`
}

// PointStreak is a maximal stretch of consecutive points by one player.
type PointStreak struct {
	Player string `json:"player"`
	ScoringRun
}

// ComebackRecord describes the largest deficit the winner faced.
// DeficitClock, DeficitPeriod and DeficitScore are empty when NeverTrailed.
type ComebackRecord struct {
	Team          string `json:"team"`
	Side          Side   `json:"side"`
	Deficit       int    `json:"deficit"`
	DeficitClock  string `json:"deficit_clock"`
	DeficitPeriod int    `json:"deficit_period"`
	DeficitScore  string `json:"deficit_score"`
	NeverTrailed  bool   `json:"never_trailed"`
	FinalScore    Score  `json:"final_score"`
}

// ClutchLine is one player's scoring inside the clutch window.
type ClutchLine struct {
	Player string `json:"player"`
	Side   Side   `json:"side"`
	Points int    `json:"points"`
	FG     int    `json:"fg"`
	FT     int    `json:"ft"`
	Three  int    `json:"three"`
}

// ClutchScoring holds clutch lines per side, each sorted by points descending.
type ClutchScoring struct {
	Away []ClutchLine `json:"away"`
	Home []ClutchLine `json:"home"`
}

// GoAheadShot is a scoring play that put the eventual winner in front.
type GoAheadShot struct {
	Player string   `json:"player"`
	Team   string   `json:"team"`
	Side   Side     `json:"side"`
	Clock  string   `json:"clock"`
	Period int      `json:"period"`
	Points int      `json:"points"`
	Type   PlayType `json:"play_type"`
	Score  Score    `json:"score"`
	Text   string   `json:"text"`
}

// GameWinningShots pairs the last go-ahead of the game with the last one in the
// final two minutes of regulation. Either may be nil.
type GameWinningShots struct {
	DecisiveShot  *GoAheadShot `json:"decisive_shot"`
	ClutchGoAhead *GoAheadShot `json:"clutch_go_ahead"`
}

// GameNarrative is the result bundle of a single game's play-by-play analysis.
type GameNarrative struct {
	TeamScoringRuns    []ScoringRun     `json:"team_scoring_runs"`
	PlayerPointStreaks []PointStreak    `json:"player_point_streaks"`
	BiggestComeback    *ComebackRecord  `json:"biggest_comeback"`
	ClutchScoring      ClutchScoring    `json:"clutch_scoring"`
	GameWinningShots   GameWinningShots `json:"game_winning_shots"`
}

// NarrativeSummary condenses a GameNarrative into its headline items.
type NarrativeSummary struct {
	GameID          string          `json:"game_id"`
	PlayCount       int             `json:"play_count"`
	BestTeamRun     *ScoringRun     `json:"best_team_run,omitempty"`
	BestStreak      *PointStreak    `json:"best_player_streak,omitempty"`
	Comeback        *ComebackRecord `json:"comeback,omitempty"`
	TopClutchScorer *ClutchLine     `json:"top_clutch_scorer,omitempty"`
	ClutchGoAhead   *GoAheadShot    `json:"clutch_go_ahead,omitempty"`
	DecisiveShot    *GoAheadShot    `json:"decisive_shot,omitempty"`
}
