package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Metrics maps leaderboard metric names to season-line accessors.
var Metrics = map[string]func(model.PlayerSeasonLine) float64{
	"pts":  func(p model.PlayerSeasonLine) float64 { return float64(p.Totals.PTS) },
	"reb":  func(p model.PlayerSeasonLine) float64 { return float64(p.Totals.TRB) },
	"ast":  func(p model.PlayerSeasonLine) float64 { return float64(p.Totals.AST) },
	"stl":  func(p model.PlayerSeasonLine) float64 { return float64(p.Totals.STL) },
	"blk":  func(p model.PlayerSeasonLine) float64 { return float64(p.Totals.BLK) },
	"fg3":  func(p model.PlayerSeasonLine) float64 { return float64(p.Totals.FG3) },
	"ppg":  func(p model.PlayerSeasonLine) float64 { return p.PPG },
	"rpg":  func(p model.PlayerSeasonLine) float64 { return p.RPG },
	"apg":  func(p model.PlayerSeasonLine) float64 { return p.APG },
	"spg":  func(p model.PlayerSeasonLine) float64 { return p.SPG },
	"bpg":  func(p model.PlayerSeasonLine) float64 { return p.BPG },
	"mpg":  func(p model.PlayerSeasonLine) float64 { return p.MPG },
	"fg%":  func(p model.PlayerSeasonLine) float64 { return p.FGPct },
	"3p%":  func(p model.PlayerSeasonLine) float64 { return p.FG3Pct },
	"ft%":  func(p model.PlayerSeasonLine) float64 { return p.FTPct },
	"ts%":  func(p model.PlayerSeasonLine) float64 { return p.TSPct },
	"efg%": func(p model.PlayerSeasonLine) float64 { return p.EFGPct },
}

// MetricNames returns the accepted metric names, sorted.
func MetricNames() []string {
	names := make([]string, 0, len(Metrics))
	for k := range Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// TopBy returns the n best players by metric among those with at least
// minGames games. n <= 0 returns every qualifying player.
func TopBy(players []model.PlayerSeasonLine, metric string, n, minGames int) ([]model.PlayerSeasonLine, error) {
	get, ok := Metrics[strings.ToLower(metric)]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q (want one of %s)", metric, strings.Join(MetricNames(), ", "))
	}
	out := make([]model.PlayerSeasonLine, 0, len(players))
	for _, p := range players {
		if p.Games >= minGames {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return get(out[i]) > get(out[j]) })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Filter selects games for a season run. Empty fields match everything.
type Filter struct {
	GameType string `json:"game_type,omitempty"` // "regular", "playoff", "playin"
	Season   string `json:"season,omitempty"`
	Team     string `json:"team,omitempty"` // matches either side, case-insensitively
}

// FilterGames returns the games matching f, preserving order.
func FilterGames(games []model.Game, f Filter) []model.Game {
	out := make([]model.Game, 0, len(games))
	for _, g := range games {
		m := g.Meta
		if f.GameType != "" && !strings.EqualFold(m.GameType, f.GameType) {
			continue
		}
		if f.Season != "" && m.Season != f.Season {
			continue
		}
		if f.Team != "" && !strings.EqualFold(m.AwayTeam, f.Team) && !strings.EqualFold(m.HomeTeam, f.Team) {
			continue
		}
		out = append(out, g)
	}
	return out
}
