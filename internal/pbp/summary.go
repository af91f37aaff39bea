package pbp

import (
	"sort"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Summarize picks the headline items of a narrative: best run, best streak,
// a real comeback (deficit above zero), the top clutch scorer and both
// go-ahead shots.
func Summarize(gameID string, plays []model.Play, n model.GameNarrative) model.NarrativeSummary {
	s := model.NarrativeSummary{
		GameID:        gameID,
		PlayCount:     len(plays),
		ClutchGoAhead: n.GameWinningShots.ClutchGoAhead,
		DecisiveShot:  n.GameWinningShots.DecisiveShot,
	}
	if len(n.TeamScoringRuns) > 0 {
		run := n.TeamScoringRuns[0]
		s.BestTeamRun = &run
	}
	if len(n.PlayerPointStreaks) > 0 {
		streak := n.PlayerPointStreaks[0]
		s.BestStreak = &streak
	}
	if n.BiggestComeback != nil && n.BiggestComeback.Deficit > 0 {
		s.Comeback = n.BiggestComeback
	}

	// Top two per side, then the best of those.
	var top []model.ClutchLine
	for _, lines := range [][]model.ClutchLine{n.ClutchScoring.Away, n.ClutchScoring.Home} {
		top = append(top, lines[:min(2, len(lines))]...)
	}
	if len(top) > 0 {
		sort.SliceStable(top, func(i, j int) bool { return top[i].Points > top[j].Points })
		s.TopClutchScorer = &top[0]
	}
	return s
}
