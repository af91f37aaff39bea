// Package pbp derives in-game scoring narratives from one game's ordered
// play-by-play: team runs, player streaks, the biggest comeback, clutch scoring
// and the go-ahead shots of the eventual winner.
//
// Every function here is a pure reduction over the play slice. Plays are
// expected to be normalized by the parser (typed fields, non-decreasing
// cumulative scores); nothing here returns an error.
package pbp

import (
	"sort"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Options holds the thresholds and time windows of the analysis.
type Options struct {
	MinRunPoints    int     // team runs below this are not reported
	MinStreakPoints int     // player streaks below this are not reported
	ClutchPeriod    int     // final regulation period
	ClutchMinutes   float64 // clutch window, minutes remaining in ClutchPeriod
	GoAheadMinutes  float64 // window for the clutch go-ahead shot
}

// DefaultOptions returns the standard NBA settings.
func DefaultOptions() Options {
	return Options{
		MinRunPoints:    8,
		MinStreakPoints: 6,
		ClutchPeriod:    4,
		ClutchMinutes:   5,
		GoAheadMinutes:  2,
	}
}

// Analyze runs every narrative over plays. final is the authoritative final
// score from the box score; a 0-0 final falls back to the last play's score.
func Analyze(plays []model.Play, final model.Score, opts Options) model.GameNarrative {
	return model.GameNarrative{
		TeamScoringRuns:    TeamScoringRuns(plays, opts.MinRunPoints),
		PlayerPointStreaks: PlayerPointStreaks(plays, opts.MinStreakPoints),
		BiggestComeback:    BiggestComeback(plays, final),
		ClutchScoring:      ClutchScoring(plays, opts),
		GameWinningShots:   GameWinningShots(plays, final, opts),
	}
}

// ---- Runs and streaks ----

// runTracker holds the open run of a single pass. key identifies its owner
// (a side for team runs, a player for streaks); empty means no open run.
type runTracker struct {
	min int
	key string
	cur model.PointStreak
	out []model.PointStreak
}

// flush emits the open run if it met the threshold and closes it.
func (t *runTracker) flush() {
	if t.key != "" && t.cur.Points >= t.min {
		t.out = append(t.out, t.cur)
	}
	t.key = ""
	t.cur = model.PointStreak{}
}

// add credits points to key, extending the open run or replacing it.
func (t *runTracker) add(key, player string, p model.Play, points int, before model.Score) {
	if t.key == key {
		t.cur.Points += points
		t.cur.EndClock = p.Clock
		t.cur.EndPeriod = p.Period
		t.cur.EndScore = p.Score()
		return
	}
	t.flush()
	t.key = key
	t.cur = model.PointStreak{
		Player: player,
		ScoringRun: model.ScoringRun{
			Team:        p.Team,
			Side:        p.Side,
			Points:      points,
			StartClock:  p.Clock,
			EndClock:    p.Clock,
			StartPeriod: p.Period,
			EndPeriod:   p.Period,
			StartScore:  before,
			EndScore:    p.Score(),
		},
	}
}

// TeamScoringRuns finds maximal stretches of unanswered points by one team.
// Points are measured as the declared side's score delta since the previous
// scoring play. A non-positive delta means the side label and the score
// disagree, which closes the open run without crediting anyone.
func TeamScoringRuns(plays []model.Play, minPoints int) []model.ScoringRun {
	t := runTracker{min: minPoints}
	var prev model.Score
	for _, p := range plays {
		if !p.Scoring {
			continue
		}
		score := p.Score()
		delta := 0
		if p.Side != model.SideUnknown {
			delta = score.For(p.Side) - prev.For(p.Side)
		}
		if delta > 0 {
			t.add(string(p.Side), "", p, delta, prev)
		} else {
			t.flush()
		}
		prev = score
	}
	t.flush()

	runs := make([]model.ScoringRun, 0, len(t.out))
	for _, s := range t.out {
		runs = append(runs, s.ScoringRun)
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Points > runs[j].Points })
	return runs
}

// PlayerPointStreaks finds maximal stretches of consecutive points by one
// player. A scoring play with no player or no points is skipped without
// breaking the streak; only a positive score by someone else ends it.
func PlayerPointStreaks(plays []model.Play, minPoints int) []model.PointStreak {
	t := runTracker{min: minPoints}
	var prev model.Score
	for _, p := range plays {
		if !p.Scoring {
			continue
		}
		score := p.Score()
		points := p.Points
		if points == 0 {
			points = (score.Away - prev.Away) + (score.Home - prev.Home)
		}
		if p.Player != "" && points > 0 {
			t.add(p.Player, p.Player, p, points, prev)
		}
		prev = score
	}
	t.flush()

	streaks := t.out
	if streaks == nil {
		streaks = []model.PointStreak{}
	}
	sort.SliceStable(streaks, func(i, j int) bool { return streaks[i].Points > streaks[j].Points })
	return streaks
}

// ---- Comeback ----

// BiggestComeback returns the largest deficit the winner faced at any play, or
// nil when there are no plays.
func BiggestComeback(plays []model.Play, final model.Score) *model.ComebackRecord {
	if len(plays) == 0 {
		return nil
	}
	final = resolveFinal(plays, final)
	winner := final.Leader()

	rec := &model.ComebackRecord{
		Team:       teamName(plays, winner),
		Side:       winner,
		FinalScore: final,
	}
	for _, p := range plays {
		score := p.Score()
		deficit := score.For(winner.Opponent()) - score.For(winner)
		if deficit > rec.Deficit {
			rec.Deficit = deficit
			rec.DeficitClock = p.Clock
			rec.DeficitPeriod = p.Period
			rec.DeficitScore = score.String()
		}
	}
	rec.NeverTrailed = rec.Deficit == 0
	return rec
}

// ---- Clutch ----

// ClutchScoring totals each player's points and makes inside the clutch
// window. Plays whose clock cannot be parsed are left out.
func ClutchScoring(plays []model.Play, opts Options) model.ClutchScoring {
	out := model.ClutchScoring{Away: []model.ClutchLine{}, Home: []model.ClutchLine{}}

	// index into out.Away / out.Home, per side, keeps first-seen order.
	idx := map[model.Side]map[string]int{
		model.SideAway: {},
		model.SideHome: {},
	}
	for _, p := range plays {
		if p.Period != opts.ClutchPeriod || !p.Scoring || !inWindow(p.Clock, opts.ClutchMinutes) {
			continue
		}
		if p.Player == "" || p.Side == model.SideUnknown || p.Points <= 0 {
			continue
		}

		lines := &out.Away
		if p.Side == model.SideHome {
			lines = &out.Home
		}
		i, ok := idx[p.Side][p.Player]
		if !ok {
			i = len(*lines)
			idx[p.Side][p.Player] = i
			*lines = append(*lines, model.ClutchLine{Player: p.Player, Side: p.Side})
		}
		line := &(*lines)[i]
		line.Points += p.Points

		tag := string(p.Type)
		switch {
		case strings.Contains(tag, "ft") || strings.Contains(tag, "free_throw"):
			line.FT++
		case strings.Contains(tag, "three"):
			line.FG++
			line.Three++
		case strings.Contains(tag, "made"):
			line.FG++
		}
	}

	for _, lines := range [][]model.ClutchLine{out.Away, out.Home} {
		sort.SliceStable(lines, func(i, j int) bool { return lines[i].Points > lines[j].Points })
	}
	return out
}

// ---- Go-ahead shots ----

// GameWinningShots finds the winner's go-ahead baskets: scoring plays by the
// eventual winner that take the margin from tied or behind to ahead. The last
// one is the decisive shot; the last one inside the go-ahead window of the
// final period is the clutch go-ahead.
func GameWinningShots(plays []model.Play, final model.Score, opts Options) model.GameWinningShots {
	var out model.GameWinningShots
	if len(plays) == 0 {
		return out
	}
	winner := resolveFinal(plays, final).Leader()

	var prev model.Score
	for _, p := range plays {
		score := p.Score()
		if p.Scoring && p.Side == winner && !ahead(prev, winner) && ahead(score, winner) {
			points := p.Points
			if points == 0 {
				points = score.For(winner) - prev.For(winner)
			}
			shot := &model.GoAheadShot{
				Player: p.Player,
				Team:   p.Team,
				Side:   p.Side,
				Clock:  p.Clock,
				Period: p.Period,
				Points: points,
				Type:   p.Type,
				Score:  score,
				Text:   p.Text,
			}
			out.DecisiveShot = shot
			if p.Period == opts.ClutchPeriod && inWindow(p.Clock, opts.GoAheadMinutes) {
				out.ClutchGoAhead = shot
			}
		}
		prev = score
	}
	return out
}

func ahead(s model.Score, side model.Side) bool {
	return s.For(side) > s.For(side.Opponent())
}

// resolveFinal prefers the authoritative score and falls back to the last
// play only when the authoritative score is missing (0-0).
func resolveFinal(plays []model.Play, final model.Score) model.Score {
	if !final.IsZero() || len(plays) == 0 {
		return final
	}
	return plays[len(plays)-1].Score()
}

// teamName returns the first team name recorded for side.
func teamName(plays []model.Play, side model.Side) string {
	for _, p := range plays {
		if p.Side == side && p.Team != "" {
			return p.Team
		}
	}
	return ""
}
