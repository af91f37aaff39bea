package aggregator

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// GameScore is Hollinger's game score rounded to one decimal:
// PTS + 0.4 FG - 0.7 FGA - 0.4 (FTA-FT) + 0.7 ORB + 0.3 DRB + STL + 0.7 AST + 0.7 BLK - 0.4 PF - TOV.
func GameScore(b model.BoxLine) float64 {
	gs := float64(b.PTS) +
		0.4*float64(b.FG) -
		0.7*float64(b.FGA) -
		0.4*float64(b.FTA-b.FT) +
		0.7*float64(b.ORB) +
		0.3*float64(b.DRB) +
		float64(b.STL) +
		0.7*float64(b.AST) +
		0.7*float64(b.BLK) -
		0.4*float64(b.PF) -
		float64(b.TOV)
	return round1(gs)
}

// Classify counts how many of PTS, TRB, AST, STL and BLK reach threshold.
// Three or more is a triple-double, exactly two a double-double.
func Classify(b model.BoxLine, threshold int) model.Milestone {
	n := 0
	for _, v := range []int{b.PTS, b.TRB, b.AST, b.STL, b.BLK} {
		if v >= threshold {
			n++
		}
	}
	switch {
	case n >= 3:
		return model.MilestoneTripleDouble
	case n == 2:
		return model.MilestoneDoubleDouble
	default:
		return model.MilestoneNone
	}
}

// TrueShooting is PTS / (2 (FGA + 0.44 FTA)), 0 when there were no attempts.
func TrueShooting(pts, fga, fta int) float64 {
	den := 2 * (float64(fga) + 0.44*float64(fta))
	if den == 0 {
		return 0
	}
	return round3(float64(pts) / den)
}

// EffectiveFG is (FG + 0.5 FG3) / FGA, 0 when there were no attempts.
func EffectiveFG(fg, fg3, fga int) float64 {
	if fga == 0 {
		return 0
	}
	return round3((float64(fg) + 0.5*float64(fg3)) / float64(fga))
}

func ratio(made, att int) float64 {
	if att == 0 {
		return 0
	}
	return round3(float64(made) / float64(att))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// ---- Season highs ----

// updateHighs compares one row against the running highs, category by
// category. Counting categories need a positive value. Plus-minus and game
// score can be negative, so any value is a candidate. Equal values keep the
// earliest game, so the result does not depend on fold order.
func updateHighs(h *model.SeasonHighs, row model.PlayerLine, gs float64, rec model.PlayerGameRecord) {
	at := func(v float64) model.SeasonHigh {
		return model.SeasonHigh{
			Value: v, GameID: rec.GameID, Date: rec.Date, DateKey: rec.DateKey,
			Opponent: rec.Opponent, Set: true,
		}
	}
	counting := []struct {
		high *model.SeasonHigh
		v    int
	}{
		{&h.PTS, row.PTS},
		{&h.TRB, row.TRB},
		{&h.AST, row.AST},
		{&h.STL, row.STL},
		{&h.BLK, row.BLK},
		{&h.FG3, row.FG3},
	}
	for _, c := range counting {
		if c.v > 0 {
			keepBetter(c.high, at(float64(c.v)))
		}
	}
	if row.HasPlusMinus {
		keepBetter(&h.PlusMinus, at(float64(row.PlusMinus)))
	}
	keepBetter(&h.GameScore, at(gs))
}

// keepBetter replaces cur with cand when cand is higher, or equal and
// recorded in an earlier game.
func keepBetter(cur *model.SeasonHigh, cand model.SeasonHigh) {
	switch {
	case !cand.Set:
	case !cur.Set, cand.Value > cur.Value:
		*cur = cand
	case cand.Value == cur.Value && gameBefore(cand.DateKey, cand.GameID, cur.DateKey, cur.GameID):
		*cur = cand
	}
}

// gameBefore orders games by date key, then game id.
func gameBefore(dateA, idA, dateB, idB string) bool {
	if dateA != dateB {
		return dateA < dateB
	}
	return idA < idB
}

// mergeHighs folds highs recorded over another set of games into h.
func mergeHighs(h *model.SeasonHighs, o model.SeasonHighs) {
	for _, p := range []struct{ dst, src *model.SeasonHigh }{
		{&h.PTS, &o.PTS},
		{&h.TRB, &o.TRB},
		{&h.AST, &o.AST},
		{&h.STL, &o.STL},
		{&h.BLK, &o.BLK},
		{&h.FG3, &o.FG3},
		{&h.PlusMinus, &o.PlusMinus},
		{&h.GameScore, &o.GameScore},
	} {
		keepBetter(p.dst, *p.src)
	}
}

// ---- Identity ----

var suffixRe = regexp.MustCompile(`(?i)\s+(jr\.?|sr\.?|iii|ii|iv)$`)

var fold = cases.Fold()

// NormalizeName is the fallback identity for rows without a player id:
// generational suffix removed, periods dropped, whitespace collapsed and case
// folded. "P.J. Washington Jr." and "PJ  Washington" both become "pj washington".
func NormalizeName(name string) string {
	name = suffixRe.ReplaceAllString(strings.TrimSpace(name), "")
	name = strings.ReplaceAll(name, ".", "")
	name = strings.Join(strings.Fields(name), " ")
	return fold.String(name)
}

// IdentityKey resolves a row to its player identity: the upstream id when
// present, otherwise the normalized name.
func IdentityKey(playerID, name string) string {
	if id := strings.TrimSpace(playerID); id != "" {
		return id
	}
	return NormalizeName(name)
}
