package pbp

import (
	"context"
	"math"
	"testing"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// score builds a scoring play. Team names follow the side.
func score(side model.Side, player, clock string, period, points, away, home int) model.Play {
	team := "Away Team"
	if side == model.SideHome {
		team = "Home Team"
	}
	typ := model.PlayMadeFG
	switch points {
	case 1:
		typ = model.PlayMadeFT
	case 3:
		typ = model.PlayMadeThree
	}
	return model.Play{
		Clock: clock, Period: period, Team: team, Side: side, Player: player,
		Text: player + " scores", Type: typ, Scoring: true, Points: points,
		AwayScore: away, HomeScore: home,
	}
}

// quiet builds a non-scoring play at the given running score.
func quiet(side model.Side, player string, away, home int) model.Play {
	return model.Play{
		Clock: "6:00", Period: 2, Side: side, Player: player,
		Text: player + " misses", Type: model.PlayMissedFG,
		AwayScore: away, HomeScore: home,
	}
}

const (
	away = model.SideAway
	home = model.SideHome
)

func TestAnalyzeEmpty(t *testing.T) {
	n := Analyze(nil, model.Score{}, DefaultOptions())
	if n.TeamScoringRuns == nil || len(n.TeamScoringRuns) != 0 {
		t.Errorf("expected empty non-nil runs, got %#v", n.TeamScoringRuns)
	}
	if n.PlayerPointStreaks == nil || len(n.PlayerPointStreaks) != 0 {
		t.Errorf("expected empty non-nil streaks, got %#v", n.PlayerPointStreaks)
	}
	if n.BiggestComeback != nil {
		t.Errorf("expected nil comeback, got %+v", n.BiggestComeback)
	}
	if n.ClutchScoring.Away == nil || n.ClutchScoring.Home == nil {
		t.Error("expected non-nil clutch lists")
	}
	if n.GameWinningShots.DecisiveShot != nil || n.GameWinningShots.ClutchGoAhead != nil {
		t.Error("expected no game-winning shots")
	}
}

// ---- Team runs ----

func TestTeamScoringRunsThreshold(t *testing.T) {
	plays := []model.Play{
		score(away, "A1", "11:30", 1, 3, 3, 0),
		score(away, "A2", "11:00", 1, 2, 5, 0),
		score(away, "A1", "10:30", 1, 3, 8, 0),
		score(home, "H1", "10:00", 1, 2, 8, 2),
	}
	runs := TeamScoringRuns(plays, 8)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d: %+v", len(runs), runs)
	}
	r := runs[0]
	if r.Side != away || r.Points != 8 {
		t.Errorf("run = %s %d, want away 8", r.Side, r.Points)
	}
	if r.StartScore != (model.Score{}) || r.EndScore != (model.Score{Away: 8}) {
		t.Errorf("run scores %v -> %v, want 0-0 -> 8-0", r.StartScore, r.EndScore)
	}
	if r.StartClock != "11:30" || r.EndClock != "10:30" {
		t.Errorf("run clocks %s -> %s", r.StartClock, r.EndClock)
	}
}

func TestTeamScoringRunsSortedStable(t *testing.T) {
	plays := []model.Play{
		score(away, "A1", "11:30", 1, 3, 3, 0),
		score(away, "A1", "11:00", 1, 3, 6, 0),
		score(away, "A1", "10:30", 1, 2, 8, 0),
		score(home, "H1", "10:00", 1, 3, 8, 3),
		score(home, "H1", "9:30", 1, 3, 8, 6),
		score(home, "H1", "9:00", 1, 2, 8, 8),
		score(home, "H1", "8:30", 1, 2, 8, 10),
		score(away, "A1", "8:00", 1, 2, 10, 10),
		score(away, "A1", "7:30", 1, 3, 13, 10),
		score(away, "A1", "7:00", 1, 3, 16, 10),
		score(home, "H1", "6:30", 1, 2, 16, 12),
	}
	runs := TeamScoringRuns(plays, 8)
	want := []struct {
		side   model.Side
		points int
		start  string
	}{
		{home, 10, "10:00"},
		{away, 8, "11:30"},
		{away, 8, "8:00"},
	}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d: %+v", len(want), len(runs), runs)
	}
	for i, w := range want {
		if runs[i].Side != w.side || runs[i].Points != w.points || runs[i].StartClock != w.start {
			t.Errorf("run %d = %s %d @%s, want %s %d @%s",
				i, runs[i].Side, runs[i].Points, runs[i].StartClock, w.side, w.points, w.start)
		}
	}
}

func TestTeamScoringRunsAttributionBreak(t *testing.T) {
	plays := []model.Play{
		score(away, "A1", "11:30", 1, 3, 3, 0),
		score(away, "A1", "11:00", 1, 3, 6, 0),
		// declared away, but only the home score moved
		score(away, "A1", "10:30", 1, 2, 6, 2),
		score(away, "A1", "10:00", 1, 3, 9, 2),
	}
	runs := TeamScoringRuns(plays, 1)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Points != 6 || runs[1].Points != 3 {
		t.Errorf("runs = %d, %d; want 6, 3", runs[0].Points, runs[1].Points)
	}
	if runs[1].StartScore != (model.Score{Away: 6, Home: 2}) {
		t.Errorf("second run should start after the break, got %v", runs[1].StartScore)
	}
}

// ---- Player streaks ----

func TestPlayerPointStreaksSkipsNonScoringOthers(t *testing.T) {
	plays := []model.Play{
		score(away, "Curry", "5:00", 2, 2, 2, 0),
		score(away, "Curry", "4:40", 2, 2, 4, 0),
		quiet(home, "James", 4, 0),
		// scoring flag set but no points and no score change
		score(home, "James", "4:10", 2, 0, 4, 0),
		score(away, "Curry", "3:50", 2, 2, 6, 0),
	}
	streaks := PlayerPointStreaks(plays, 6)
	if len(streaks) != 1 {
		t.Fatalf("expected 1 streak, got %d: %+v", len(streaks), streaks)
	}
	if streaks[0].Player != "Curry" || streaks[0].Points != 6 {
		t.Errorf("streak = %s %d, want Curry 6", streaks[0].Player, streaks[0].Points)
	}
}

func TestPlayerPointStreaksBreakOnOtherScorer(t *testing.T) {
	plays := []model.Play{
		score(away, "Curry", "5:00", 2, 2, 2, 0),
		score(away, "Curry", "4:40", 2, 2, 4, 0),
		score(home, "James", "4:10", 2, 2, 4, 2),
		score(away, "Curry", "3:50", 2, 2, 6, 2),
	}
	if streaks := PlayerPointStreaks(plays, 6); len(streaks) != 0 {
		t.Errorf("expected no streak, got %+v", streaks)
	}
	// A teammate's basket also breaks it.
	plays[2] = score(away, "Green", "4:10", 2, 2, 6, 0)
	plays[3] = score(away, "Curry", "3:50", 2, 2, 8, 0)
	if streaks := PlayerPointStreaks(plays, 6); len(streaks) != 0 {
		t.Errorf("expected no streak after teammate scored, got %+v", streaks)
	}
}

func TestPlayerPointStreaksDeltaFallback(t *testing.T) {
	plays := []model.Play{
		score(away, "Curry", "5:00", 2, 0, 3, 0),
		score(away, "Curry", "4:40", 2, 0, 6, 0),
	}
	streaks := PlayerPointStreaks(plays, 6)
	if len(streaks) != 1 || streaks[0].Points != 6 {
		t.Errorf("expected one 6-point streak from score deltas, got %+v", streaks)
	}
}

func TestPlayerPointStreaksSortedByPoints(t *testing.T) {
	plays := []model.Play{
		// Curry 6, then Tatum 8, then Curry 7
		score(away, "Curry", "9:00", 1, 2, 2, 0),
		score(away, "Curry", "8:30", 1, 2, 4, 0),
		score(away, "Curry", "8:00", 1, 2, 6, 0),
		score(home, "Tatum", "7:30", 1, 3, 6, 3),
		score(home, "Tatum", "7:00", 1, 3, 6, 6),
		score(home, "Tatum", "6:30", 1, 2, 6, 8),
		score(away, "Curry", "6:00", 1, 3, 9, 8),
		score(away, "Curry", "5:30", 1, 2, 11, 8),
		score(away, "Curry", "5:00", 1, 2, 13, 8),
	}
	streaks := PlayerPointStreaks(plays, 6)

	want := []struct {
		player string
		points int
	}{
		{"Tatum", 8},
		{"Curry", 7},
		{"Curry", 6},
	}
	if len(streaks) != len(want) {
		t.Fatalf("expected %d streaks, got %d: %+v", len(want), len(streaks), streaks)
	}
	for i, w := range want {
		if streaks[i].Player != w.player || streaks[i].Points != w.points {
			t.Errorf("streak %d = %s %d, want %s %d", i, streaks[i].Player, streaks[i].Points, w.player, w.points)
		}
	}
	if streaks[2].StartClock != "9:00" {
		t.Errorf("earlier Curry streak should start at 9:00, got %s", streaks[2].StartClock)
	}
}

// ---- Comeback ----

func TestBiggestComebackNeverTrailed(t *testing.T) {
	plays := []model.Play{
		score(home, "H1", "11:30", 1, 2, 0, 2),
		score(away, "A1", "11:00", 1, 2, 2, 2),
		score(home, "H1", "10:30", 1, 3, 2, 5),
	}
	c := BiggestComeback(plays, model.Score{Away: 90, Home: 100})
	if c == nil {
		t.Fatal("expected a comeback record")
	}
	if !c.NeverTrailed || c.Deficit != 0 {
		t.Errorf("NeverTrailed=%v Deficit=%d, want true 0", c.NeverTrailed, c.Deficit)
	}
	if c.Side != home || c.Team != "Home Team" {
		t.Errorf("winner = %s %q", c.Side, c.Team)
	}
	if c.DeficitClock != "" || c.DeficitScore != "" {
		t.Errorf("never-trailed record should carry no deficit timestamp: %+v", c)
	}
	if c.FinalScore != (model.Score{Away: 90, Home: 100}) {
		t.Errorf("FinalScore = %v", c.FinalScore)
	}
}

func TestBiggestComebackUsesAuthoritativeWinner(t *testing.T) {
	// The feed stops with away ahead; the box score says home won.
	plays := []model.Play{
		score(away, "A1", "8:00", 1, 3, 10, 0),
		score(home, "H1", "2:00", 2, 2, 10, 4),
		score(away, "A1", "0:30", 4, 2, 50, 48),
	}
	c := BiggestComeback(plays, model.Score{Away: 60, Home: 62})
	if c.Side != home {
		t.Fatalf("winner = %s, want home", c.Side)
	}
	if c.Deficit != 10 || c.DeficitScore != "10-0" || c.DeficitPeriod != 1 {
		t.Errorf("deficit = %d at %s (Q%d), want 10 at 10-0 (Q1)", c.Deficit, c.DeficitScore, c.DeficitPeriod)
	}

	// Without an authoritative score the last play decides.
	c = BiggestComeback(plays, model.Score{})
	if c.Side != away || !c.NeverTrailed {
		t.Errorf("fallback winner = %s never-trailed=%v, want away true", c.Side, c.NeverTrailed)
	}
	if c.FinalScore != (model.Score{Away: 50, Home: 48}) {
		t.Errorf("fallback FinalScore = %v", c.FinalScore)
	}
}

// ---- Clutch ----

func TestClutchScoringWindow(t *testing.T) {
	plays := []model.Play{
		score(home, "Tatum", "2:30", 4, 3, 100, 103),
		score(home, "Tatum", "5:01", 4, 2, 100, 105),
		score(home, "Brown", "garbage", 4, 2, 100, 107),
		score(home, "Brown", "1:00", 3, 2, 100, 109),
		score(home, "Brown", "4:59", 4, 1, 100, 110),
		score(away, "Doncic", "1:10", 4, 2, 102, 110),
		score(away, "Irving", "0:40", 4, 3, 105, 110),
		score(home, "", "0:20", 4, 2, 105, 112),
	}
	c := ClutchScoring(plays, DefaultOptions())

	if len(c.Home) != 2 {
		t.Fatalf("expected 2 home clutch lines, got %+v", c.Home)
	}
	if c.Home[0].Player != "Tatum" || c.Home[0].Points != 3 || c.Home[0].Three != 1 || c.Home[0].FG != 1 {
		t.Errorf("Tatum line = %+v, want 3 pts 1 FG 1 three", c.Home[0])
	}
	if c.Home[1].Player != "Brown" || c.Home[1].Points != 1 || c.Home[1].FT != 1 || c.Home[1].FG != 0 {
		t.Errorf("Brown line = %+v, want 1 pt 1 FT", c.Home[1])
	}

	if len(c.Away) != 2 || c.Away[0].Player != "Irving" || c.Away[1].Player != "Doncic" {
		t.Errorf("away lines should be sorted by points: %+v", c.Away)
	}
}

func TestParseClockMinutes(t *testing.T) {
	cases := []struct {
		clock string
		want  float64
		ok    bool
	}{
		{"2:30", 2.5, true},
		{"5:01", 5 + 1.0/60, true},
		{"12:00", 12, true},
		{"0:45.3", 0.75, true},
		{" 1:15 ", 1.25, true},
		{"garbage", 0, false},
		{"", 0, false},
		{"45.3", 0, false},
		{"1:75", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseClockMinutes(c.clock)
		if ok != c.ok || math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ParseClockMinutes(%q) = %v, %v; want %v, %v", c.clock, got, ok, c.want, c.ok)
		}
	}
}

// ---- Go-ahead shots ----

func TestGameWinningShots(t *testing.T) {
	plays := []model.Play{
		score(home, "H1", "11:00", 1, 2, 0, 2),
		score(away, "A1", "10:30", 1, 3, 3, 2),
		score(home, "H2", "1:45", 4, 2, 3, 4),
		score(away, "A1", "1:20", 4, 2, 5, 4),
		quiet(home, "H1", 5, 4),
		score(home, "H3", "0:40", 5, 3, 5, 7),
	}
	shots := GameWinningShots(plays, model.Score{Away: 5, Home: 7}, DefaultOptions())

	if shots.DecisiveShot == nil || shots.DecisiveShot.Player != "H3" {
		t.Fatalf("decisive shot = %+v, want H3", shots.DecisiveShot)
	}
	if shots.DecisiveShot.Score != (model.Score{Away: 5, Home: 7}) || shots.DecisiveShot.Period != 5 {
		t.Errorf("decisive shot details = %+v", shots.DecisiveShot)
	}
	if shots.ClutchGoAhead == nil || shots.ClutchGoAhead.Player != "H2" {
		t.Errorf("clutch go-ahead = %+v, want H2", shots.ClutchGoAhead)
	}
}

func TestGameWinningShotsTieIsNotGoAhead(t *testing.T) {
	plays := []model.Play{
		score(away, "A1", "3:00", 4, 2, 2, 0),
		score(home, "H1", "1:30", 4, 2, 2, 2),
	}
	shots := GameWinningShots(plays, model.Score{Away: 2, Home: 4}, DefaultOptions())
	if shots.DecisiveShot != nil || shots.ClutchGoAhead != nil {
		t.Errorf("a tying basket is not a go-ahead: %+v", shots)
	}
}

// ---- Summary and batch ----

func TestSummarize(t *testing.T) {
	plays := []model.Play{
		score(away, "A1", "11:30", 1, 3, 3, 0),
		score(away, "A1", "11:00", 1, 3, 6, 0),
		score(away, "A1", "10:30", 1, 3, 9, 0),
		score(home, "H1", "4:00", 4, 3, 9, 3),
		score(home, "H1", "3:00", 4, 3, 9, 6),
		score(home, "H2", "1:00", 4, 2, 9, 8),
		score(home, "H1", "0:10", 4, 2, 9, 10),
	}
	n := Analyze(plays, model.Score{Away: 9, Home: 10}, DefaultOptions())
	s := Summarize("g1", plays, n)

	if s.GameID != "g1" || s.PlayCount != len(plays) {
		t.Errorf("summary header = %q/%d", s.GameID, s.PlayCount)
	}
	if s.BestTeamRun == nil || s.BestTeamRun.Side != home || s.BestTeamRun.Points != 10 {
		t.Errorf("best run = %+v, want home 10", s.BestTeamRun)
	}
	if s.BestStreak == nil || s.BestStreak.Player != "A1" || s.BestStreak.Points != 9 {
		t.Errorf("best streak = %+v, want A1 9", s.BestStreak)
	}
	if s.Comeback == nil || s.Comeback.Deficit != 9 {
		t.Errorf("comeback = %+v, want deficit 9", s.Comeback)
	}
	if s.TopClutchScorer == nil || s.TopClutchScorer.Player != "H1" || s.TopClutchScorer.Points != 8 {
		t.Errorf("top clutch scorer = %+v, want H1 8", s.TopClutchScorer)
	}
	if s.DecisiveShot == nil || s.DecisiveShot.Player != "H1" || s.ClutchGoAhead != s.DecisiveShot {
		t.Errorf("go-ahead shots = %+v / %+v", s.DecisiveShot, s.ClutchGoAhead)
	}
}

func TestAnalyzeAllKeepsOrder(t *testing.T) {
	var games []model.Game
	for i := 1; i <= 5; i++ {
		pts := 8 + i
		games = append(games, model.Game{
			Meta:  model.GameMeta{GameID: string(rune('a' + i)), AwayScore: pts},
			Plays: []model.Play{score(away, "A1", "5:00", 1, pts, pts, 0)},
		})
	}
	out, err := AnalyzeAll(context.Background(), games, DefaultOptions(), 2)
	if err != nil {
		t.Fatalf("AnalyzeAll: %v", err)
	}
	for i, n := range out {
		if len(n.TeamScoringRuns) != 1 || n.TeamScoringRuns[0].Points != 9+i {
			t.Errorf("game %d: runs = %+v, want one %d-point run", i, n.TeamScoringRuns, 9+i)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := AnalyzeAll(ctx, games, DefaultOptions(), 2); err == nil {
		t.Error("expected error from cancelled context")
	}
}
