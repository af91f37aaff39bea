package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/pable/go-hoops-metrics/internal/model"
)

const sampleGame = `{
  "game_id": "401585001",
  "basic_info": {
    "date": "2024-01-15",
    "season": "2023-24",
    "away_team": "Lakers",
    "home_team": "Celtics",
    "away_score": "102",
    "home_score": 110
  },
  "box_score": {
    "away": {"players": [
      {"name": "LeBron James Jr.", "playerId": "1966", "starter": true, "mp": "36:30",
       "pts": "28", "trb": 10, "ast": "11.0", "fg": 11, "fga": 20, "plusMinus": "+5"},
      {"name": "Bench Guy", "mp": "Did Not Play", "pts": null},
      {"name": "", "pts": 4}
    ]},
    "home": {"players": [
      {"name": "Jayson Tatum", "player_id": "4065648", "starter": "true", "mp": 38.5, "pts": 31}
    ]}
  },
  "play_by_play": {"plays": [
    {"time": "11:40", "period": 1, "team_side": "home", "player": "Jayson Tatum",
     "text": "Jayson Tatum makes 26-foot three point jumper", "scoring_play": true,
     "score_value": 3, "away_score": 0, "home_score": 3},
    {"time": "11:20", "period": 1, "text": "  "},
    {"time": "11:02", "period": 1, "team_side": "away", "text": "LeBron James misses layup"},
    {"time": "10:45", "period": 1, "team_side": "away", "player": "LeBron James",
     "text": "LeBron James makes driving layup", "scoring_play": true, "score_value": 2,
     "away_score": 2, "home_score": 3}
  ]}
}`

func TestParseGame(t *testing.T) {
	g, err := ParseGame([]byte(sampleGame))
	if err != nil {
		t.Fatalf("ParseGame: %v", err)
	}

	if g.Meta.GameID != "401585001" {
		t.Errorf("GameID = %q", g.Meta.GameID)
	}
	if g.Meta.DateKey != "20240115" {
		t.Errorf("DateKey = %q, want 20240115", g.Meta.DateKey)
	}
	if g.Meta.GameType != "regular" {
		t.Errorf("GameType = %q, want regular default", g.Meta.GameType)
	}
	if got := g.Meta.Final(); got != (model.Score{Away: 102, Home: 110}) {
		t.Errorf("Final = %v", got)
	}

	if len(g.Players) != 4 {
		t.Fatalf("expected 4 player rows, got %d", len(g.Players))
	}
	lbj := g.Players[0]
	if lbj.Side != model.SideAway || !lbj.Starter || lbj.PlayerID != "1966" {
		t.Errorf("unexpected LeBron row: %+v", lbj)
	}
	if lbj.PTS != 28 || lbj.TRB != 10 || lbj.AST != 11 {
		t.Errorf("LeBron counting stats = %d/%d/%d, want 28/10/11", lbj.PTS, lbj.TRB, lbj.AST)
	}
	if lbj.Minutes != 36.5 {
		t.Errorf("LeBron minutes = %v, want 36.5", lbj.Minutes)
	}
	if !lbj.HasPlusMinus || lbj.PlusMinus != 5 {
		t.Errorf("LeBron plus-minus = %d (has=%v), want +5", lbj.PlusMinus, lbj.HasPlusMinus)
	}

	dnp := g.Players[1]
	if dnp.Minutes != 0 || dnp.PTS != 0 || dnp.HasPlusMinus {
		t.Errorf("DNP row should default to zeros: %+v", dnp)
	}

	tatum := g.Players[3]
	if tatum.Side != model.SideHome || !tatum.Starter || tatum.Minutes != 38.5 {
		t.Errorf("unexpected Tatum row: %+v", tatum)
	}

	if len(g.Plays) != 3 {
		t.Fatalf("expected 3 plays after dropping blank text, got %d", len(g.Plays))
	}
	if g.Plays[0].Type != model.PlayMadeThree {
		t.Errorf("play 0 type = %q, want made_three", g.Plays[0].Type)
	}
	if g.Plays[0].Team != "Celtics" {
		t.Errorf("play 0 team = %q, want Celtics from metadata", g.Plays[0].Team)
	}
	miss := g.Plays[1]
	if miss.Type != model.PlayMissedFG {
		t.Errorf("play 1 type = %q, want missed_fg", miss.Type)
	}
	if miss.Score() != (model.Score{Away: 0, Home: 3}) {
		t.Errorf("play 1 should carry score forward, got %v", miss.Score())
	}
}

func TestParseGameErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"syntax", `{"game_id": `},
		{"array", `[1, 2, 3]`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseGame([]byte(c.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseGameFileFallsBackToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "20240115_LAL_BOS.json")
	if err := os.WriteFile(path, []byte(`{"basic_info": {"date": "2024-01-15"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ParseGameFile(path)
	if err != nil {
		t.Fatalf("ParseGameFile: %v", err)
	}
	if g.Meta.GameID != "20240115_LAL_BOS" {
		t.Errorf("GameID = %q, want file base name", g.Meta.GameID)
	}
	if len(g.Meta.SourceHash) != 64 {
		t.Errorf("SourceHash = %q, want sha256 hex", g.Meta.SourceHash)
	}
	if g.Players != nil || g.Plays != nil {
		t.Errorf("expected no players or plays, got %d/%d", len(g.Players), len(g.Plays))
	}
}

func TestParsePlaysRejectsDecreasingScore(t *testing.T) {
	arr := gjson.Parse(`[
	  {"text": "a", "away_score": 10, "home_score": 8},
	  {"text": "b", "away_score": 4, "home_score": 9},
	  {"text": "c", "away_score": "12", "home_score": null}
	]`)
	plays := ParsePlays(arr, model.GameMeta{})
	want := []model.Score{{Away: 10, Home: 8}, {Away: 10, Home: 9}, {Away: 12, Home: 9}}
	for i, w := range want {
		if got := plays[i].Score(); got != w {
			t.Errorf("play %d score = %v, want %v", i, got, w)
		}
	}
}

func TestSafeInt(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`12`, 12},
		{`"12"`, 12},
		{`"12.0"`, 12},
		{`"+5"`, 5},
		{`"-3"`, -3},
		{`7.9`, 7},
		{`null`, 0},
		{`""`, 0},
		{`"DNP"`, 0},
		{`true`, 1},
	}
	for _, c := range cases {
		if got := SafeInt(gjson.Parse(c.raw)); got != c.want {
			t.Errorf("SafeInt(%s) = %d, want %d", c.raw, got, c.want)
		}
	}
	if _, ok := IntValue(gjson.Result{}); ok {
		t.Error("IntValue on missing value should not be ok")
	}
}

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`"34:12"`, 34.2},
		{`"34.5"`, 34.5},
		{`22`, 22},
		{`"0:00"`, 0},
		{`"Did Not Play"`, 0},
		{`"x:30"`, 0},
	}
	for _, c := range cases {
		got := ParseMinutes(gjson.Parse(c.raw))
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("ParseMinutes(%s) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestSafeBool(t *testing.T) {
	cases := map[string]bool{
		`true`:    true,
		`"true"`:  true,
		`"1"`:     true,
		`1`:       true,
		`0`:       false,
		`"false"`: false,
		`"yes"`:   false,
		`null`:    false,
	}
	for raw, want := range cases {
		if got := SafeBool(gjson.Parse(raw)); got != want {
			t.Errorf("SafeBool(%s) = %v, want %v", raw, got, want)
		}
	}
}

func TestClassifyPlay(t *testing.T) {
	cases := []struct {
		text string
		want model.PlayType
	}{
		{"Stephen Curry makes 28-foot three point jumper", model.PlayMadeThree},
		{"Curry makes 3-pt shot", model.PlayMadeThree},
		{"Anthony Davis makes free throw 1 of 2", model.PlayMadeFT},
		{"Zion Williamson makes dunk", model.PlayMadeDunk},
		{"Ja Morant makes driving layup", model.PlayMadeLayup},
		{"Devin Booker makes 18-foot jumper", model.PlayMadeJumper},
		{"Nikola Jokic makes 6-foot hook shot", model.PlayMadeFG},
		{"Klay Thompson misses 25-foot three point jumper", model.PlayMissedThree},
		{"Rudy Gobert misses free throw 2 of 2", model.PlayMissedFT},
		{"Rudy Gobert misses layup", model.PlayMissedFG},
		{"Rudy Gobert offensive rebound", model.PlayOffensiveRebound},
		{"Jrue Holiday defensive rebound", model.PlayDefensiveRebound},
		{"Celtics team rebound", model.PlayRebound},
		{"Trae Young bad pass (turnover)", model.PlayTurnover},
		{"Alex Caruso steals", model.PlaySteal},
		{"Victor Wembanyama blocks Paolo Banchero's layup", model.PlayBlock},
		{"Draymond Green personal foul", model.PlayFoul},
		{"Lakers Full timeout", model.PlayTimeout},
		{"Jump ball: Embiid vs. Jokic", model.PlayJumpBall},
		{"End of the 3rd Quarter", model.PlayPeriodEnd},
		{"End of Game", model.PlayPeriodEnd},
		{"Official review", model.PlayOther},
	}
	for _, c := range cases {
		if got := ClassifyPlay(c.text); got != c.want {
			t.Errorf("ClassifyPlay(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
