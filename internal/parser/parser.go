package parser

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// UnknownGameID is assigned when a document carries no game id and none can be
// derived from its file name.
const UnknownGameID = "UNKNOWN"

// ParseGameFile reads a normalized game document from path.
// A missing game id falls back to the file's base name.
func ParseGameFile(path string) (*model.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game file: %w", err)
	}
	g, err := ParseGame(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	g.Meta.SourceFile = path
	g.Meta.SourceHash = fmt.Sprintf("%x", sha256.Sum256(data))
	if g.Meta.GameID == UnknownGameID {
		g.Meta.GameID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return g, nil
}

// ParseGame normalizes one game document. Only syntactically invalid JSON is an
// error; missing or garbled fields are defaulted here, once, so the analytics
// never see untyped input.
func ParseGame(data []byte) (*model.Game, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("game document must be a JSON object")
	}

	g := &model.Game{Meta: parseMeta(doc)}

	// ---- Box score rows ----
	for _, side := range []model.Side{model.SideAway, model.SideHome} {
		rows := first(doc,
			"box_score."+string(side)+".players",
			"box_score."+string(side)+".basic",
			"players."+string(side),
		)
		for _, r := range rows.Array() {
			g.Players = append(g.Players, parsePlayerLine(r, side))
		}
	}

	// ---- Play-by-play ----
	plays := first(doc, "play_by_play.plays", "espn_pbp.plays", "plays")
	g.Plays = ParsePlays(plays, g.Meta)
	return g, nil
}

func parseMeta(doc gjson.Result) model.GameMeta {
	info := first(doc, "basic_info", "meta")
	m := model.GameMeta{
		GameID:    str(doc, "game_id", "gameId", "meta.game_id"),
		Date:      str(info, "date"),
		DateKey:   str(info, "date_yyyymmdd", "date_key"),
		Season:    str(info, "season"),
		GameType:  str(info, "game_type", "gameType"),
		AwayTeam:  str(info, "away_team", "awayTeam"),
		HomeTeam:  str(info, "home_team", "homeTeam"),
		AwayScore: SafeInt(first(info, "away_score", "awayScore")),
		HomeScore: SafeInt(first(info, "home_score", "homeScore")),
	}
	if m.GameID == "" {
		m.GameID = UnknownGameID
	}
	if m.GameType == "" {
		m.GameType = "regular"
	}
	if m.DateKey == "" {
		m.DateKey = dateKey(m.Date)
	}
	return m
}

// parsePlayerLine applies the per-field default policy to one box-score row.
// Rows without a name are kept here and dropped by the aggregator.
func parsePlayerLine(r gjson.Result, side model.Side) model.PlayerLine {
	pl := model.PlayerLine{
		Side:     side,
		Name:     strings.TrimSpace(str(r, "name", "player")),
		PlayerID: str(r, "player_id", "playerId"),
		Starter:  SafeBool(r.Get("starter")),
		Minutes:  ParseMinutes(first(r, "mp", "minutes")),
		BoxLine: model.BoxLine{
			PTS:  SafeInt(r.Get("pts")),
			TRB:  SafeInt(r.Get("trb")),
			AST:  SafeInt(r.Get("ast")),
			STL:  SafeInt(r.Get("stl")),
			BLK:  SafeInt(r.Get("blk")),
			TOV:  SafeInt(r.Get("tov")),
			PF:   SafeInt(r.Get("pf")),
			FG:   SafeInt(r.Get("fg")),
			FGA:  SafeInt(r.Get("fga")),
			FG3:  SafeInt(r.Get("fg3")),
			FG3A: SafeInt(r.Get("fg3a")),
			FT:   SafeInt(r.Get("ft")),
			FTA:  SafeInt(r.Get("fta")),
			ORB:  SafeInt(r.Get("orb")),
			DRB:  SafeInt(r.Get("drb")),
		},
	}
	if pm, ok := IntValue(first(r, "plusMinus", "plus_minus")); ok {
		pl.PlusMinus = pm
		pl.HasPlusMinus = true
	}
	return pl
}

// ParsePlays normalizes an ordered play array. Plays with no text are dropped.
// A play missing its cumulative score carries the previous play's score forward,
// which keeps the running totals non-decreasing and makes its delta zero.
func ParsePlays(arr gjson.Result, meta model.GameMeta) []model.Play {
	var (
		out  []model.Play
		prev model.Score
	)
	for _, r := range arr.Array() {
		text := strings.TrimSpace(str(r, "text", "description"))
		if text == "" {
			continue
		}

		p := model.Play{
			Clock:   strings.TrimSpace(str(r, "time", "clock.displayValue", "clock")),
			Period:  SafeInt(first(r, "period.number", "period")),
			Team:    str(r, "team", "team_name"),
			Side:    model.ParseSide(str(r, "team_side", "side")),
			Player:  strings.TrimSpace(str(r, "player")),
			Text:    text,
			Type:    model.PlayType(str(r, "play_type", "type")),
			Scoring: SafeBool(first(r, "scoring_play", "scoring", "scoringPlay")),
			Points:  SafeInt(first(r, "score_value", "points", "scoreValue")),
		}
		if p.Type == "" {
			p.Type = ClassifyPlay(text)
		}
		if p.Team == "" && p.Side != model.SideUnknown {
			p.Team = meta.Team(p.Side)
		}

		p.AwayScore = prev.Away
		if v, ok := IntValue(first(r, "away_score", "awayScore")); ok && v >= prev.Away {
			p.AwayScore = v
		}
		p.HomeScore = prev.Home
		if v, ok := IntValue(first(r, "home_score", "homeScore")); ok && v >= prev.Home {
			p.HomeScore = v
		}
		prev = p.Score()

		out = append(out, p)
	}
	return out
}

// first returns the first path of r that exists.
func first(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// str returns the first present scalar path as a string. Objects and arrays are
// skipped so a nested shape never leaks raw JSON into a name field.
func str(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		v := r.Get(p)
		if !v.Exists() || v.Type == gjson.Null || v.IsObject() || v.IsArray() {
			continue
		}
		return v.String()
	}
	return ""
}

// dateKey derives YYYYMMDD from an ISO "YYYY-MM-DD..." date, or "".
func dateKey(date string) string {
	if len(date) < 10 || date[4] != '-' || date[7] != '-' {
		return ""
	}
	k := date[0:4] + date[5:7] + date[8:10]
	for _, c := range k {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return k
}
