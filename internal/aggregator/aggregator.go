// Package aggregator folds per-game box-score rows into season tables: player
// totals and rates, per-game records, starter/bench splits, season highs and
// milestone games.
package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Options tunes milestone classification.
type Options struct {
	MilestoneThreshold int // per-category value counted towards a double
}

// DefaultOptions returns the standard threshold of 10.
func DefaultOptions() Options {
	return Options{MilestoneThreshold: 10}
}

// ProcessAll folds games left to right and returns the finalized tables.
func ProcessAll(games []model.Game, opts Options) model.SeasonTables {
	acc := NewAccumulator(opts)
	for i := range games {
		acc.Add(&games[i])
	}
	return acc.Tables()
}

// playerTotals is the running season state of one player identity.
type playerTotals struct {
	key      string
	name     string // display name from the latest game
	nameDate string
	nameGame string
	games    int
	wins     int
	minutes  float64
	box      model.BoxLine
	teams    map[string]struct{}
	highs    model.SeasonHighs
	gameRows []model.PlayerGameRecord
}

type splitKey struct {
	team    string
	starter bool
}

type splitTotals struct {
	games   int
	minutes float64
	box     model.BoxLine
}

// Accumulator is the explicit fold state of the aggregator. Accumulators
// built over disjoint sets of games can be combined with Merge; the result
// equals adding the same games to one accumulator in order.
type Accumulator struct {
	opts    Options
	order   []string
	players map[string]*playerTotals
	splits  map[splitKey]*splitTotals
	triples []model.MilestoneGame
	doubles []model.MilestoneGame
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator(opts Options) *Accumulator {
	if opts.MilestoneThreshold <= 0 {
		opts.MilestoneThreshold = DefaultOptions().MilestoneThreshold
	}
	return &Accumulator{
		opts:    opts,
		players: make(map[string]*playerTotals),
		splits:  make(map[splitKey]*splitTotals),
	}
}

// Add folds every named player row of g.
func (a *Accumulator) Add(g *model.Game) {
	m := g.Meta
	for _, row := range g.Players {
		if strings.TrimSpace(row.Name) == "" {
			continue
		}
		a.addRow(m, row)
	}
}

func (a *Accumulator) addRow(m model.GameMeta, row model.PlayerLine) {
	side := row.Side
	if side == model.SideUnknown {
		side = model.SideAway
	}
	team, opponent := m.Team(side), m.Team(side.Opponent())
	teamScore, oppScore := m.Final().For(side), m.Final().For(side.Opponent())
	won := teamScore > oppScore
	result := "L"
	if won {
		result = "W"
	}
	played := row.Minutes > 0 || row.PTS > 0

	key := IdentityKey(row.PlayerID, row.Name)
	pt := a.player(key)
	pt.rename(row.Name, m.SortKey(), m.GameID)
	if team != "" {
		pt.teams[team] = struct{}{}
	}
	pt.box.Add(row.BoxLine)

	gs := GameScore(row.BoxLine)
	rec := model.PlayerGameRecord{
		Player:    row.Name,
		PlayerID:  row.PlayerID,
		Date:      m.Date,
		DateKey:   m.SortKey(),
		Team:      team,
		Opponent:  opponent,
		Result:    result,
		Score:     fmt.Sprintf("%d-%d", teamScore, oppScore),
		GameID:    m.GameID,
		GameType:  m.GameType,
		Season:    m.Season,
		Starter:   row.Starter,
		Minutes:   row.Minutes,
		BoxLine:   row.BoxLine,
		GameScore: gs,
	}
	pt.gameRows = append(pt.gameRows, rec)

	// Only rows with minutes or points count as a game played.
	if played {
		pt.games++
		pt.minutes += row.Minutes
	}
	if won {
		pt.wins++
	}

	if team != "" {
		sk := splitKey{team: team, starter: row.Starter}
		st := a.splits[sk]
		if st == nil {
			st = &splitTotals{}
			a.splits[sk] = st
		}
		st.games++
		st.minutes += row.Minutes
		st.box.Add(row.BoxLine)
	}

	updateHighs(&pt.highs, row, gs, rec)

	switch Classify(row.BoxLine, a.opts.MilestoneThreshold) {
	case model.MilestoneTripleDouble:
		a.triples = append(a.triples, milestoneGame(rec))
	case model.MilestoneDoubleDouble:
		a.doubles = append(a.doubles, milestoneGame(rec))
	}
}

func (a *Accumulator) player(key string) *playerTotals {
	pt, ok := a.players[key]
	if !ok {
		pt = &playerTotals{key: key, teams: make(map[string]struct{})}
		a.players[key] = pt
		a.order = append(a.order, key)
	}
	return pt
}

// rename keeps the display name seen in the latest game.
func (pt *playerTotals) rename(name, date, gameID string) {
	if pt.name == "" || !gameBefore(date, gameID, pt.nameDate, pt.nameGame) {
		pt.name, pt.nameDate, pt.nameGame = name, date, gameID
	}
}

// Merge folds b into a. a and b must cover disjoint sets of games; the order
// in which partial accumulators are merged does not affect Tables.
func (a *Accumulator) Merge(b *Accumulator) {
	for _, key := range b.order {
		src := b.players[key]
		dst, existed := a.players[key]
		if !existed {
			dst = a.player(key)
		}
		if src.name != "" {
			dst.rename(src.name, src.nameDate, src.nameGame)
		}
		dst.games += src.games
		dst.wins += src.wins
		dst.minutes += src.minutes
		dst.box.Add(src.box)
		for t := range src.teams {
			dst.teams[t] = struct{}{}
		}
		dst.gameRows = append(dst.gameRows, src.gameRows...)
		mergeHighs(&dst.highs, src.highs)
	}
	for k, src := range b.splits {
		dst := a.splits[k]
		if dst == nil {
			dst = &splitTotals{}
			a.splits[k] = dst
		}
		dst.games += src.games
		dst.minutes += src.minutes
		dst.box.Add(src.box)
	}
	a.triples = append(a.triples, b.triples...)
	a.doubles = append(a.doubles, b.doubles...)
}

// Tables finalizes the accumulated state. The accumulator stays usable.
func (a *Accumulator) Tables() model.SeasonTables {
	out := model.SeasonTables{
		Players:         []model.PlayerSeasonLine{},
		PlayerGames:     []model.PlayerGameRecord{},
		StartersVsBench: []model.StarterBenchSplit{},
		SeasonHighs:     []model.SeasonHighs{},
		TripleDoubles:   append([]model.MilestoneGame{}, a.triples...),
		DoubleDoubles:   append([]model.MilestoneGame{}, a.doubles...),
	}

	// ---- Pass 1: player season lines and highs ----
	for _, key := range a.order {
		pt := a.players[key]
		out.PlayerGames = append(out.PlayerGames, pt.gameRows...)
		teams := joinTeams(pt.teams)
		if pt.games > 0 {
			out.Players = append(out.Players, seasonLine(pt, teams))
		}

		h := pt.highs
		h.Player = pt.name
		h.PlayerID = pt.key
		h.Teams = teams
		out.SeasonHighs = append(out.SeasonHighs, h)
	}
	// Ties fall back to the identity key so the output does not depend on
	// the order games were added or merged in.
	sort.Slice(out.Players, func(i, j int) bool {
		pi, pj := out.Players[i], out.Players[j]
		if pi.Totals.PTS != pj.Totals.PTS {
			return pi.Totals.PTS > pj.Totals.PTS
		}
		return pi.PlayerID < pj.PlayerID
	})
	sort.Slice(out.SeasonHighs, func(i, j int) bool {
		hi, hj := out.SeasonHighs[i], out.SeasonHighs[j]
		if hi.PTS.Value != hj.PTS.Value {
			return hi.PTS.Value > hj.PTS.Value
		}
		return hi.PlayerID < hj.PlayerID
	})

	// ---- Pass 2: starters vs bench ----
	teamSet := make(map[string]struct{})
	for k := range a.splits {
		teamSet[k.team] = struct{}{}
	}
	teams := make([]string, 0, len(teamSet))
	for t := range teamSet {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	for _, team := range teams {
		out.StartersVsBench = append(out.StartersVsBench,
			splitRow(team, model.UnitStarters, a.splits[splitKey{team, true}]),
			splitRow(team, model.UnitBench, a.splits[splitKey{team, false}]),
		)
	}

	// ---- Pass 3: date ordering, newest first ----
	sort.SliceStable(out.PlayerGames, func(i, j int) bool {
		ri, rj := out.PlayerGames[i], out.PlayerGames[j]
		return newerRow(ri.DateKey, ri.GameID, IdentityKey(ri.PlayerID, ri.Player),
			rj.DateKey, rj.GameID, IdentityKey(rj.PlayerID, rj.Player))
	})
	for _, ms := range [][]model.MilestoneGame{out.TripleDoubles, out.DoubleDoubles} {
		sort.SliceStable(ms, func(i, j int) bool {
			return newerRow(ms[i].DateKey, ms[i].GameID, IdentityKey(ms[i].PlayerID, ms[i].Player),
				ms[j].DateKey, ms[j].GameID, IdentityKey(ms[j].PlayerID, ms[j].Player))
		})
	}
	return out
}

// newerRow orders per-game rows newest first, then by game id and player.
func newerRow(dateA, gameA, keyA, dateB, gameB, keyB string) bool {
	if dateA != dateB {
		return dateA > dateB
	}
	if gameA != gameB {
		return gameA < gameB
	}
	return keyA < keyB
}

func seasonLine(pt *playerTotals, teams string) model.PlayerSeasonLine {
	g := float64(pt.games)
	b := pt.box
	return model.PlayerSeasonLine{
		Player:   pt.name,
		PlayerID: pt.key,
		Teams:    teams,
		Games:    pt.games,
		Wins:     pt.wins,
		MPG:      round1(pt.minutes / g),
		PPG:      round1(float64(b.PTS) / g),
		RPG:      round1(float64(b.TRB) / g),
		APG:      round1(float64(b.AST) / g),
		SPG:      round1(float64(b.STL) / g),
		BPG:      round1(float64(b.BLK) / g),
		TOPG:     round1(float64(b.TOV) / g),
		FGPct:    ratio(b.FG, b.FGA),
		FG3Pct:   ratio(b.FG3, b.FG3A),
		FTPct:    ratio(b.FT, b.FTA),
		TSPct:    TrueShooting(b.PTS, b.FGA, b.FTA),
		EFGPct:   EffectiveFG(b.FG, b.FG3, b.FGA),
		Minutes:  round1(pt.minutes),
		Totals:   b,
	}
}

func splitRow(team, unit string, st *splitTotals) model.StarterBenchSplit {
	row := model.StarterBenchSplit{Team: team, Unit: unit}
	if st == nil || st.games == 0 {
		return row
	}
	g := float64(st.games)
	row.Games = st.games
	row.PPG = round1(float64(st.box.PTS) / g)
	row.RPG = round1(float64(st.box.TRB) / g)
	row.APG = round1(float64(st.box.AST) / g)
	row.MPG = round1(st.minutes / g)
	row.TotalPTS = st.box.PTS
	row.TotalREB = st.box.TRB
	row.TotalAST = st.box.AST
	return row
}

func milestoneGame(rec model.PlayerGameRecord) model.MilestoneGame {
	return model.MilestoneGame{
		Player:   rec.Player,
		PlayerID: rec.PlayerID,
		Date:     rec.Date,
		DateKey:  rec.DateKey,
		Team:     rec.Team,
		Opponent: rec.Opponent,
		Result:   rec.Result,
		PTS:      rec.PTS,
		TRB:      rec.TRB,
		AST:      rec.AST,
		STL:      rec.STL,
		BLK:      rec.BLK,
		GameID:   rec.GameID,
	}
}

func joinTeams(set map[string]struct{}) string {
	teams := make([]string, 0, len(set))
	for t := range set {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return strings.Join(teams, ", ")
}
