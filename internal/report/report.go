// Package report renders box scores, play-by-play narratives and season
// tables as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cMuted  = color.New(color.Faint)
)

// Section prints a colored section title.
func Section(w io.Writer, title string) {
	cHeader.Fprintf(w, "\n--- %s ---\n", title)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintGameHeader prints a one-line summary header for the game.
func PrintGameHeader(w io.Writer, m model.GameMeta) {
	fmt.Fprintf(w, "\n%s @ %s  |  Final: %d-%d  |  Date: %s  |  Type: %s  |  Season: %s  |  ID: %s\n",
		m.AwayTeam, m.HomeTeam, m.AwayScore, m.HomeScore, orDash(m.Date), orDash(m.GameType),
		orDash(m.Season), m.GameID)
}

// PrintBoxScore prints one table per side. Starters are marked with "*".
func PrintBoxScore(w io.Writer, g *model.Game) {
	for _, side := range []model.Side{model.SideAway, model.SideHome} {
		Section(w, g.Meta.Team(side))
		table := newTable(w)
		table.Header(" ", "PLAYER", "MIN", "PTS", "REB", "AST", "STL", "BLK", "TOV", "PF",
			"FG", "3P", "FT", "+/-")
		var tot model.BoxLine
		for _, p := range g.Players {
			if p.Side != side {
				continue
			}
			tot.Add(p.BoxLine)
			marker := " "
			if p.Starter {
				marker = "*"
			}
			pm := "—"
			if p.HasPlusMinus {
				pm = fmt.Sprintf("%+d", p.PlusMinus)
			}
			table.Append(
				marker,
				p.Name,
				fmt.Sprintf("%.1f", p.Minutes),
				strconv.Itoa(p.PTS),
				strconv.Itoa(p.TRB),
				strconv.Itoa(p.AST),
				strconv.Itoa(p.STL),
				strconv.Itoa(p.BLK),
				strconv.Itoa(p.TOV),
				strconv.Itoa(p.PF),
				made(p.FG, p.FGA),
				made(p.FG3, p.FG3A),
				made(p.FT, p.FTA),
				pm,
			)
		}
		table.Append(" ", "TOTAL", "", strconv.Itoa(tot.PTS), strconv.Itoa(tot.TRB),
			strconv.Itoa(tot.AST), strconv.Itoa(tot.STL), strconv.Itoa(tot.BLK),
			strconv.Itoa(tot.TOV), strconv.Itoa(tot.PF),
			made(tot.FG, tot.FGA), made(tot.FG3, tot.FG3A), made(tot.FT, tot.FTA), "")
		table.Render()
	}
}

// PrintNarrative prints every play-by-play analytic of one game.
func PrintNarrative(w io.Writer, n model.GameNarrative) {
	Section(w, "Team Scoring Runs")
	if len(n.TeamScoringRuns) == 0 {
		cMuted.Fprintln(w, "  none")
	} else {
		table := newTable(w)
		table.Header("TEAM", "RUN", "FROM", "TO", "START", "END")
		for _, r := range n.TeamScoringRuns {
			table.Append(r.Team, fmt.Sprintf("%d-0", r.Points),
				stamp(r.StartPeriod, r.StartClock), stamp(r.EndPeriod, r.EndClock),
				r.StartScore.String(), r.EndScore.String())
		}
		table.Render()
	}

	Section(w, "Player Point Streaks")
	if len(n.PlayerPointStreaks) == 0 {
		cMuted.Fprintln(w, "  none")
	} else {
		table := newTable(w)
		table.Header("PLAYER", "TEAM", "PTS", "FROM", "TO", "START", "END")
		for _, s := range n.PlayerPointStreaks {
			table.Append(s.Player, s.Team, strconv.Itoa(s.Points),
				stamp(s.StartPeriod, s.StartClock), stamp(s.EndPeriod, s.EndClock),
				s.StartScore.String(), s.EndScore.String())
		}
		table.Render()
	}

	Section(w, "Biggest Comeback")
	printComeback(w, n.BiggestComeback)

	Section(w, "Clutch Scoring")
	printClutch(w, n.ClutchScoring)

	Section(w, "Game-Winning Shots")
	printShot(w, "Decisive shot", n.GameWinningShots.DecisiveShot)
	printShot(w, "Clutch go-ahead", n.GameWinningShots.ClutchGoAhead)
}

func printComeback(w io.Writer, c *model.ComebackRecord) {
	switch {
	case c == nil:
		cMuted.Fprintln(w, "  no plays")
	case c.NeverTrailed:
		fmt.Fprintf(w, "  %s never trailed (final %s)\n", c.Team, c.FinalScore)
	default:
		fmt.Fprintf(w, "  %s came back from %d down (%s at %s), final %s\n",
			c.Team, c.Deficit, c.DeficitScore, stamp(c.DeficitPeriod, c.DeficitClock), c.FinalScore)
	}
}

func printClutch(w io.Writer, c model.ClutchScoring) {
	if len(c.Away) == 0 && len(c.Home) == 0 {
		cMuted.Fprintln(w, "  none")
		return
	}
	table := newTable(w)
	table.Header("SIDE", "PLAYER", "PTS", "FG", "3P", "FT")
	for _, lines := range [][]model.ClutchLine{c.Away, c.Home} {
		for _, l := range lines {
			table.Append(l.Side.String(), l.Player, strconv.Itoa(l.Points),
				strconv.Itoa(l.FG), strconv.Itoa(l.Three), strconv.Itoa(l.FT))
		}
	}
	table.Render()
}

func printShot(w io.Writer, label string, s *model.GoAheadShot) {
	if s == nil {
		fmt.Fprintf(w, "  %-16s: —\n", label)
		return
	}
	fmt.Fprintf(w, "  %-16s: %s (%s) %s, %d pts -> %s  %q\n",
		label, orDash(s.Player), s.Team, stamp(s.Period, s.Clock), s.Points, s.Score, s.Text)
}

// PrintSummary prints the headline items of a game narrative.
func PrintSummary(w io.Writer, s model.NarrativeSummary) {
	fmt.Fprintf(w, "  Plays          : %d\n", s.PlayCount)
	if r := s.BestTeamRun; r != nil {
		fmt.Fprintf(w, "  Best team run  : %s %d-0 (%s to %s)\n", r.Team, r.Points,
			stamp(r.StartPeriod, r.StartClock), stamp(r.EndPeriod, r.EndClock))
	}
	if p := s.BestStreak; p != nil {
		fmt.Fprintf(w, "  Best streak    : %s %d straight (%s)\n", p.Player, p.Points, p.Team)
	}
	if c := s.Comeback; c != nil {
		fmt.Fprintf(w, "  Comeback       : %s from %d down\n", c.Team, c.Deficit)
	}
	if c := s.TopClutchScorer; c != nil {
		fmt.Fprintf(w, "  Clutch scorer  : %s %d pts\n", c.Player, c.Points)
	}
	printShot(w, "Clutch go-ahead", s.ClutchGoAhead)
	printShot(w, "Decisive shot", s.DecisiveShot)
}

// PrintSeasonLines prints aggregated per-player season lines.
func PrintSeasonLines(w io.Writer, lines []model.PlayerSeasonLine) {
	table := newTable(w)
	table.Header("PLAYER", "TEAMS", "GP", "W", "MPG", "PPG", "RPG", "APG", "SPG", "BPG", "TOPG",
		"FG%", "3P%", "FT%", "TS%", "EFG%")
	for _, p := range lines {
		table.Append(
			p.Player,
			p.Teams,
			strconv.Itoa(p.Games),
			strconv.Itoa(p.Wins),
			fmt.Sprintf("%.1f", p.MPG),
			fmt.Sprintf("%.1f", p.PPG),
			fmt.Sprintf("%.1f", p.RPG),
			fmt.Sprintf("%.1f", p.APG),
			fmt.Sprintf("%.1f", p.SPG),
			fmt.Sprintf("%.1f", p.BPG),
			fmt.Sprintf("%.1f", p.TOPG),
			pct(p.FGPct, p.Totals.FGA),
			pct(p.FG3Pct, p.Totals.FG3A),
			pct(p.FTPct, p.Totals.FTA),
			pct(p.TSPct, p.Totals.FGA+p.Totals.FTA),
			pct(p.EFGPct, p.Totals.FGA),
		)
	}
	table.Render()
}

// PrintPlayerGames prints per-game player records.
func PrintPlayerGames(w io.Writer, recs []model.PlayerGameRecord) {
	table := newTable(w)
	table.Header("DATE", "PLAYER", "TEAM", "OPP", "RES", "SCORE", "MIN", "PTS", "REB", "AST",
		"FG", "3P", "FT", "GMSC")
	for _, r := range recs {
		table.Append(
			r.Date,
			r.Player,
			r.Team,
			r.Opponent,
			r.Result,
			r.Score,
			fmt.Sprintf("%.1f", r.Minutes),
			strconv.Itoa(r.PTS),
			strconv.Itoa(r.TRB),
			strconv.Itoa(r.AST),
			made(r.FG, r.FGA),
			made(r.FG3, r.FG3A),
			made(r.FT, r.FTA),
			fmt.Sprintf("%.1f", r.GameScore),
		)
	}
	table.Render()
}

// PrintStartersVsBench prints the per-team unit splits.
func PrintStartersVsBench(w io.Writer, rows []model.StarterBenchSplit) {
	table := newTable(w)
	table.Header("TEAM", "UNIT", "GP", "PPG", "RPG", "APG", "MPG", "PTS", "REB", "AST")
	for _, r := range rows {
		table.Append(
			r.Team,
			r.Unit,
			strconv.Itoa(r.Games),
			fmt.Sprintf("%.1f", r.PPG),
			fmt.Sprintf("%.1f", r.RPG),
			fmt.Sprintf("%.1f", r.APG),
			fmt.Sprintf("%.1f", r.MPG),
			strconv.Itoa(r.TotalPTS),
			strconv.Itoa(r.TotalREB),
			strconv.Itoa(r.TotalAST),
		)
	}
	table.Render()
}

// PrintSeasonHighs prints each player's single-game bests.
func PrintSeasonHighs(w io.Writer, highs []model.SeasonHighs) {
	table := newTable(w)
	table.Header("PLAYER", "PTS", "REB", "AST", "STL", "BLK", "3PM", "+/-", "GMSC")
	for _, h := range highs {
		table.Append(
			h.Player,
			high(h.PTS, "%.0f"),
			high(h.TRB, "%.0f"),
			high(h.AST, "%.0f"),
			high(h.STL, "%.0f"),
			high(h.BLK, "%.0f"),
			high(h.FG3, "%.0f"),
			high(h.PlusMinus, "%+.0f"),
			high(h.GameScore, "%.1f"),
		)
	}
	table.Render()
}

// PrintMilestones prints triple-double or double-double games.
func PrintMilestones(w io.Writer, games []model.MilestoneGame) {
	if len(games) == 0 {
		cMuted.Fprintln(w, "  none")
		return
	}
	table := newTable(w)
	table.Header("DATE", "PLAYER", "TEAM", "OPP", "RES", "PTS", "REB", "AST", "STL", "BLK")
	for _, g := range games {
		table.Append(
			g.Date,
			g.Player,
			g.Team,
			g.Opponent,
			g.Result,
			strconv.Itoa(g.PTS),
			strconv.Itoa(g.TRB),
			strconv.Itoa(g.AST),
			strconv.Itoa(g.STL),
			strconv.Itoa(g.BLK),
		)
	}
	table.Render()
}

// PrintSeasonTables prints all six season tables under section headers.
func PrintSeasonTables(w io.Writer, t model.SeasonTables) {
	Section(w, "Players")
	PrintSeasonLines(w, t.Players)
	Section(w, "Starters vs Bench")
	PrintStartersVsBench(w, t.StartersVsBench)
	Section(w, "Season Highs")
	PrintSeasonHighs(w, t.SeasonHighs)
	Section(w, "Triple-Doubles")
	PrintMilestones(w, t.TripleDoubles)
	Section(w, "Double-Doubles")
	PrintMilestones(w, t.DoubleDoubles)
	Section(w, "Player Games")
	PrintPlayerGames(w, t.PlayerGames)
}

// PrintTeamRecords prints win/loss records over the stored games.
func PrintTeamRecords(w io.Writer, recs []storage.TeamRecord) {
	table := newTable(w)
	table.Header("TEAM", "GP", "W", "L", "WIN%")
	for _, r := range recs {
		winPct := "—"
		if r.Games > 0 {
			winPct = fmt.Sprintf("%.0f%%", 100*float64(r.Wins)/float64(r.Games))
		}
		table.Append(r.Team, strconv.Itoa(r.Games), strconv.Itoa(r.Wins), strconv.Itoa(r.Losses), winPct)
	}
	table.Render()
}

// PrintTypeCounts prints the number of stored games per game type.
func PrintTypeCounts(w io.Writer, counts []storage.TypeCount) {
	table := newTable(w)
	table.Header("TYPE", "GAMES")
	for _, c := range counts {
		table.Append(orDash(c.GameType), strconv.Itoa(c.Games))
	}
	table.Render()
}

// PrintRows prints an arbitrary result set, e.g. from a raw SQL query.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

func high(h model.SeasonHigh, format string) string {
	if !h.Set {
		return "—"
	}
	return fmt.Sprintf(format+" (%s)", h.Value, orDash(h.Date))
}

func made(m, a int) string {
	return fmt.Sprintf("%d-%d", m, a)
}

// pct renders a 0..1 ratio as a percentage, or a dash when nothing was attempted.
func pct(v float64, attempts int) string {
	if attempts == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

func stamp(period int, clock string) string {
	if period == 0 && clock == "" {
		return "—"
	}
	if period > 4 {
		return fmt.Sprintf("OT%d %s", period-4, orDash(clock))
	}
	return fmt.Sprintf("Q%d %s", period, orDash(clock))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
