package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/pbp"
)

const analyzeSystemPrompt = `You are a basketball performance analyst. You are given structured data
computed from box scores and play-by-play logs, and a question from the user.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise. Prefer what the numbers show over general basketball commentary.

Metrics glossary:
- PPG/RPG/APG/SPG/BPG/MPG: per-game averages over games played.
- FG%, 3P%, FT%: made over attempted, from season totals (not averaged per game).
- TS%: true shooting, PTS / (2 * (FGA + 0.44 * FTA)).
- eFG%: (FG + 0.5 * 3PM) / FGA.
- Game score: PTS + 0.4 FG - 0.7 FGA - 0.4 (FTA - FT) + 0.7 ORB + 0.3 DRB + STL + 0.7 AST + 0.7 BLK - 0.4 PF - TOV.
- Scoring run: unanswered points by one team (reported at 8+).
- Point streak: consecutive points by one player with no other player from either team scoring in between (reported at 6+).
- Clutch: 4th quarter with under 5:00 on the clock (5:00 itself is excluded).
- Decisive shot: the last go-ahead basket by the eventual winner.
- Double-double / triple-double: 10+ in two / three of PTS, REB, AST, STL, BLK.`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeRender bool

	analyzePlayerSeason string
	analyzePlayerType   string
	analyzePlayerLast   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzePlayerCmd = &cobra.Command{
	Use:   "player <name-or-id> <question>",
	Short: "Analyze a player's season with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzePlayer,
}

var analyzeGameCmd = &cobra.Command{
	Use:   "game <id-prefix> <question>",
	Short: "Analyze a single game with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzeGame,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.PersistentFlags().BoolVar(&analyzeRender, "render", false, "render the answer as styled markdown once complete")

	analyzePlayerCmd.Flags().StringVar(&analyzePlayerSeason, "season", "", "only games of this season label")
	analyzePlayerCmd.Flags().StringVar(&analyzePlayerType, "type", "", "only games of this type (e.g. regular, playoff)")
	analyzePlayerCmd.Flags().IntVar(&analyzePlayerLast, "last", 10, "number of most recent game lines to include")

	analyzeCmd.AddCommand(analyzePlayerCmd)
	analyzeCmd.AddCommand(analyzeGameCmd)
}

func runAnalyzePlayer(cmd *cobra.Command, args []string) error {
	who, question := args[0], args[1]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := filteredGames(db, aggregator.Filter{GameType: analyzePlayerType, Season: analyzePlayerSeason})
	if err != nil {
		return err
	}
	tables := aggregator.ProcessAll(games, cfg.Aggregator())

	contextJSON, err := buildPlayerContext(tables, who, analyzePlayerLast)
	if err != nil {
		return err
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

func runAnalyzeGame(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := db.GetGameByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("find game: %w", err)
	}
	if g == nil {
		return fmt.Errorf("no game found with prefix %q", args[0])
	}

	contextJSON, err := buildGameContext(g, cfg.PBP())
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, args[1])
}

// buildPlayerContext serialises one player's season line, highs, milestone
// counts and most recent games into compact JSON. who matches a player id
// or a name, ignoring case and suffixes.
func buildPlayerContext(t model.SeasonTables, who string, last int) (string, error) {
	key := aggregator.NormalizeName(who)
	var line *model.PlayerSeasonLine
	for i := range t.Players {
		p := &t.Players[i]
		if p.PlayerID == who || aggregator.NormalizeName(p.Player) == key {
			line = p
			break
		}
	}
	if line == nil {
		return "", fmt.Errorf("no games found for player %q (after filters)", who)
	}

	var highs *model.SeasonHighs
	for i := range t.SeasonHighs {
		if t.SeasonHighs[i].PlayerID == line.PlayerID {
			highs = &t.SeasonHighs[i]
			break
		}
	}

	var recent []model.PlayerGameRecord
	for _, r := range t.PlayerGames {
		if aggregator.IdentityKey(r.PlayerID, r.Player) != line.PlayerID {
			continue
		}
		if last > 0 && len(recent) >= last {
			break
		}
		recent = append(recent, r)
	}

	doc := map[string]interface{}{
		"subject":        "player",
		"player":         line.Player,
		"season":         line,
		"season_highs":   highs,
		"triple_doubles": countMilestones(t.TripleDoubles, line.PlayerID),
		"double_doubles": countMilestones(t.DoubleDoubles, line.PlayerID),
		"recent_games":   recent,
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// buildGameContext serialises a single game's box score and narrative.
func buildGameContext(g *model.Game, opts pbp.Options) (string, error) {
	narrative := pbp.Analyze(g.Plays, g.Meta.Final(), opts)
	doc := map[string]interface{}{
		"subject":   "game",
		"meta":      g.Meta,
		"box_score": g.Players,
		"narrative": narrative,
		"summary":   pbp.Summarize(g.Meta.GameID, g.Plays, narrative),
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// countMilestones counts the games belonging to the player identity id.
func countMilestones(games []model.MilestoneGame, id string) int {
	n := 0
	for _, g := range games {
		if aggregator.IdentityKey(g.PlayerID, g.Player) == id {
			n++
		}
	}
	return n
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
// With --render the answer is buffered and printed as styled markdown.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = cfg.AnthropicAPIKey
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	var out io.Writer = os.Stdout
	var buf strings.Builder
	if analyzeRender {
		out = &buf
	}

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(out, delta.Delta.AsTextDelta().Text)
			}
		}
	}

	if analyzeRender && buf.Len() > 0 {
		rendered, err := glamour.Render(buf.String(), "dark")
		if err != nil {
			// Fall back to the raw markdown.
			rendered = buf.String()
		}
		fmt.Fprint(os.Stdout, rendered)
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
