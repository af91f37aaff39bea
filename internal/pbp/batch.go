package pbp

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// AnalyzeAll analyzes each game concurrently with at most workers goroutines
// (unbounded when workers <= 0). Results are returned in input order. The only
// error is ctx cancellation.
func AnalyzeAll(ctx context.Context, games []model.Game, opts Options, workers int) ([]model.GameNarrative, error) {
	out := make([]model.GameNarrative, len(games))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Analyze(games[i].Plays, games[i].Meta.Final(), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
