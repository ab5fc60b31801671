// run.go
package optimize

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// RunAll は全反応を探索する。並列化の単位は反応 1 つ（濃度はスナップショットなので共有しない）。
// 結果はカタログ順。最適点が見つからない反応は含めない。
func RunAll(ctx context.Context, eng thermo.Engine, pairs []redox.Pair, g Grid, workers int, log *zap.Logger) ([]Optimum, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Optimum, len(pairs))
	found := make([]bool, len(pairs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, p := range pairs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			opt, ok := Search(eng, p, g)
			if !ok {
				log.Warn("no defined efficiency on grid", zap.String("pair", p.Name))
				return nil
			}
			log.Debug("optimum found",
				zap.String("pair", p.Name),
				zap.Float64("best_T", opt.Temperature),
				zap.Float64("best_pH", opt.PH),
				zap.Float64("efficiency", opt.Efficiency),
			)
			results[i] = opt
			found[i] = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]Optimum, 0, len(pairs))
	for i, ok := range found {
		if ok {
			out = append(out, results[i])
		}
	}
	log.Info("optimization complete", zap.Int("pairs", len(out)), zap.Int("points", g.Steps*g.Steps))
	return out, nil
}
