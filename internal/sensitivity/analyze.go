// analyze.go
package sensitivity

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// Summary は反応 1 つ分の要約
type Summary struct {
	Pair string
	Ranges
	Stability Stability
}

// Result は 2 本の掃引と要約
type Result struct {
	Pair        redox.Pair
	PH          []Point
	Temperature []Point
	Summary     Summary
}

// Summarize は 2 本の掃引から要約を作る
func Summarize(name string, ph, temp []Point) Summary {
	r := Ranges{
		DeltaGPH: DeltaGRange(ph),
		DeltaGT:  DeltaGRange(temp),
		ExergyPH: EfficiencyRange(ph),
		ExergyT:  EfficiencyRange(temp),
	}
	return Summary{Pair: name, Ranges: r, Stability: Classify(r)}
}

// Analyze は 1 反応の掃引と分類
func Analyze(eng thermo.Engine, p redox.Pair, c Config) Result {
	ph := PHSweep(eng, p, c)
	temp := TemperatureSweep(eng, p, c)
	return Result{
		Pair:        p,
		PH:          ph,
		Temperature: temp,
		Summary:     Summarize(p.Name, ph, temp),
	}
}

// RunAll は全反応を解析する（反応単位で並列、結果はカタログ順）
func RunAll(ctx context.Context, eng thermo.Engine, pairs []redox.Pair, c Config, workers int, log *zap.Logger) ([]Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(pairs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, p := range pairs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Analyze(eng, p, c)
			log.Debug("sensitivity sweep done",
				zap.String("pair", p.Name),
				zap.Int("points", c.Points),
				zap.String("stability", string(results[i].Summary.Stability)),
			)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	log.Info("sensitivity analysis complete", zap.Int("pairs", len(results)))
	return results, nil
}

// Summaries は結果から要約だけを取り出す
func Summaries(results []Result) []Summary {
	out := make([]Summary, len(results))
	for i, r := range results {
		out[i] = r.Summary
	}
	return out
}
