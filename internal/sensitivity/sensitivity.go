// sensitivity.go
// pH・温度それぞれ 1 次元で掃引して ΔG と効率の変化幅を調べ、安定性を分類する

package sensitivity

import (
	"errors"
	"fmt"
	"math"

	"github.com/ichijohodaka/redox-exergy/internal/optimize"
	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// ErrEmptySweep は掃引の設定が不正なとき
var ErrEmptySweep = errors.New("empty sweep")

// Config は 2 種類の掃引の条件
type Config struct {
	PHSweepTemperature float64 `yaml:"ph_sweep_temperature"` // K
	PHMin              float64 `yaml:"ph_min"`
	PHMax              float64 `yaml:"ph_max"`
	TSweepPH           float64 `yaml:"t_sweep_ph"`
	TempMin            float64 `yaml:"temp_min"` // K
	TempMax            float64 `yaml:"temp_max"` // K
	Points             int     `yaml:"points"`
}

// DefaultConfig: pH 4–10 @ 300 K、280–400 K @ pH 7、各 50 点
func DefaultConfig() Config {
	return Config{
		PHSweepTemperature: 300,
		PHMin:              4,
		PHMax:              10,
		TSweepPH:           7,
		TempMin:            280,
		TempMax:            400,
		Points:             50,
	}
}

func (c Config) Validate() error {
	if c.Points < 1 {
		return fmt.Errorf("%w: points must be >= 1 (got %d)", ErrEmptySweep, c.Points)
	}
	if !(c.PHSweepTemperature > 0) || !(c.TempMin > 0) {
		return fmt.Errorf("%w: temperature must be positive", ErrEmptySweep)
	}
	if c.PHMin > c.PHMax || c.TempMin > c.TempMax {
		return fmt.Errorf("%w: inverted range pH=[%g, %g] T=[%g, %g]", ErrEmptySweep, c.PHMin, c.PHMax, c.TempMin, c.TempMax)
	}
	return nil
}

// Point は掃引の 1 行（X は pH か温度）
type Point struct {
	X          float64
	DeltaG     float64 // kJ/mol
	Efficiency thermo.Efficiency
}

// PHSweep は温度固定で pH を掃引する
func PHSweep(eng thermo.Engine, p redox.Pair, c Config) []Point {
	xs := optimize.Linspace(c.PHMin, c.PHMax, c.Points)
	out := make([]Point, len(xs))
	for i, pH := range xs {
		res := eng.At(p, pH, c.PHSweepTemperature)
		out[i] = Point{X: pH, DeltaG: res.DeltaG / 1000, Efficiency: res.ExergyH}
	}
	return out
}

// TemperatureSweep は pH 固定で温度を掃引する。濃度は掃引前に 1 回だけ決める。
func TemperatureSweep(eng thermo.Engine, p redox.Pair, c Config) []Point {
	conc := p.AtPH(c.TSweepPH)
	xs := optimize.Linspace(c.TempMin, c.TempMax, c.Points)
	out := make([]Point, len(xs))
	for i, temp := range xs {
		res := eng.Evaluate(p, conc, temp)
		out[i] = Point{X: temp, DeltaG: res.DeltaG / 1000, Efficiency: res.ExergyH}
	}
	return out
}

// DeltaGRange は max(ΔG) - min(ΔG)。空なら 0。
func DeltaGRange(pts []Point) float64 {
	if len(pts) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, pt := range pts {
		lo = math.Min(lo, pt.DeltaG)
		hi = math.Max(hi, pt.DeltaG)
	}
	return hi - lo
}

// EfficiencyRange は定義済みの効率だけで幅を取る。1 つもなければ 0。
func EfficiencyRange(pts []Point) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, pt := range pts {
		v, ok := pt.Efficiency.Value()
		if !ok {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		n++
	}
	if n == 0 {
		return 0
	}
	return hi - lo
}
