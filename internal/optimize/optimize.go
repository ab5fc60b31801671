// optimize.go
// (温度, pH) の格子を総当たりして ΔH 基準の効率が最大になる条件を探す

package optimize

import (
	"errors"
	"fmt"

	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// ErrEmptyGrid は格子の設定が不正なとき
var ErrEmptyGrid = errors.New("empty search grid")

// Grid は探索範囲。温度・pH それぞれ Steps 点で等間隔に取る。
type Grid struct {
	TempMin float64 `yaml:"temp_min"`
	TempMax float64 `yaml:"temp_max"`
	PHMin   float64 `yaml:"ph_min"`
	PHMax   float64 `yaml:"ph_max"`
	Steps   int     `yaml:"steps"`
}

// DefaultGrid: 300–373 K, pH 5–9, 20×20 点
func DefaultGrid() Grid {
	return Grid{TempMin: 300, TempMax: 373, PHMin: 5, PHMax: 9, Steps: 20}
}

// Validate は Steps >= 1、Min <= Max、温度 > 0 を確認する
func (g Grid) Validate() error {
	if g.Steps < 1 {
		return fmt.Errorf("%w: steps must be >= 1 (got %d)", ErrEmptyGrid, g.Steps)
	}
	if g.TempMin > g.TempMax || g.PHMin > g.PHMax {
		return fmt.Errorf("%w: inverted range T=[%g, %g] pH=[%g, %g]", ErrEmptyGrid, g.TempMin, g.TempMax, g.PHMin, g.PHMax)
	}
	if !(g.TempMin > 0) {
		return fmt.Errorf("%w: temperature must be positive (got %g K)", ErrEmptyGrid, g.TempMin)
	}
	return nil
}

// Temperatures は温度軸のサンプル
func (g Grid) Temperatures() []float64 { return Linspace(g.TempMin, g.TempMax, g.Steps) }

// PHs は pH 軸のサンプル
func (g Grid) PHs() []float64 { return Linspace(g.PHMin, g.PHMax, g.Steps) }

// Linspace は [start, stop] を n 点で等分する（両端を含む）。n == 1 なら start のみ。
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Point は格子上の 1 点での評価
type Point struct {
	Temperature float64
	PH          float64
	DeltaG      float64 // J/mol
	Efficiency  thermo.Efficiency
}

// Objective は (T, pH) での評価関数
type Objective func(temperature, pH float64) Point

// Maximize は格子を 温度（外側）→ pH（内側）の昇順で走査し、
// 効率が厳密に大きい点だけで更新する（同値なら先に見つけた点）。
// すべて未定義なら ok == false。
func Maximize(g Grid, f Objective) (best Point, ok bool) {
	best.Efficiency = thermo.Undefined
	phs := g.PHs()
	for _, temp := range g.Temperatures() {
		for _, pH := range phs {
			pt := f(temp, pH)
			if pt.Efficiency.Greater(best.Efficiency) {
				best = pt
				ok = true
			}
		}
	}
	return best, ok
}

// Optimum は反応ごとの最適条件
type Optimum struct {
	Pair        string
	Temperature float64 // K
	PH          float64
	DeltaG      float64 // J/mol
	Efficiency  float64 // %
}

// Search は 1 反応について最適条件を探す
func Search(eng thermo.Engine, p redox.Pair, g Grid) (Optimum, bool) {
	best, ok := Maximize(g, func(temp, pH float64) Point {
		res := eng.At(p, pH, temp)
		return Point{Temperature: temp, PH: pH, DeltaG: res.DeltaG, Efficiency: res.ExergyH}
	})
	if !ok {
		return Optimum{Pair: p.Name}, false
	}
	return Optimum{
		Pair:        p.Name,
		Temperature: best.Temperature,
		PH:          best.PH,
		DeltaG:      best.DeltaG,
		Efficiency:  best.Efficiency.Or(0),
	}, true
}
