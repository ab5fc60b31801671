// thermo.go
// 熱力学計算（反応商 Q、Nernst 補正、ΔG、エクセルギー効率）。
// すべて純関数で、濃度は呼び出し側が条件ごとのスナップショットとして渡す。

package thermo

import (
	"math"

	"github.com/ichijohodaka/redox-exergy/internal/redox"
)

// Constants は計算に使う物理定数
type Constants struct {
	R float64 // 気体定数 J/(mol·K)
	F float64 // ファラデー定数 C/mol
}

// Standard は既定の定数
var Standard = Constants{R: 8.3145, F: 96485.3329}

// EnthalpyEpsilon 未満の |ΔH| (kJ/mol) では ΔH 基準の効率を定義しない
const EnthalpyEpsilon = 1e-8

// Engine は定数を保持するだけの値型
type Engine struct {
	c Constants
}

// New は定数を指定して Engine を作る
func New(c Constants) Engine {
	return Engine{c: c}
}

// Default は Standard 定数の Engine
func Default() Engine {
	return New(Standard)
}

// Constants は保持している定数を返す
func (e Engine) Constants() Constants {
	return e.c
}

// ReactionQuotient は Q = Π[生成物]^ν / Π[反応物]^ν を返す。
// 濃度表にない化学種は活量 1 とみなす。濃度は正であること（ゼロ除算はガードしない）。
func ReactionQuotient(p redox.Pair, conc map[string]float64) float64 {
	q := 1.0
	for _, sp := range redox.SortedKeys(p.Products) {
		q *= math.Pow(activity(conc, sp), p.Products[sp])
	}
	for _, sp := range redox.SortedKeys(p.Reactants) {
		q /= math.Pow(activity(conc, sp), p.Reactants[sp])
	}
	return q
}

func activity(conc map[string]float64, species string) float64 {
	if c, ok := conc[species]; ok {
		return c
	}
	return 1
}

// AdjustedPotential は Nernst 式 E = E0 - RT/(nF)·ln(Q)。n != 0, Q > 0 が前提。
func (e Engine) AdjustedPotential(e0 float64, n int, temperature, q float64) float64 {
	return e0 - (e.c.R*temperature)/(float64(n)*e.c.F)*math.Log(q)
}

// GibbsFreeEnergy は ΔG = -nFE（J/mol）
func (e Engine) GibbsFreeEnergy(potential float64, n int) float64 {
	return -float64(n) * e.c.F * potential
}

// EfficiencyFromG は 100·ΔG/ΔG0。ΔG0 == 0 のときは 0 を返す。
func EfficiencyFromG(deltaG, deltaG0 float64) float64 {
	if deltaG0 == 0 {
		return 0
	}
	return deltaG / deltaG0 * 100
}

// EfficiencyFromH は ΔG/ΔH を [0, 1] に丸めてから % にする。
// |ΔH| < EnthalpyEpsilon なら Undefined。
func EfficiencyFromH(deltaG, deltaHkJ float64) Efficiency {
	if math.Abs(deltaHkJ) < EnthalpyEpsilon {
		return Undefined
	}
	ratio := deltaG / (deltaHkJ * 1000)
	ratio = math.Max(0, math.Min(1, ratio))
	return Defined(ratio * 100)
}

// Result は 1 条件での評価結果
type Result struct {
	Potential float64    // V
	DeltaG    float64    // J/mol
	DeltaG0   float64    // J/mol（E0 基準）
	ExergyG   float64    // %
	ExergyH   Efficiency // %
}

// Evaluate は Q → E → ΔG → 効率 をまとめて計算する
func (e Engine) Evaluate(p redox.Pair, conc map[string]float64, temperature float64) Result {
	q := ReactionQuotient(p, conc)
	potential := e.AdjustedPotential(p.StandardPotential, p.ElectronCount, temperature, q)
	dG := e.GibbsFreeEnergy(potential, p.ElectronCount)
	dG0 := e.GibbsFreeEnergy(p.StandardPotential, p.ElectronCount)
	return Result{
		Potential: potential,
		DeltaG:    dG,
		DeltaG0:   dG0,
		ExergyG:   EfficiencyFromG(dG, dG0),
		ExergyH:   EfficiencyFromH(dG, p.Enthalpy),
	}
}

// At は pH・温度を指定して評価する（H+ を持つ反応だけ pH が効く）
func (e Engine) At(p redox.Pair, pH, temperature float64) Result {
	return e.Evaluate(p, p.AtPH(pH), temperature)
}
