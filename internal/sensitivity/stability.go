// stability.go
package sensitivity

import "math"

// Stability は掃引結果からの安定性分類
type Stability string

const (
	Stable    Stability = "Stable"
	Moderate  Stability = "Moderate"
	Sensitive Stability = "Sensitive"
)

// しきい値（下位クラスには ΔG と効率の両方が下回る必要がある）
var (
	DeltaGThresholds = [2]float64{10, 50} // kJ/mol
	ExergyThresholds = [2]float64{10, 50} // %
)

// Ranges は pH 掃引・温度掃引それぞれの変化幅
type Ranges struct {
	DeltaGPH float64 // kJ/mol
	DeltaGT  float64 // kJ/mol
	ExergyPH float64 // %
	ExergyT  float64 // %
}

// MaxDeltaG は 2 つの掃引のうち大きい方の ΔG 幅
func (r Ranges) MaxDeltaG() float64 { return math.Max(r.DeltaGPH, r.DeltaGT) }

// MaxExergy は 2 つの掃引のうち大きい方の効率幅
func (r Ranges) MaxExergy() float64 { return math.Max(r.ExergyPH, r.ExergyT) }

// Classify は変化幅から分類する
func Classify(r Ranges) Stability {
	return ClassifyMax(r.MaxDeltaG(), r.MaxExergy())
}

// ClassifyMax は最大幅 2 つから分類する
func ClassifyMax(maxDG, maxEx float64) Stability {
	switch {
	case maxDG < DeltaGThresholds[0] && maxEx < ExergyThresholds[0]:
		return Stable
	case maxDG < DeltaGThresholds[1] && maxEx < ExergyThresholds[1]:
		return Moderate
	default:
		return Sensitive
	}
}
