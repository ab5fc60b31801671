// records.go
// 外部出力用のフラットなレコード（表示桁で丸め済み）

package report

import (
	"math"

	"github.com/ichijohodaka/redox-exergy/internal/optimize"
	"github.com/ichijohodaka/redox-exergy/internal/sensitivity"
	"github.com/ichijohodaka/redox-exergy/internal/simulate"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// Round は小数点以下 places 桁に丸める
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func roundEff(e thermo.Efficiency, places int) thermo.Efficiency {
	v, ok := e.Value()
	if !ok {
		return thermo.Undefined
	}
	return thermo.Defined(Round(v, places))
}

// ResultRecord は (反応, 環境) ごとの評価
type ResultRecord struct {
	Pair        string
	Reaction    string
	Environment string
	Potential   float64 // V, 4 桁
	DeltaG      float64 // kJ/mol, 2 桁
	ExergyG     float64 // %, 2 桁
	ExergyH     thermo.Efficiency
}

func ResultRecords(rows []simulate.Row) []ResultRecord {
	out := make([]ResultRecord, len(rows))
	for i, r := range rows {
		out[i] = ResultRecord{
			Pair:        r.Pair.Name,
			Reaction:    r.Pair.Reaction,
			Environment: r.Environment.Name,
			Potential:   Round(r.Potential, 4),
			DeltaG:      Round(r.DeltaG/1000, 2),
			ExergyG:     Round(r.ExergyG, 2),
			ExergyH:     roundEff(r.ExergyH, 2),
		}
	}
	return out
}

// OptimalRecord は最適条件
type OptimalRecord struct {
	Pair        string
	Temperature float64 // K
	PH          float64
	DeltaG      float64 // kJ/mol
	Efficiency  float64 // %
}

func OptimalRecords(opts []optimize.Optimum) []OptimalRecord {
	out := make([]OptimalRecord, len(opts))
	for i, o := range opts {
		out[i] = OptimalRecord{
			Pair:        o.Pair,
			Temperature: Round(o.Temperature, 2),
			PH:          Round(o.PH, 2),
			DeltaG:      Round(o.DeltaG/1000, 2),
			Efficiency:  Round(o.Efficiency, 2),
		}
	}
	return out
}

// SummaryRecord は感度解析の要約
type SummaryRecord struct {
	Pair      string
	DeltaGPH  float64
	DeltaGT   float64
	ExergyPH  float64
	ExergyT   float64
	Stability sensitivity.Stability
}

func SummaryRecords(sums []sensitivity.Summary) []SummaryRecord {
	out := make([]SummaryRecord, len(sums))
	for i, s := range sums {
		out[i] = SummaryRecord{
			Pair:      s.Pair,
			DeltaGPH:  Round(s.DeltaGPH, 2),
			DeltaGT:   Round(s.DeltaGT, 2),
			ExergyPH:  Round(s.ExergyPH, 2),
			ExergyT:   Round(s.ExergyT, 2),
			Stability: s.Stability,
		}
	}
	return out
}
