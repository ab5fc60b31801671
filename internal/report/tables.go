// tables.go
package report

import (
	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/sensitivity"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// Table は CSV / XLSX / コンソールに共通の表。
// セルは string, int, float64, thermo.Efficiency のいずれか（nil は空欄）。
type Table struct {
	Name   string // シート名・ファイル名の元
	Header []string
	Rows   [][]any
}

func CatalogTable(pairs []redox.Pair) Table {
	t := Table{Name: "Catalog", Header: []string{"Redox Pair", "Reaction", "n", "E0 (V)", "ΔH (kJ/mol)"}}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []any{p.Name, p.Reaction, p.ElectronCount, p.StandardPotential, p.Enthalpy})
	}
	return t
}

func LadderTable(steps []thermo.LadderStep) Table {
	t := Table{Name: "Ladder", Header: []string{"Redox Pair", "E0 (V)", "ΔG0 (kJ/mol)", "Exergy Eff (%)"}}
	for _, s := range steps {
		t.Rows = append(t.Rows, []any{s.Name, s.E0, Round(s.DeltaG0, 2), Round(s.Efficiency, 2)})
	}
	return t
}

func ResultTable(recs []ResultRecord) Table {
	t := Table{Name: "Results", Header: []string{
		"Redox Pair", "Reaction", "Environment", "E (V)", "ΔG (kJ/mol)", "Exergy Eff (ΔG%)", "Exergy Eff (ΔH%)",
	}}
	for _, r := range recs {
		t.Rows = append(t.Rows, []any{r.Pair, r.Reaction, r.Environment, r.Potential, r.DeltaG, r.ExergyG, r.ExergyH})
	}
	return t
}

func OptimalTable(recs []OptimalRecord) Table {
	t := Table{Name: "Optimal", Header: []string{"Redox Pair", "T (K)", "pH", "ΔG (kJ/mol)", "Exergy Efficiency (%)"}}
	for _, r := range recs {
		t.Rows = append(t.Rows, []any{r.Pair, r.Temperature, r.PH, r.DeltaG, r.Efficiency})
	}
	return t
}

func SummaryTable(recs []SummaryRecord) Table {
	t := Table{Name: "Sensitivity", Header: []string{
		"Redox Pair", "ΔG Range (pH)", "ΔG Range (T)", "Exergy Range (pH)", "Exergy Range (T)", "Stability",
	}}
	for _, r := range recs {
		t.Rows = append(t.Rows, []any{r.Pair, r.DeltaGPH, r.DeltaGT, r.ExergyPH, r.ExergyT, string(r.Stability)})
	}
	return t
}

// SweepTable は掃引 1 本（variable は "pH" か "T (K)"）
func SweepTable(name, variable string, pts []sensitivity.Point) Table {
	t := Table{Name: name, Header: []string{variable, "ΔG (kJ/mol)", "Exergy Efficiency (%)"}}
	for _, pt := range pts {
		t.Rows = append(t.Rows, []any{pt.X, pt.DeltaG, pt.Efficiency})
	}
	return t
}

// SweepsTable は全反応の掃引を縦持ちでまとめる（XLSX 用）
func SweepsTable(results []sensitivity.Result) Table {
	t := Table{Name: "Sweeps", Header: []string{"Redox Pair", "Sweep", "X", "ΔG (kJ/mol)", "Exergy Efficiency (%)"}}
	for _, r := range results {
		for _, pt := range r.PH {
			t.Rows = append(t.Rows, []any{r.Pair.Name, "pH", pt.X, pt.DeltaG, pt.Efficiency})
		}
		for _, pt := range r.Temperature {
			t.Rows = append(t.Rows, []any{r.Pair.Name, "T", pt.X, pt.DeltaG, pt.Efficiency})
		}
	}
	return t
}

// StabilityTable は分類ごとの件数と割合（Type / Count / Ratio、最後に ALL）
func StabilityTable(sums []sensitivity.Summary) Table {
	counts := map[sensitivity.Stability]int{}
	for _, s := range sums {
		counts[s.Stability]++
	}
	total := len(sums)
	ratio := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total)
	}
	t := Table{Name: "Summary", Header: []string{"Type", "Count", "Ratio"}}
	for _, st := range []sensitivity.Stability{sensitivity.Stable, sensitivity.Moderate, sensitivity.Sensitive} {
		t.Rows = append(t.Rows, []any{string(st), counts[st], ratio(counts[st])})
	}
	t.Rows = append(t.Rows, []any{"ALL", total, ratio(total)})
	return t
}
