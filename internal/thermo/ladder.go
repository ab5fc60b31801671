// ladder.go
package thermo

import (
	"sort"

	"github.com/ichijohodaka/redox-exergy/internal/redox"
)

// LadderStep は酸化還元ラダーの 1 段
type LadderStep struct {
	Name       string
	E0         float64 // V
	DeltaG0    float64 // kJ/mol
	Efficiency float64 // 100·ΔG0/ΔH（ΔH == 0 なら 0）
}

// Ladder は E0 の降順に並べた標準状態での一覧を返す
func (e Engine) Ladder(pairs []redox.Pair) []LadderStep {
	steps := make([]LadderStep, 0, len(pairs))
	for _, p := range pairs {
		dG0 := e.GibbsFreeEnergy(p.StandardPotential, p.ElectronCount) / 1000
		var eff float64
		if p.Enthalpy != 0 {
			eff = 100 * dG0 / p.Enthalpy
		}
		steps = append(steps, LadderStep{
			Name:       p.Name,
			E0:         p.StandardPotential,
			DeltaG0:    dG0,
			Efficiency: eff,
		})
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].E0 > steps[j].E0 })
	return steps
}
