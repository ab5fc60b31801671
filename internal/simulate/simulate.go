// simulate.go
// 環境 × 反応 の全組み合わせを評価する

package simulate

import (
	"sort"

	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// Row は 1 組み合わせ分の評価
type Row struct {
	Pair        redox.Pair
	Environment redox.Environment
	thermo.Result
}

// Run は環境（外側）→ 反応（内側）の順で評価する
func Run(eng thermo.Engine, pairs []redox.Pair, envs []redox.Environment) []Row {
	rows := make([]Row, 0, len(pairs)*len(envs))
	for _, env := range envs {
		for _, p := range pairs {
			rows = append(rows, Row{
				Pair:        p,
				Environment: env,
				Result:      eng.At(p, env.PH, env.Temperature),
			})
		}
	}
	return rows
}

// SortByEnvironment は (環境名, 反応名) の順に並べ替えたコピーを返す
func SortByEnvironment(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Environment.Name != out[j].Environment.Name {
			return out[i].Environment.Name < out[j].Environment.Name
		}
		return out[i].Pair.Name < out[j].Pair.Name
	})
	return out
}
