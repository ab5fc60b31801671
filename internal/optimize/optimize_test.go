package optimize

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLinspace(t *testing.T) {
	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{3}, Linspace(3, 9, 1))
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))

	xs := Linspace(300, 373, 20)
	require.Len(t, xs, 20)
	assert.Equal(t, 300.0, xs[0])
	assert.Equal(t, 373.0, xs[19])
}

func TestGridValidate(t *testing.T) {
	require.NoError(t, DefaultGrid().Validate())

	g := DefaultGrid()
	g.Steps = 0
	assert.ErrorIs(t, g.Validate(), ErrEmptyGrid)

	g = DefaultGrid()
	g.PHMin, g.PHMax = 9, 5
	assert.ErrorIs(t, g.Validate(), ErrEmptyGrid)
}

func TestMaximizeMonotonicInPH(t *testing.T) {
	g := DefaultGrid()
	calls := 0
	f := func(temp, pH float64) Point {
		calls++
		return Point{Temperature: temp, PH: pH, Efficiency: thermo.Defined(pH * 10)}
	}

	best, ok := Maximize(g, f)
	require.True(t, ok)
	assert.Equal(t, 400, calls)
	assert.Equal(t, g.PHMax, best.PH)
	// T 方向は平坦なので最初の温度が残る
	assert.Equal(t, g.TempMin, best.Temperature)

	again, _ := Maximize(g, f)
	assert.Equal(t, best, again)
}

func TestMaximizeTieKeepsFirst(t *testing.T) {
	g := Grid{TempMin: 300, TempMax: 310, PHMin: 5, PHMax: 6, Steps: 3}
	best, ok := Maximize(g, func(temp, pH float64) Point {
		return Point{Temperature: temp, PH: pH, Efficiency: thermo.Defined(42)}
	})
	require.True(t, ok)
	assert.Equal(t, 300.0, best.Temperature)
	assert.Equal(t, 5.0, best.PH)
}

func TestMaximizeScanOrder(t *testing.T) {
	g := Grid{TempMin: 1, TempMax: 2, PHMin: 10, PHMax: 20, Steps: 2}
	var seen [][2]float64
	Maximize(g, func(temp, pH float64) Point {
		seen = append(seen, [2]float64{temp, pH})
		return Point{Efficiency: thermo.Undefined}
	})
	want := [][2]float64{{1, 10}, {1, 20}, {2, 10}, {2, 20}}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("scan order mismatch (-want +got):\n%s", diff)
	}
}

func TestMaximizeAllUndefined(t *testing.T) {
	_, ok := Maximize(DefaultGrid(), func(temp, pH float64) Point {
		return Point{Temperature: temp, PH: pH, Efficiency: thermo.Undefined}
	})
	assert.False(t, ok)
}

func TestSearchHydrogenTiesAtZero(t *testing.T) {
	p, _ := redox.Lookup(redox.Catalog(), "H2/H+")
	opt, ok := Search(thermo.Default(), p, DefaultGrid())
	require.True(t, ok)
	// ΔG > 0 が全点で続くので効率は 0% の同値、最初の点が残る
	assert.Equal(t, 0.0, opt.Efficiency)
	assert.Equal(t, 300.0, opt.Temperature)
	assert.Equal(t, 5.0, opt.PH)
	assert.Greater(t, opt.DeltaG, 0.0)
}

func TestSearchManganesePrefersColdAcidic(t *testing.T) {
	eng := thermo.Default()
	p, _ := redox.Lookup(redox.Catalog(), "MnO2/Mn2+")
	opt, ok := Search(eng, p, DefaultGrid())
	require.True(t, ok)
	assert.Equal(t, 300.0, opt.Temperature)
	assert.Equal(t, 5.0, opt.PH)
	assert.InDelta(t, 22.46, opt.Efficiency, 0.05)

	res := eng.At(p, opt.PH, opt.Temperature)
	assert.Equal(t, res.DeltaG, opt.DeltaG)
}

func TestSearchUndefinedEnthalpy(t *testing.T) {
	p := redox.Pair{
		Name:           "flat",
		ElectronCount:  1,
		Enthalpy:       0,
		Reactants:      map[string]float64{"A": 1},
		Products:       map[string]float64{"B": 1},
		Concentrations: map[string]float64{"A": 1, "B": 1},
	}
	_, ok := Search(thermo.Default(), p, DefaultGrid())
	assert.False(t, ok)
}

func TestSearchLeavesCatalogUntouched(t *testing.T) {
	pairs := redox.Catalog()
	before := pairs[1].Snapshot()
	Search(thermo.Default(), pairs[1], DefaultGrid())
	assert.Equal(t, before, pairs[1].Concentrations)
}

func TestRunAllMatchesSequentialSearch(t *testing.T) {
	eng := thermo.Default()
	pairs := redox.Catalog()

	got, err := RunAll(context.Background(), eng, pairs, DefaultGrid(), 4, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, got, len(pairs))

	for i, p := range pairs {
		want, ok := Search(eng, p, DefaultGrid())
		require.True(t, ok)
		assert.Equal(t, want, got[i])
	}
}

func TestRunAllSkipsUndefined(t *testing.T) {
	pairs := append(redox.Catalog()[:2], redox.Pair{
		Name:          "no-enthalpy",
		ElectronCount: 1,
		Reactants:     map[string]float64{"A": 1},
	})
	got, err := RunAll(context.Background(), thermo.Default(), pairs, DefaultGrid(), 2, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "H2/H+", got[0].Pair)
	assert.Equal(t, "CO2/CH4", got[1].Pair)
}

func TestRunAllRejectsEmptyGrid(t *testing.T) {
	_, err := RunAll(context.Background(), thermo.Default(), redox.Catalog(), Grid{}, 1, nil)
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestRunAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunAll(ctx, thermo.Default(), redox.Catalog(), DefaultGrid(), 2, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
