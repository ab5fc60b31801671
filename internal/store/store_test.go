package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ichijohodaka/redox-exergy/internal/optimize"
	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/sensitivity"
	"github.com/ichijohodaka/redox-exergy/internal/simulate"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBeginRunAndList(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 100_000_000, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * 20 * time.Millisecond)
	}

	first, err := s.BeginRun(ctx, "optimize", 12)
	require.NoError(t, err)
	second, err := s.BeginRun(ctx, "all", 3)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	runs, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, "optimize", runs[1].Command)
	assert.Equal(t, 12, runs[1].Pairs)
	assert.True(t, first.StartedAt.Equal(runs[1].StartedAt))

	limited, err := s.Runs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := s.GetRun(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = s.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSaveAndLoadOptima(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	eng := thermo.Default()

	opts, err := optimize.RunAll(ctx, eng, redox.Catalog(), optimize.DefaultGrid(), 2, nil)
	require.NoError(t, err)

	run, err := s.BeginRun(ctx, "optimize", len(opts))
	require.NoError(t, err)
	require.NoError(t, s.SaveOptima(ctx, run.ID, opts))

	loaded, err := s.Optima(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, opts, loaded)
}

func TestSaveAndLoadSummaries(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	res, err := sensitivity.RunAll(ctx, thermo.Default(), redox.Catalog()[:4], sensitivity.DefaultConfig(), 1, nil)
	require.NoError(t, err)
	sums := sensitivity.Summaries(res)

	run, err := s.BeginRun(ctx, "sensitivity", len(sums))
	require.NoError(t, err)
	require.NoError(t, s.SaveSummaries(ctx, run.ID, sums))

	loaded, err := s.Summaries(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, sums, loaded)
}

func TestSaveResultsKeepsUndefinedAsNull(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	pairs := append(redox.Catalog()[:1], redox.Pair{
		Name:          "no-enthalpy",
		ElectronCount: 1,
		Reactants:     map[string]float64{"A": 1},
	})
	rows := simulate.Run(thermo.Default(), pairs, redox.Environments())

	run, err := s.BeginRun(ctx, "simulate", len(pairs))
	require.NoError(t, err)
	require.NoError(t, s.SaveResults(ctx, run.ID, rows))

	n, err := s.ResultCount(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, len(rows), n)

	var nulls int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM results WHERE run_id = ? AND exergy_h IS NULL`, run.ID).Scan(&nulls))
	assert.Equal(t, 3, nulls)
}

func TestReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(path)
	require.NoError(t, err)
	run, err := s.BeginRun(ctx, "catalog", 12)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())

	runs, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}
