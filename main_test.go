package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ichijohodaka/redox-exergy/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd(&buf)
	cmd.SetArgs(args)
	cmd.SetErr(&buf)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	fp, err := os.Open(path)
	require.NoError(t, err)
	defer fp.Close()
	records, err := csv.NewReader(fp).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCatalogCommand(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "catalog.yaml")

	out, err := execute(t, "catalog", "--out", dir, "--dump", dump)
	require.NoError(t, err)
	assert.Contains(t, out, "=== Redox pairs ===")
	assert.Contains(t, out, "=== Redox ladder ===")
	assert.Contains(t, out, "MnO2/Mn2+")

	recs := readCSV(t, filepath.Join(dir, "catalog.csv"))
	require.Len(t, recs, 13)
	assert.Equal(t, []string{"Redox Pair", "Reaction", "n", "E0 (V)", "ΔH (kJ/mol)"}, recs[0])
	assert.Equal(t, []string{"H2/H+", "2H+ + 2e- → H2", "2", "-0.414", "-286"}, recs[1])

	ladder := readCSV(t, filepath.Join(dir, "ladder.csv"))
	assert.Equal(t, "H2O2/H2O", ladder[1][0])

	_, err = os.Stat(dump)
	assert.NoError(t, err)
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "simulate", "--out", dir, "--tsv")
	require.NoError(t, err)

	recs := readCSV(t, filepath.Join(dir, "results.csv"))
	require.Len(t, recs, 1+12*3)
	assert.Equal(t, []string{
		"Redox Pair", "Reaction", "Environment", "E (V)", "ΔG (kJ/mol)", "Exergy Eff (ΔG%)", "Exergy Eff (ΔH%)",
	}, recs[0])
	assert.Equal(t, "H2/H+", recs[1][0])
	assert.Equal(t, "alkaline_vent", recs[1][2])

	_, err = os.Stat(filepath.Join(dir, "results.tsv"))
	assert.NoError(t, err)
}

func TestAllCommandWritesWorkbookAndHistory(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")

	out, err := execute(t, "all", "--out", dir, "--xlsx", "redox.xlsx", "--db", db, "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Optimal conditions ===")
	assert.Contains(t, out, "=== Stability ===")
	assert.Contains(t, out, "xlsx saved:")

	opt := readCSV(t, filepath.Join(dir, "optimal_conditions.csv"))
	require.Len(t, opt, 13)
	assert.Equal(t, []string{"Redox Pair", "T (K)", "pH", "ΔG (kJ/mol)", "Exergy Efficiency (%)"}, opt[0])

	sum := readCSV(t, filepath.Join(dir, "sensitivity_summary.csv"))
	require.Len(t, sum, 13)
	for _, row := range sum[1:] {
		assert.Contains(t, []string{"Stable", "Moderate", "Sensitive"}, row[5])
	}

	sweep := readCSV(t, filepath.Join(dir, "sensitivity", "SO42m_H2S_pH_sweep.csv"))
	assert.Len(t, sweep, 51)
	sweepT := readCSV(t, filepath.Join(dir, "sensitivity", "H2_Hp_T_sweep.csv"))
	assert.Equal(t, "T (K)", sweepT[0][0])

	f, err := excelize.OpenFile(filepath.Join(dir, "redox.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Catalog", "Ladder", "Results", "Optimal", "Sensitivity", "Sweeps"}, f.GetSheetList())

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Runs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "all", runs[0].Command)
	assert.Equal(t, 12, runs[0].Pairs)

	listing, err := execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, listing, runs[0].ID)

	detail, err := execute(t, "runs", runs[0].ID, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, detail, "command=all")
	assert.Contains(t, detail, "MnO2/Mn2+")
}

func TestRunsWithoutStore(t *testing.T) {
	t.Setenv("REDOX_DB", "")
	_, err := execute(t, "runs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no run store configured")
}

func TestInvalidWorkersRejected(t *testing.T) {
	_, err := execute(t, "optimize", "--out", t.TempDir(), "--workers", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func TestAppUsesCustomCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(`
pairs:
  - name: Fe3+/Fe2+
    reaction: Fe3+ + e- → Fe2+
    e0: 0.77
    n: 1
    delta_h: -20
    reactants: {Fe3+: 1}
    products: {Fe2+: 1}
    conc: {Fe3+: 1.0e-4, Fe2+: 1.0e-3}
environments:
  - {name: lab, ph: 7, t: 298.15}
`), 0644))

	cfg := DefaultConfig()
	cfg.CatalogFile = catalog
	cfg.Output.Dir = dir

	var buf bytes.Buffer
	a, err := newApp(cfg, zap.NewNop(), &buf)
	require.NoError(t, err)
	require.Len(t, a.pairs, 1)
	require.Len(t, a.envs, 1)

	require.NoError(t, a.simulate())
	require.NoError(t, a.sensitivity(context.Background()))
	require.NoError(t, a.finish(context.Background(), "test"))

	recs := readCSV(t, filepath.Join(dir, "results.csv"))
	require.Len(t, recs, 2)
	assert.Equal(t, "lab", recs[1][2])

	sum := readCSV(t, filepath.Join(dir, "sensitivity_summary.csv"))
	assert.Equal(t, "Stable", sum[1][5])
	assert.True(t, strings.Contains(buf.String(), "Stable"))
}
