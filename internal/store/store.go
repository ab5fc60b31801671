// store.go
// 実行履歴（最適条件・感度要約・評価表）を SQLite に保存する

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/ichijohodaka/redox-exergy/internal/optimize"
	"github.com/ichijohodaka/redox-exergy/internal/sensitivity"
	"github.com/ichijohodaka/redox-exergy/internal/simulate"
)

// started_at は文字列比較で時系列順に並ぶよう固定幅で保存する
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound は指定した実行が無いとき
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	command TEXT NOT NULL,
	started_at TEXT NOT NULL,
	pairs INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	pair TEXT NOT NULL,
	environment TEXT NOT NULL,
	potential REAL NOT NULL,
	delta_g REAL NOT NULL,
	exergy_g REAL NOT NULL,
	exergy_h REAL,
	PRIMARY KEY (run_id, seq)
);
CREATE TABLE IF NOT EXISTS optima (
	run_id TEXT NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	pair TEXT NOT NULL,
	temperature REAL NOT NULL,
	ph REAL NOT NULL,
	delta_g REAL NOT NULL,
	efficiency REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);
CREATE TABLE IF NOT EXISTS summaries (
	run_id TEXT NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	pair TEXT NOT NULL,
	delta_g_ph REAL NOT NULL,
	delta_g_t REAL NOT NULL,
	exergy_ph REAL NOT NULL,
	exergy_t REAL NOT NULL,
	stability TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);`

// Store は SQLite ファイル 1 つ
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Run は実行 1 回分のメタデータ
type Run struct {
	ID        string
	Command   string
	StartedAt time.Time
	Pairs     int
}

// Open はファイルを開き、テーブルがなければ作る
func Open(path string) (*Store, error) {
	if path == "" {
		path = "redox-exergy.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db, path: path, now: time.Now}, nil
}

// Close はデータベースを閉じる
func (s *Store) Close() error {
	return s.db.Close()
}

// Path はファイルパス
func (s *Store) Path() string { return s.path }

// BeginRun は実行を記録して ID を払い出す
func (s *Store) BeginRun(ctx context.Context, command string, pairs int) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Command:   command,
		StartedAt: s.now().UTC(),
		Pairs:     pairs,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, command, started_at, pairs) VALUES (?, ?, ?, ?)`,
		run.ID, run.Command, run.StartedAt.Format(timeLayout), run.Pairs)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Runs は新しい順に最大 limit 件（limit <= 0 なら全件）
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, command, started_at, pairs FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.Command, &started, &r.Pairs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun は ID で実行を探す
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	var r Run
	var started string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, command, started_at, pairs FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Command, &started, &r.Pairs)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("select run: %w", err)
	}
	if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	return r, nil
}

// withTx は関数をトランザクション内で実行する
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveResults は評価表を保存する（ΔG は J/mol のまま）
func (s *Store) SaveResults(ctx context.Context, runID string, rows []simulate.Row) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for i, r := range rows {
			var exH any
			if v, ok := r.ExergyH.Value(); ok {
				exH = v
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO results (run_id, seq, pair, environment, potential, delta_g, exergy_g, exergy_h)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, i, r.Pair.Name, r.Environment.Name, r.Potential, r.DeltaG, r.ExergyG, exH); err != nil {
				return fmt.Errorf("insert result %s/%s: %w", r.Pair.Name, r.Environment.Name, err)
			}
		}
		return nil
	})
}

// SaveOptima は最適条件を保存する
func (s *Store) SaveOptima(ctx context.Context, runID string, opts []optimize.Optimum) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for i, o := range opts {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO optima (run_id, seq, pair, temperature, ph, delta_g, efficiency)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				runID, i, o.Pair, o.Temperature, o.PH, o.DeltaG, o.Efficiency); err != nil {
				return fmt.Errorf("insert optimum %s: %w", o.Pair, err)
			}
		}
		return nil
	})
}

// SaveSummaries は感度解析の要約を保存する
func (s *Store) SaveSummaries(ctx context.Context, runID string, sums []sensitivity.Summary) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for i, sm := range sums {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO summaries (run_id, seq, pair, delta_g_ph, delta_g_t, exergy_ph, exergy_t, stability)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, i, sm.Pair, sm.DeltaGPH, sm.DeltaGT, sm.ExergyPH, sm.ExergyT, string(sm.Stability)); err != nil {
				return fmt.Errorf("insert summary %s: %w", sm.Pair, err)
			}
		}
		return nil
	})
}

// Optima は実行の最適条件を保存順で返す
func (s *Store) Optima(ctx context.Context, runID string) ([]optimize.Optimum, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pair, temperature, ph, delta_g, efficiency FROM optima WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("select optima: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []optimize.Optimum
	for rows.Next() {
		var o optimize.Optimum
		if err := rows.Scan(&o.Pair, &o.Temperature, &o.PH, &o.DeltaG, &o.Efficiency); err != nil {
			return nil, fmt.Errorf("scan optimum: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Summaries は実行の感度要約を保存順で返す
func (s *Store) Summaries(ctx context.Context, runID string) ([]sensitivity.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pair, delta_g_ph, delta_g_t, exergy_ph, exergy_t, stability FROM summaries WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("select summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []sensitivity.Summary
	for rows.Next() {
		var sm sensitivity.Summary
		var st string
		if err := rows.Scan(&sm.Pair, &sm.DeltaGPH, &sm.DeltaGT, &sm.ExergyPH, &sm.ExergyT, &st); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sm.Stability = sensitivity.Stability(st)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// ResultCount は実行の評価表の行数
func (s *Store) ResultCount(ctx context.Context, runID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}
