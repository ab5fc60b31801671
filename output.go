// output.go
package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ichijohodaka/redox-exergy/internal/optimize"
	"github.com/ichijohodaka/redox-exergy/internal/report"
	"github.com/ichijohodaka/redox-exergy/internal/sensitivity"
	"github.com/ichijohodaka/redox-exergy/internal/simulate"
	"github.com/ichijohodaka/redox-exergy/internal/store"
)

// outputs は 1 回の実行で作った表と結果を集める
type outputs struct {
	cfg    OutputConfig
	log    *zap.Logger
	w      io.Writer
	sheets []report.Table

	rows      []simulate.Row
	optima    []optimize.Optimum
	summaries []sensitivity.Summary
}

func (o *outputs) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.cfg.Dir, name)
}

// show は表をコンソールに出す
func (o *outputs) show(title string, t report.Table) {
	report.Print(o.w, title, t, o.cfg.MaxPrint)
}

// save は CSV（設定があれば TSV も）に書き、xlsx 用に控えておく
func (o *outputs) save(t report.Table, filename string) error {
	p := o.path(filename)
	if err := report.WriteCSV(p, t); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	if o.cfg.TSV {
		tsv := p[:len(p)-len(filepath.Ext(p))] + ".tsv"
		if err := report.WriteTSV(tsv, t); err != nil {
			return fmt.Errorf("write %s: %w", tsv, err)
		}
	}
	o.log.Debug("table written", zap.String("path", p), zap.Int("rows", len(t.Rows)))
	o.sheets = append(o.sheets, t)
	return nil
}

// emit = show + save
func (o *outputs) emit(title string, t report.Table, filename string) error {
	o.show(title, t)
	return o.save(t, filename)
}

// saveWorkbook は控えておいた表を 1 つの xlsx にまとめる
func (o *outputs) saveWorkbook() error {
	if o.cfg.XLSXFile == "" || len(o.sheets) == 0 {
		return nil
	}
	p := o.path(o.cfg.XLSXFile)
	if err := report.SaveXLSX(p, o.sheets...); err != nil {
		fmt.Fprintln(o.w, "xlsx save error:", err)
		return err
	}
	fmt.Fprintln(o.w, "xlsx saved:", p)
	return nil
}

// record は実行履歴を保存する（dbFile が空なら何もしない）
func (o *outputs) record(ctx context.Context, dbFile, command string, pairs int) error {
	if dbFile == "" {
		return nil
	}
	s, err := store.Open(dbFile)
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.BeginRun(ctx, command, pairs)
	if err != nil {
		return err
	}
	if len(o.rows) > 0 {
		if err := s.SaveResults(ctx, run.ID, o.rows); err != nil {
			return err
		}
	}
	if len(o.optima) > 0 {
		if err := s.SaveOptima(ctx, run.ID, o.optima); err != nil {
			return err
		}
	}
	if len(o.summaries) > 0 {
		if err := s.SaveSummaries(ctx, run.ID, o.summaries); err != nil {
			return err
		}
	}
	o.log.Info("run recorded", zap.String("run_id", run.ID), zap.String("path", s.Path()))
	return nil
}
