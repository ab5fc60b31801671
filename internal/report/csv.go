// csv.go
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSV は表を CSV で保存する
func WriteCSV(filename string, t Table) error {
	return writeDelimited(filename, t, ',')
}

// WriteTSV は表を TSV で保存する（列順はヘッダのまま）
func WriteTSV(filename string, t Table) error {
	return writeDelimited(filename, t, '\t')
}

func writeDelimited(filename string, t Table, comma rune) error {
	if filename == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()

	w := csv.NewWriter(fp)
	w.Comma = comma

	if err := w.Write(t.Header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		row := make([]string, len(r))
		for i, v := range r {
			row[i] = FormatCell(v)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return fp.Close()
}
