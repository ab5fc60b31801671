// xlsx.go
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// SaveXLSX は表ごとに 1 シートのブックを保存する。最初の表が Sheet1 を置き換える。
func SaveXLSX(filename string, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("xlsx %s: no tables", filename)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := t.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeSheet(f, sheet, t); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	return f.SaveAs(filename)
}

func writeSheet(f *excelize.File, sheet string, t Table) error {
	// ヘッダ
	for col, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	// データ（数値は数値セルのまま。未定義の効率は空欄）
	for i, r := range t.Rows {
		row := i + 2
		for col, v := range r {
			if e, ok := v.(thermo.Efficiency); ok {
				val, defined := e.Value()
				if !defined {
					continue
				}
				v = val
			}
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
