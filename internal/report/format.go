// format.go
// コンソール表示（罫線付きの表）

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// FormatCell はセルを文字列にする。未定義の効率と nil は空欄。
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case thermo.Efficiency:
		if val, ok := x.Value(); ok {
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// Print は表を罫線付きで書き出す。maxRows > 0 なら先頭 maxRows 行だけ（ファイルには全部保存される）。
func Print(w io.Writer, title string, t Table, maxRows int) {
	fmt.Fprintln(w, title)
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}

	rows := t.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	// 各セルの文字列を先に作る
	cells := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, len(r))
		for j, v := range r {
			row[j] = FormatCell(v)
		}
		cells[i] = row
	}

	// 列幅を決定（ヘッダ or 中身の最大）。Δ などがあるので文字数で数える。
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range cells {
		for j, cell := range row {
			if j < len(widths) && utf8.RuneCountInString(cell) > widths[j] {
				widths[j] = utf8.RuneCountInString(cell)
			}
		}
	}

	printLine := func() {
		fmt.Fprint(w, "+")
		for _, wd := range widths {
			fmt.Fprint(w, strings.Repeat("-", wd+2)+"+")
		}
		fmt.Fprintln(w)
	}

	// ヘッダ行（左寄せ）
	printLine()
	fmt.Fprint(w, "|")
	for i, h := range t.Header {
		fmt.Fprintf(w, " %s |", padRight(h, widths[i]))
	}
	fmt.Fprintln(w)
	printLine()

	// データ行（文字列は左寄せ、数値は右寄せ）
	for i, row := range cells {
		fmt.Fprint(w, "|")
		for j, cell := range row {
			if j >= len(widths) {
				break
			}
			if _, isText := rows[i][j].(string); isText {
				fmt.Fprintf(w, " %s |", padRight(cell, widths[j]))
			} else {
				fmt.Fprintf(w, " %s |", padLeft(cell, widths[j]))
			}
		}
		fmt.Fprintln(w)
	}
	printLine()
	if len(rows) < len(t.Rows) {
		fmt.Fprintf(w, "... %d more rows\n", len(t.Rows)-len(rows))
	}
	fmt.Fprintln(w)
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
