// config_local.go
// config.go は直接さわらずにここで差し替え

package main

func init() {
	LocalOverride = func(cfg *Config) {

		// コメントアウトでデフォルト値が使われる。

		// 出力先ディレクトリ
		// cfg.Output.Dir = "out"
		// xlsx 出力のファイル名（"" なら保存しない）
		// cfg.Output.XLSXFile = "redox.xlsx"
		// 結果表示を制限。ファイルには全部保存される。
		// cfg.Output.MaxPrint = 12
		// 実行履歴（"" なら保存しない）
		// cfg.DBFile = "out/runs.db"

		// --- 探索範囲 ---
		// cfg.Grid = optimize.Grid{TempMin: 300, TempMax: 373, PHMin: 5, PHMax: 9, Steps: 20}

		// --- 掃引の点数 ---
		// cfg.Sweep.Points = 50

		// 反応ごとの並列数
		if cfg.Workers < 1 {
			cfg.Workers = 1
		}
	}
}
