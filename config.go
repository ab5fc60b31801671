// config.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ichijohodaka/redox-exergy/internal/optimize"
	"github.com/ichijohodaka/redox-exergy/internal/redox"
	"github.com/ichijohodaka/redox-exergy/internal/sensitivity"
	"github.com/ichijohodaka/redox-exergy/internal/thermo"
)

// Config は「ユーザー設定」をまとめたもの
type Config struct {
	// 空なら組み込みの 12 反応
	CatalogFile string `yaml:"catalog_file"`
	// 空ならカタログファイル、それも無ければ組み込みの 3 環境
	Environments []redox.Environment `yaml:"environments"`

	Constants thermo.Constants   `yaml:"constants"`
	Grid      optimize.Grid      `yaml:"optimize"`
	Sweep     sensitivity.Config `yaml:"sensitivity"`
	Output    OutputConfig       `yaml:"output"`

	DBFile  string `yaml:"db_file"` // "" なら履歴を保存しない
	Workers int    `yaml:"workers"`
}

// OutputConfig は出力先
type OutputConfig struct {
	Dir      string `yaml:"dir" env:"REDOX_OUTPUT_DIR"`
	XLSXFile string `yaml:"xlsx_file" env:"REDOX_XLSX"` // "" なら保存しない
	TSV      bool   `yaml:"tsv" env:"REDOX_TSV"`        // CSV と並べて TSV も書く
	MaxPrint int    `yaml:"max_print" env:"REDOX_MAX_PRINT"`
}

// envConfig は環境変数で上書きできるトップレベルの値
type envConfig struct {
	CatalogFile string `env:"REDOX_CATALOG"`
	DBFile      string `env:"REDOX_DB"`
	Workers     int    `env:"REDOX_WORKERS"`
}

// LocalOverride は config_local.go から差し替える（nil なら何もしない）
var LocalOverride func(cfg *Config)

// ============================================================
// ユーザー設定（ここから）
// ============================================================

func DefaultConfig() *Config {
	return &Config{
		Constants: thermo.Standard,
		// 300–373 K × pH 5–9、各 20 点
		Grid: optimize.DefaultGrid(),
		// pH 4–10 @ 300 K、280–400 K @ pH 7、各 50 点
		Sweep: sensitivity.DefaultConfig(),
		Output: OutputConfig{
			Dir:      "out",
			XLSXFile: "",
			TSV:      false,
			// コンソールに表示する最大件数（0 なら制限なし）
			MaxPrint: 40,
		},
		DBFile:  "",
		Workers: 4,
	}
}

// ============================================================
// ユーザー設定（ここまで）
// ============================================================

// Load は デフォルト → LocalOverride → YAML → 環境変数 の順に重ねる。
// path が空、またはファイルが無ければ YAML は飛ばす。
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if LocalOverride != nil {
		LocalOverride(cfg)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// デフォルトのまま
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	ev := envConfig{CatalogFile: cfg.CatalogFile, DBFile: cfg.DBFile, Workers: cfg.Workers}
	if err := env.Parse(&ev); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := env.Parse(&cfg.Output); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.CatalogFile, cfg.DBFile, cfg.Workers = ev.CatalogFile, ev.DBFile, ev.Workers
	return cfg, nil
}

// Save は設定を YAML で書き出す
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate は探索・掃引・環境の設定を確認する
func (c *Config) Validate() error {
	if !(c.Constants.R > 0) || !(c.Constants.F > 0) {
		return fmt.Errorf("constants must be positive (R=%g, F=%g)", c.Constants.R, c.Constants.F)
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	if err := c.Sweep.Validate(); err != nil {
		return fmt.Errorf("sensitivity: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", c.Workers)
	}
	return redox.ValidateEnvironments(c.Environments)
}

// Catalog は反応と環境のリストを決める
func (c *Config) Catalog() ([]redox.Pair, []redox.Environment, error) {
	pairs := redox.Catalog()
	envs := redox.Environments()
	if c.CatalogFile != "" {
		var err error
		pairs, envs, err = redox.LoadFile(c.CatalogFile)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(c.Environments) > 0 {
		envs = c.Environments
	}
	return pairs, envs, nil
}
