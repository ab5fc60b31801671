// load.go
package redox

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File はカタログファイル（YAML）の形
type File struct {
	Pairs        []Pair        `yaml:"pairs"`
	Environments []Environment `yaml:"environments"`
}

// LoadFile はカタログファイルを読み込んで検証する。
// environments が空なら組み込みの環境を使う。
func LoadFile(path string) ([]Pair, []Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := ValidateCatalog(f.Pairs); err != nil {
		return nil, nil, err
	}
	envs := f.Environments
	if len(envs) == 0 {
		envs = Environments()
	}
	if err := ValidateEnvironments(envs); err != nil {
		return nil, nil, err
	}
	return f.Pairs, envs, nil
}

// Save はカタログを YAML で書き出す（雛形づくり用）
func (f File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
