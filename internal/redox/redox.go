// redox.go
// 酸化還元半反応（RedoxPair）と環境条件の定義

package redox

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Proton は pH から濃度を決める化学種
const Proton = "H+"

// ErrInvalidPair はカタログ検証の失敗
var ErrInvalidPair = errors.New("invalid redox pair")

// ErrInvalidEnvironment は環境条件の検証の失敗
var ErrInvalidEnvironment = errors.New("invalid environment")

// Pair は半反応 1 つ分の定義。
// Concentrations は読み取り専用として扱い、条件ごとの濃度は Snapshot / AtPH で作る。
type Pair struct {
	Name              string             `yaml:"name"`
	Reaction          string             `yaml:"reaction"`
	StandardPotential float64            `yaml:"e0"`      // V
	ElectronCount     int                `yaml:"n"`       // 移動電子数
	Enthalpy          float64            `yaml:"delta_h"` // kJ/mol
	Reactants         map[string]float64 `yaml:"reactants"`
	Products          map[string]float64 `yaml:"products"`
	Concentrations    map[string]float64 `yaml:"conc"` // mol/L
}

// Environment は評価条件（温度は K）
type Environment struct {
	Name        string  `yaml:"name"`
	PH          float64 `yaml:"ph"`
	Temperature float64 `yaml:"t"`
}

// HydrogenIon は pH から [H+] を返す
func HydrogenIon(pH float64) float64 {
	return math.Pow(10, -pH)
}

// PHDependent: 濃度表に H+ を持つ反応だけが pH の影響を受ける
func (p Pair) PHDependent() bool {
	_, ok := p.Concentrations[Proton]
	return ok
}

// Snapshot は濃度表のコピーを返す。カタログ側の map は書き換えない。
func (p Pair) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(p.Concentrations))
	for k, v := range p.Concentrations {
		out[k] = v
	}
	return out
}

// AtPH は [H+] を pH に合わせた濃度スナップショットを返す
func (p Pair) AtPH(pH float64) map[string]float64 {
	conc := p.Snapshot()
	if p.PHDependent() {
		conc[Proton] = HydrogenIon(pH)
	}
	return conc
}

// Clone は map まで複製したコピー
func (p Pair) Clone() Pair {
	c := p
	c.Reactants = cloneMap(p.Reactants)
	c.Products = cloneMap(p.Products)
	c.Concentrations = cloneMap(p.Concentrations)
	return c
}

func cloneMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Validate は計算式側でガードしない前提条件をまとめて確認する。
// n > 0、濃度 > 0、係数 >= 0。
func (p Pair) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPair)
	}
	if p.ElectronCount <= 0 {
		return fmt.Errorf("%w: %s: electron count must be positive (got %d)", ErrInvalidPair, p.Name, p.ElectronCount)
	}
	if !finite(p.StandardPotential) || !finite(p.Enthalpy) {
		return fmt.Errorf("%w: %s: E0 and delta_h must be finite", ErrInvalidPair, p.Name)
	}
	for _, side := range []struct {
		label string
		m     map[string]float64
	}{{"reactant", p.Reactants}, {"product", p.Products}} {
		for _, sp := range sortedKeys(side.m) {
			if c := side.m[sp]; c < 0 || !finite(c) {
				return fmt.Errorf("%w: %s: %s %s has coefficient %g", ErrInvalidPair, p.Name, side.label, sp, c)
			}
		}
	}
	for _, sp := range sortedKeys(p.Concentrations) {
		if c := p.Concentrations[sp]; !(c > 0) || !finite(c) {
			return fmt.Errorf("%w: %s: concentration of %s must be positive (got %g)", ErrInvalidPair, p.Name, sp, c)
		}
	}
	return nil
}

// Validate は温度 > 0 を確認する
func (e Environment) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidEnvironment)
	}
	if !(e.Temperature > 0) || !finite(e.Temperature) {
		return fmt.Errorf("%w: %s: temperature must be positive (got %g K)", ErrInvalidEnvironment, e.Name, e.Temperature)
	}
	if !finite(e.PH) {
		return fmt.Errorf("%w: %s: pH must be finite", ErrInvalidEnvironment, e.Name)
	}
	return nil
}

// ValidateCatalog は各 Pair の検証に加えて名前の重複を調べる
func ValidateCatalog(pairs []Pair) error {
	if len(pairs) == 0 {
		return fmt.Errorf("%w: empty catalog", ErrInvalidPair)
	}
	seen := map[string]bool{}
	for _, p := range pairs {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidPair, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// ValidateEnvironments は環境リストを検証する
func ValidateEnvironments(envs []Environment) error {
	seen := map[string]bool{}
	for _, e := range envs {
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidEnvironment, e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}

// Lookup は名前で Pair を探す
func Lookup(pairs []Pair, name string) (Pair, bool) {
	for _, p := range pairs {
		if p.Name == name {
			return p, true
		}
	}
	return Pair{}, false
}

// SafeName はファイル名に使える形へ変換する（"SO4^2-/H2S" -> "SO42m_H2S"）
func SafeName(name string) string {
	r := strings.NewReplacer("/", "_", "^", "", "+", "p", "-", "m")
	return r.Replace(name)
}

// SortedKeys は map のキーを昇順で返す。積の順序を固定して結果をビット単位で再現させる。
func SortedKeys(m map[string]float64) []string {
	return sortedKeys(m)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
