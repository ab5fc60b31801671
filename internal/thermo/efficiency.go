// efficiency.go
package thermo

import (
	"math"
	"strconv"
)

// Efficiency は「未定義」を持てる効率値（%）。
// ゼロ値は Undefined。
type Efficiency struct {
	value   float64
	defined bool
}

// Undefined は ΔH ≈ 0 などで計算できない効率
var Undefined = Efficiency{}

// Defined は値ありの効率を作る
func Defined(v float64) Efficiency {
	return Efficiency{value: v, defined: true}
}

// Value は値と定義済みかどうかを返す
func (e Efficiency) Value() (float64, bool) {
	return e.value, e.defined
}

// IsDefined reports whether e carries a value.
func (e Efficiency) IsDefined() bool { return e.defined }

// Or は未定義のとき def を返す
func (e Efficiency) Or(def float64) float64 {
	if !e.defined {
		return def
	}
	return e.value
}

// Float は未定義を NaN にして返す（グラフ描画などの外部向け）
func (e Efficiency) Float() float64 {
	return e.Or(math.NaN())
}

// Greater は e が other より厳密に大きいか。未定義はどちらの側でも false。
func (e Efficiency) Greater(other Efficiency) bool {
	if !e.defined {
		return false
	}
	if !other.defined {
		return true
	}
	return e.value > other.value
}

func (e Efficiency) String() string {
	if !e.defined {
		return "n/a"
	}
	return strconv.FormatFloat(e.value, 'f', -1, 64)
}
