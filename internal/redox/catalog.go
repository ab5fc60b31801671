// catalog.go
// 組み込みカタログ（12 反応）と環境（3 種）

package redox

// Catalog は組み込みの半反応リストを返す。呼び出しごとに新しいコピーを作る。
func Catalog() []Pair {
	out := make([]Pair, len(builtinPairs))
	for i, p := range builtinPairs {
		out[i] = p.Clone()
	}
	return out
}

// Environments は組み込みの環境リストを返す
func Environments() []Environment {
	out := make([]Environment, len(builtinEnvironments))
	copy(out, builtinEnvironments)
	return out
}

var builtinEnvironments = []Environment{
	{Name: "alkaline_vent", PH: 9, Temperature: 343.15},
	{Name: "acidic_ocean", PH: 5.5, Temperature: 313.15},
	{Name: "shallow_pond", PH: 7, Temperature: 323.15},
}

// ΔH は概算値を含む
var builtinPairs = []Pair{
	{
		Name:              "H2/H+",
		Reaction:          "2H+ + 2e- → H2",
		StandardPotential: -0.414,
		ElectronCount:     2,
		Enthalpy:          -286,
		Reactants:         map[string]float64{"H+": 2},
		Products:          map[string]float64{"H2": 1},
		Concentrations:    map[string]float64{"H+": 1e-7, "H2": 1e-6},
	},
	{
		Name:              "CO2/CH4",
		Reaction:          "CO2 + 8H+ + 8e- → CH4 + 2H2O",
		StandardPotential: -0.244,
		ElectronCount:     8,
		Enthalpy:          -891, // CH4 燃焼熱
		Reactants:         map[string]float64{"CO2": 1, "H+": 8},
		Products:          map[string]float64{"CH4": 1},
		Concentrations:    map[string]float64{"CO2": 1e-3, "CH4": 1e-6, "H+": 1e-7},
	},
	{
		Name:              "Fe3+/Fe2+",
		Reaction:          "Fe3+ + e- → Fe2+",
		StandardPotential: 0.77,
		ElectronCount:     1,
		Enthalpy:          -20,
		Reactants:         map[string]float64{"Fe3+": 1},
		Products:          map[string]float64{"Fe2+": 1},
		Concentrations:    map[string]float64{"Fe3+": 1e-4, "Fe2+": 1e-3},
	},
	{
		Name:              "NO3-/NO2-",
		Reaction:          "NO3- + 2H+ + 2e- → NO2- + H2O",
		StandardPotential: 0.421,
		ElectronCount:     2,
		Enthalpy:          -117,
		Reactants:         map[string]float64{"NO3-": 1, "H+": 2},
		Products:          map[string]float64{"NO2-": 1},
		Concentrations:    map[string]float64{"NO3-": 1e-4, "NO2-": 1e-6, "H+": 1e-7},
	},
	{
		Name:              "S0/H2S",
		Reaction:          "S0 + 2H+ + 2e- → H2S",
		StandardPotential: 0.14,
		ElectronCount:     2,
		Enthalpy:          -33,
		Reactants:         map[string]float64{"S0": 1, "H+": 2},
		Products:          map[string]float64{"H2S": 1},
		Concentrations:    map[string]float64{"S0": 1e-5, "H2S": 1e-6, "H+": 1e-7},
	},
	{
		Name:              "CO2/CO",
		Reaction:          "CO2 + 2H+ + 2e- → CO + H2O",
		StandardPotential: -0.106,
		ElectronCount:     2,
		Enthalpy:          -199,
		Reactants:         map[string]float64{"CO2": 1, "H+": 2},
		Products:          map[string]float64{"CO": 1},
		Concentrations:    map[string]float64{"CO2": 1e-3, "CO": 1e-6, "H+": 1e-7},
	},
	{
		Name:              "SO4^2-/H2S",
		Reaction:          "SO4^2- + 8H+ + 8e- → H2S + 4H2O",
		StandardPotential: -0.217,
		ElectronCount:     8,
		Enthalpy:          -797,
		Reactants:         map[string]float64{"SO4^2-": 1, "H+": 8},
		Products:          map[string]float64{"H2S": 1, "H2O": 4},
		Concentrations:    map[string]float64{"SO4^2-": 1e-3, "H2S": 1e-6, "H+": 1e-7},
	},
	{
		Name:              "NO2^-/N2",
		Reaction:          "2NO2- + 6H+ + 6e- → N2 + 2H2O",
		StandardPotential: 0.34,
		ElectronCount:     6,
		Enthalpy:          -1020, // 脱窒全体からの見積もり
		Reactants:         map[string]float64{"NO2-": 2, "H+": 6},
		Products:          map[string]float64{"N2": 1, "H2O": 2},
		Concentrations:    map[string]float64{"NO2-": 1e-4, "N2": 1e-6, "H+": 1e-7},
	},
	{
		Name:              "MnO2/Mn2+",
		Reaction:          "MnO2 + 4H+ + 2e- → Mn2+ + 2H2O",
		StandardPotential: 1.23,
		ElectronCount:     2,
		Enthalpy:          -520,
		Reactants:         map[string]float64{"MnO2": 1, "H+": 4},
		Products:          map[string]float64{"Mn2+": 1, "H2O": 2},
		Concentrations:    map[string]float64{"MnO2": 1e-4, "Mn2+": 1e-3, "H+": 1e-7},
	},
	{
		Name:              "Acetate/CO2",
		Reaction:          "CH3COO- + 2H2O → 2CO2 + 7H+ + 8e-",
		StandardPotential: -0.290,
		ElectronCount:     8,
		Enthalpy:          -870,
		Reactants:         map[string]float64{"Acetate": 1},
		Products:          map[string]float64{"CO2": 2},
		Concentrations:    map[string]float64{"Acetate": 1e-4, "CO2": 1e-3},
	},
	{
		Name:              "Formate/CO2",
		Reaction:          "HCOO- → CO2 + H+ + 2e-",
		StandardPotential: -0.43,
		ElectronCount:     2,
		Enthalpy:          -254,
		Reactants:         map[string]float64{"Formate": 1},
		Products:          map[string]float64{"CO2": 1},
		Concentrations:    map[string]float64{"Formate": 1e-4, "CO2": 1e-3},
	},
	{
		Name:              "H2O2/H2O",
		Reaction:          "H2O2 + 2H+ + 2e- → 2H2O",
		StandardPotential: 1.77,
		ElectronCount:     2,
		Enthalpy:          -191, // H2O2 分解熱
		Reactants:         map[string]float64{"H2O2": 1},
		Products:          map[string]float64{"H2O": 1, "O2": 0.5},
		Concentrations:    map[string]float64{"H2O2": 1e-5, "H2O": 1, "O2": 1e-6},
	},
}
