package config

var Presets = map[string]map[string]*Config{
	"rational": {
		"spike": {
			Material: "rational", Profile: "triangle", Solver: "dense",
			A: -1, B: 1, Dt: 1e-4, Nx: 63, Nt: 400,
			MaterialParams: MaterialConfig{K0: 0.5},
			ProfileParams:  ProfileConfig{Center: 0, Width: 0.1, Amp: 1},
		},
		"gaussian": {
			Material: "rational", Profile: "gaussian", Solver: "dense",
			A: -1, B: 1, Dt: 1e-4, Nx: 63, Nt: 400,
			MaterialParams: MaterialConfig{K0: 0.5},
			ProfileParams:  ProfileConfig{Center: 0, Width: 0.25, Amp: 1},
		},
		"hotspot": {
			Material: "rational", Profile: "gaussian", Solver: "tridiag",
			A: -1, B: 1, Dt: 5e-5, Nx: 127, Nt: 800,
			MaterialParams: MaterialConfig{K0: 0.5},
			ProfileParams:  ProfileConfig{Center: 0.3, Width: 0.15, Amp: 2},
		},
	},
	"constant": {
		"baseline": {
			Material: "constant", Profile: "gaussian", Solver: "dense",
			A: -1, B: 1, Dt: 1e-4, Nx: 63, Nt: 400,
			MaterialParams: MaterialConfig{K0: 1},
			ProfileParams:  ProfileConfig{Center: 0, Width: 0.25, Amp: 1},
		},
		"mode1": {
			Material: "constant", Profile: "sine", Solver: "dense",
			A: -1, B: 1, Dt: 1e-4, Nx: 63, Nt: 600,
			MaterialParams: MaterialConfig{K0: 1},
			ProfileParams:  ProfileConfig{Mode: 1, Amp: 1},
		},
	},
	"quadratic": {
		"plateau": {
			Material: "quadratic", Profile: "plateau", Solver: "dense",
			A: -1, B: 1, Dt: 5e-5, Nx: 95, Nt: 600,
			MaterialParams: MaterialConfig{K0: 0.5},
			ProfileParams:  ProfileConfig{Center: 0, Width: 0.4, Amp: 1},
		},
	},
	"exponential": {
		"stiff": {
			Material: "exponential", Profile: "gaussian", Solver: "tridiag",
			A: -1, B: 1, Dt: 2e-5, Nx: 127, Nt: 1000,
			MaterialParams: MaterialConfig{K0: 0.3, Alpha: 1.5},
			ProfileParams:  ProfileConfig{Center: 0, Width: 0.2, Amp: 1.5},
		},
	},
}

func GetPreset(mat, preset string) *Config {
	matPresets, ok := Presets[mat]
	if !ok {
		return nil
	}
	cfg, ok := matPresets[preset]
	if !ok {
		return nil
	}
	// Callers mutate their config freely; hand out a copy.
	c := *cfg
	return &c
}

func ListPresets(mat string) []string {
	matPresets, ok := Presets[mat]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(matPresets))
	for name := range matPresets {
		names = append(names, name)
	}
	return names
}
