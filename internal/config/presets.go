package config

import "sort"

var Presets = map[string]*Config{
	"incoherent": {
		Size: 32, Coupling: 0.05, Arrangement: "all_to_all", Normalize: true,
		StepSize: 0.05, Duration: 30.0, Increment: 0.1, SampleEvery: 1, LockLevel: DefaultLockLevel,
	},
	"sync": {
		Size: 32, Coupling: 6.0, Arrangement: "all_to_all", Normalize: true,
		StepSize: 0.05, Duration: 30.0, Increment: 0.1, SampleEvery: 1, LockLevel: DefaultLockLevel,
	},
	"ring": {
		Size: 24, Coupling: 2.0, Arrangement: "box_bi",
		StepSize: 0.05, Duration: 60.0, Increment: 0.1, SampleEvery: 1, LockLevel: DefaultLockLevel,
	},
	"chain": {
		Size: 12, Coupling: 1.5, Arrangement: "linear_uni",
		StepSize: 0.05, Duration: 40.0, Increment: 1.0, SampleEvery: 1, LockLevel: DefaultLockLevel,
	},
	"firefly": {
		Size: 64, Coupling: 3.0, MeanField: true, NoiseLevel: 0.2,
		StepSize: 0.02, Duration: 40.0, Increment: 0.1, SampleEvery: 5, LockLevel: DefaultLockLevel,
	},
	"pair": {
		Size: 2, Coupling: 0.5, Arrangement: "all_to_all",
		StepSize: 0.05, Duration: 20.0, SampleEvery: 1, LockLevel: DefaultLockLevel,
		InitState: InitStateConfig{Phases: []float64{0, 3}, Frequencies: []float64{1.0, 1.4}},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.InitState.Phases = append([]float64(nil), p.InitState.Phases...)
	cfg.InitState.Frequencies = append([]float64(nil), p.InitState.Frequencies...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
