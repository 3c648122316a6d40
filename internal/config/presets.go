package config

import "github.com/san-kum/heatlab/internal/plate"

var Presets = map[string]*Config{
	// The original heated-plate problem: 1000x1000, one cold edge.
	"reference": {
		Rows: 1000, Cols: 1000, Epsilon: 0.001,
		Boundary: plate.Boundary{North: 0, South: 100, East: 100, West: 100},
	},
	"bench": {
		Rows: 500, Cols: 500, Epsilon: 0.01,
		Boundary: plate.Boundary{North: 0, South: 100, East: 100, West: 100},
	},
	"quick": {
		Rows: 100, Cols: 100, Epsilon: 0.1,
		Boundary: plate.Boundary{North: 0, South: 100, East: 100, West: 100},
	},
	"tiny": {
		Rows: 5, Cols: 5, Epsilon: 0.5,
		Boundary: plate.Boundary{North: 0, South: 100, East: 100, West: 100},
	},
	// All four edges hot: the interior is already at the boundary
	// mean, so the solve converges almost immediately. Useful as a
	// sanity check.
	"uniform": {
		Rows: 100, Cols: 100, Epsilon: 0.01,
		Boundary: plate.Boundary{North: 100, South: 100, East: 100, West: 100},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
