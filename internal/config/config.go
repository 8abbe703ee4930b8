// Package config loads application configuration from YAML, with defaults
// that match the layout the original game shipped with.
package config

import (
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roguefoundry/delvegen/internal/dungeon"
)

// Range is an inclusive [Min, Max] integer range rolled per generation.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// roll draws uniformly from the range. Max below Min collapses to Min.
func (r Range) roll(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// MapConfig holds the generation parameters the host re-rolls per map:
// fixed grid dimensions, ranges for the sector lattice shape and the real
// room count, and the two tunable probabilities.
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Rows    Range `yaml:"rows"`
	Columns Range `yaml:"columns"`

	// Rooms.Max of 0 means "up to every sector".
	Rooms Range `yaml:"rooms"`

	DummySkipChance float64 `yaml:"dummy_skip_chance"`
	MergeChance     float64 `yaml:"merge_chance"`
}

// ServerConfig holds settings for the WebSocket map service.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// AllowedOrigins lists origins allowed to connect. Empty enforces
	// same-origin; "*" allows all.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum request message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// Config is the root application configuration.
type Config struct {
	Map    MapConfig    `yaml:"map"`
	Server ServerConfig `yaml:"server"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Map: MapConfig{
			Width:           56,
			Height:          32,
			Rows:            Range{Min: 2, Max: 4},
			Columns:         Range{Min: 3, Max: 4},
			Rooms:           Range{Min: 2, Max: 0}, // up to every sector
			DummySkipChance: dungeon.DefaultDummySkipChance,
			MergeChance:     dungeon.DefaultMergeChance,
		},
		Server: ServerConfig{
			Addr:           ":4443",
			AllowedOrigins: []string{},
			MaxMessageSize: 4096,
		},
	}
}

// Load reads configuration from a YAML file. A missing file returns the
// defaults; a malformed file returns the defaults and the parse error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Roll produces a concrete generation config from the configured ranges,
// deterministically for a given seed. The same seed drives the subsequent
// generation, so one number reproduces the whole map.
func (m *MapConfig) Roll(seed int64) *dungeon.Config {
	rng := rand.New(rand.NewSource(seed))

	rows := m.Rows.roll(rng)
	columns := m.Columns.roll(rng)

	rooms := m.Rooms
	if rooms.Max <= 0 || rooms.Max > rows*columns {
		rooms.Max = rows * columns
	}
	if rooms.Min < 1 {
		rooms.Min = 1
	}
	if rooms.Min > rooms.Max {
		rooms.Min = rooms.Max
	}

	return &dungeon.Config{
		Width:           m.Width,
		Height:          m.Height,
		Rows:            rows,
		Columns:         columns,
		RealRooms:       rooms.roll(rng),
		Seed:            seed,
		DummySkipChance: m.DummySkipChance,
		MergeChance:     m.MergeChance,
	}
}

// IsOriginAllowed checks a WebSocket origin against the configured list:
// "*" allows everything, an exact entry allows that origin, and an empty
// list enforces same-origin.
func (s *ServerConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(s.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}
	for _, allowed := range s.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// isSameOrigin compares the origin header's host against the request host.
// A missing origin (non-browser client) counts as same-origin.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true
	}
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")
	return originHost == requestHost
}
