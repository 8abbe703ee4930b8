package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRanges(t *testing.T) {
	cfg := Default()

	if cfg.Map.Width != 56 || cfg.Map.Height != 32 {
		t.Errorf("default grid = %dx%d, want 56x32", cfg.Map.Width, cfg.Map.Height)
	}
	if cfg.Map.DummySkipChance != 0.5 {
		t.Errorf("DummySkipChance = %v, want 0.5", cfg.Map.DummySkipChance)
	}
	if cfg.Map.MergeChance != 0.1 {
		t.Errorf("MergeChance = %v, want 0.1", cfg.Map.MergeChance)
	}
	if cfg.Server.Addr == "" {
		t.Error("default server addr should be set")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() on a missing file returned error: %v", err)
	}
	if cfg.Map.Width != Default().Map.Width {
		t.Error("missing file should fall back to defaults")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delvegen.yaml")
	data := `
map:
  width: 80
  height: 48
  rows: {min: 3, max: 5}
  columns: {min: 4, max: 4}
  rooms: {min: 4, max: 9}
  dummy_skip_chance: 0.25
  merge_chance: 0.2
server:
  addr: ":9000"
  allowed_origins: ["*"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Map.Width != 80 || cfg.Map.Height != 48 {
		t.Errorf("grid = %dx%d, want 80x48", cfg.Map.Width, cfg.Map.Height)
	}
	if cfg.Map.Rows != (Range{Min: 3, Max: 5}) {
		t.Errorf("rows = %+v, want {3 5}", cfg.Map.Rows)
	}
	if cfg.Map.DummySkipChance != 0.25 {
		t.Errorf("DummySkipChance = %v, want 0.25", cfg.Map.DummySkipChance)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q, want :9000", cfg.Server.Addr)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("map: [not a mapping"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Error("Load() on malformed YAML should return the parse error")
	}
	if cfg == nil || cfg.Map.Width != Default().Map.Width {
		t.Error("malformed file should still return defaults")
	}
}

func TestRollStaysInRanges(t *testing.T) {
	m := Default().Map

	for seed := int64(0); seed < 200; seed++ {
		dcfg := m.Roll(seed)

		if dcfg.Rows < m.Rows.Min || dcfg.Rows > m.Rows.Max {
			t.Fatalf("seed %d: rows %d outside [%d, %d]", seed, dcfg.Rows, m.Rows.Min, m.Rows.Max)
		}
		if dcfg.Columns < m.Columns.Min || dcfg.Columns > m.Columns.Max {
			t.Fatalf("seed %d: columns %d outside [%d, %d]", seed, dcfg.Columns, m.Columns.Min, m.Columns.Max)
		}
		if dcfg.RealRooms < m.Rooms.Min || dcfg.RealRooms > dcfg.Rows*dcfg.Columns {
			t.Fatalf("seed %d: rooms %d outside [%d, %d]", seed, dcfg.RealRooms, m.Rooms.Min, dcfg.Rows*dcfg.Columns)
		}
		if dcfg.Seed != seed {
			t.Fatalf("seed %d: rolled config carries seed %d", seed, dcfg.Seed)
		}
		if err := dcfg.Validate(); err != nil {
			t.Fatalf("seed %d: rolled config invalid: %v", seed, err)
		}
	}
}

func TestRollDeterministic(t *testing.T) {
	m := Default().Map
	a := m.Roll(1234)
	b := m.Roll(1234)

	if *a != *b {
		t.Errorf("Roll(1234) not deterministic: %+v vs %+v", a, b)
	}
}

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		host    string
		want    bool
	}{
		{"empty list same origin", nil, "http://game.local:4443", "game.local:4443", true},
		{"empty list cross origin", nil, "http://evil.example", "game.local:4443", false},
		{"empty list no origin header", nil, "", "game.local:4443", true},
		{"wildcard", []string{"*"}, "http://anywhere.example", "game.local", true},
		{"exact match", []string{"http://ok.example"}, "http://ok.example", "game.local", true},
		{"no match", []string{"http://ok.example"}, "http://bad.example", "game.local", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ServerConfig{AllowedOrigins: tc.origins}
			if got := cfg.IsOriginAllowed(tc.origin, tc.host); got != tc.want {
				t.Errorf("IsOriginAllowed(%q, %q) = %v, want %v", tc.origin, tc.host, got, tc.want)
			}
		})
	}
}
