package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PACKSCAN_STORE_DIR", "")
	t.Setenv("PACKSCAN_WORKERS", "")
	t.Setenv("PACKSCAN_CACHE_SIZE", "")
	t.Setenv("PACKSCAN_CLASSIFY", "")

	cfg := Load()
	if cfg.StoreDir == "" {
		t.Error("StoreDir default is empty")
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Workers)
	}
	if cfg.CacheSize != 4096 {
		t.Errorf("CacheSize = %d, want 4096", cfg.CacheSize)
	}
	if !cfg.Classify {
		t.Error("Classify = false, want true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PACKSCAN_STORE_DIR", "/data/store")
	t.Setenv("PACKSCAN_WORKERS", "8")
	t.Setenv("PACKSCAN_CACHE_SIZE", "128")
	t.Setenv("PACKSCAN_CLASSIFY", "false")

	cfg := Load()
	if cfg.StoreDir != "/data/store" {
		t.Errorf("StoreDir = %q, want %q", cfg.StoreDir, "/data/store")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.CacheSize != 128 {
		t.Errorf("CacheSize = %d, want 128", cfg.CacheSize)
	}
	if cfg.Classify {
		t.Error("Classify = true, want false")
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(Config) bool
	}{
		{
			name:  "workers not a number",
			key:   "PACKSCAN_WORKERS",
			value: "many",
			check: func(c Config) bool { return c.Workers == 0 },
		},
		{
			name:  "workers negative",
			key:   "PACKSCAN_WORKERS",
			value: "-4",
			check: func(c Config) bool { return c.Workers == 0 },
		},
		{
			name:  "cache size not a number",
			key:   "PACKSCAN_CACHE_SIZE",
			value: "big",
			check: func(c Config) bool { return c.CacheSize == 4096 },
		},
		{
			name:  "classify not a bool",
			key:   "PACKSCAN_CLASSIFY",
			value: "sometimes",
			check: func(c Config) bool { return c.Classify },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if cfg := Load(); !tt.check(cfg) {
				t.Errorf("Load() with %s=%q did not fall back: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestLoad_BoolSpellings(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"t", true},
		{"TRUE", true},
		{"0", false},
		{"f", false},
		{"FALSE", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PACKSCAN_CLASSIFY", tt.value)
			if cfg := Load(); cfg.Classify != tt.want {
				t.Errorf("Load() with PACKSCAN_CLASSIFY=%q: Classify = %v, want %v", tt.value, cfg.Classify, tt.want)
			}
		})
	}
}
