package store

import "testing"

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("HACKEVENTS_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig (missing): %v", err)
	}
	if cfg.Endpoint != "" || cfg.TUI != nil {
		t.Fatalf("expected empty config; got %#v", cfg)
	}

	if err := SetConfigValue(cfg, "endpoint", " https://example.test/graphql "); err != nil {
		t.Fatalf("SetConfigValue endpoint: %v", err)
	}
	if err := SetConfigValue(cfg, "api", "http://127.0.0.1:3000/"); err != nil {
		t.Fatalf("SetConfigValue api: %v", err)
	}
	if err := SetConfigValue(cfg, "tui.theme", "Dark"); err != nil {
		t.Fatalf("SetConfigValue tui.theme: %v", err)
	}
	if err := SetConfigValue(cfg, "tui.cardWidth", "40"); err != nil {
		t.Fatalf("SetConfigValue tui.cardWidth: %v", err)
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Endpoint != "https://example.test/graphql" || got.API != "http://127.0.0.1:3000" {
		t.Fatalf("unexpected config: %#v", got)
	}
	if got.TUI == nil || got.TUI.Theme != "dark" || got.TUI.CardWidth != 40 {
		t.Fatalf("unexpected tui config: %#v", got.TUI)
	}
}

func TestSetConfigValue_Rejects(t *testing.T) {
	t.Parallel()

	cfg := &GlobalConfig{}
	if err := SetConfigValue(cfg, "nope", "x"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := SetConfigValue(cfg, "tui.theme", "purple"); err == nil {
		t.Fatalf("expected invalid theme error")
	}
	if err := SetConfigValue(cfg, "tui.cardWidth", "-3"); err == nil {
		t.Fatalf("expected invalid width error")
	}
}
