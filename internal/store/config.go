package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type GlobalConfig struct {
	// Endpoint is the upstream GraphQL URL. GRAPHQL_ENDPOINT and --endpoint take precedence.
	Endpoint string `json:"endpoint,omitempty"`

	// API optionally points at a running `hackevents serve` proxy (e.g. http://127.0.0.1:3000).
	// When set, the TUI and CLI read events through the proxy instead of the upstream.
	API string `json:"api,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is one of light|dark|auto.
	Theme string `json:"theme,omitempty"`
	// CardWidth is the preferred card width in cells (0 = default).
	CardWidth int `json:"cardWidth,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.hackevents).
	if v := strings.TrimSpace(os.Getenv("HACKEVENTS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hackevents"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename so a concurrent TUI and CLI never see a torn file.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ConfigKeys lists the keys accepted by SetConfigValue.
var ConfigKeys = []string{"endpoint", "api", "tui.theme", "tui.cardWidth"}

// SetConfigValue sets a dotted key on cfg. An empty value clears the key.
func SetConfigValue(cfg *GlobalConfig, key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.TrimSpace(key) {
	case "endpoint":
		cfg.Endpoint = value
	case "api":
		cfg.API = strings.TrimRight(value, "/")
	case "tui.theme":
		switch strings.ToLower(value) {
		case "", "auto", "light", "dark":
		default:
			return fmt.Errorf("invalid tui.theme: %s (expected light|dark|auto)", value)
		}
		if cfg.TUI == nil {
			cfg.TUI = &TUIConfig{}
		}
		cfg.TUI.Theme = strings.ToLower(value)
	case "tui.cardWidth":
		n := 0
		if value != "" {
			v, err := strconv.Atoi(value)
			if err != nil || v < 0 {
				return fmt.Errorf("invalid tui.cardWidth: %s", value)
			}
			n = v
		}
		if cfg.TUI == nil {
			cfg.TUI = &TUIConfig{}
		}
		cfg.TUI.CardWidth = n
	default:
		return fmt.Errorf("unknown config key: %s (expected one of %s)", key, strings.Join(ConfigKeys, ", "))
	}
	return nil
}
