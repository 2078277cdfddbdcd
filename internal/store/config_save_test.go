package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("HACKEVENTS_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{Endpoint: "https://seed.test/graphql"}); err != nil {
		t.Fatalf("SaveConfig(seed): %v", err)
	}

	const n = 64
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			cfg, err := LoadConfig()
			if err != nil {
				errCh <- err
				return
			}
			cfg.API = fmt.Sprintf("http://127.0.0.1:%d", 3000+i)
			if err := SetConfigValue(cfg, "tui.cardWidth", fmt.Sprint(20+i)); err != nil {
				errCh <- err
				return
			}
			if err := SaveConfig(cfg); err != nil {
				errCh <- err
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}
	if t.Failed() {
		return
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config.json: %v", err)
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("config.json corrupted/unparseable: %v\nraw:\n%s", err, string(raw))
	}
	if cfg.Endpoint != "https://seed.test/graphql" {
		t.Fatalf("endpoint lost: %#v", cfg)
	}

	ents, err := os.ReadDir(cfgDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, "config.json.") && strings.HasSuffix(name, ".tmp") {
			t.Fatalf("leftover temp file: %s", name)
		}
	}
}
