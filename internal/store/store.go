package store

import (
	"os"
	"path/filepath"
)

const sqliteFileName = "state.sqlite"

// Store is the on-disk home of client-side state: the key-value db (custom order, auth flag)
// and the TUI state file.
type Store struct {
	Dir string
}

// DefaultDir is ~/.hackevents/state (or $HACKEVENTS_CONFIG_DIR/state).
func DefaultDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}
