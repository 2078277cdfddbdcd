package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// It is best effort: callers should tolerate missing/invalid data. Search text, type filter and
// sort mode are deliberately not stored here.
type TUIState struct {
	Version int `json:"version"`

	// OpenEventID is the navigable "open event" selection (empty = nothing open).
	// It is kept even when the event cannot currently be shown (e.g. private after logout).
	OpenEventID string `json:"openEventId,omitempty"`

	// ReorderMode restores the reorder toggle.
	ReorderMode bool `json:"reorderMode,omitempty"`
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

func defaultTUIState() *TUIState { return &TUIState{Version: 1} }

// LoadTUIState returns the saved state. A missing or corrupt file yields the default state; only
// I/O errors other than "not exist" are returned.
func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return defaultTUIState(), nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.tuiStatePath())
	switch {
	case errors.Is(err, os.ErrNotExist):
		return defaultTUIState(), nil
	case err != nil:
		return nil, err
	}
	st := defaultTUIState()
	if json.Unmarshal(b, st) != nil {
		return defaultTUIState(), nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return st, nil
}

// SaveTUIState writes st atomically (temp file + rename).
func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, tuiStateFileName+".*.tmp", s.tuiStatePath(), b, 0o644)
}
