package order

import (
	"encoding/json"
	"strings"

	"hackevents/internal/store"
)

// Key is the persisted slot holding the JSON-encoded custom order.
const Key = "eventOrderV1"

// Store owns the user's custom event order and is the only writer of Key.
// The order is read once in New; every mutation writes through before returning.
type Store struct {
	kv    store.KV
	order []int
}

func New(kv store.KV) *Store {
	s := &Store{kv: kv}
	s.order = s.Load()
	return s
}

// Load reads the persisted order. Absent, unreadable or corrupt values load as empty.
func (s *Store) Load() []int {
	if s.kv == nil {
		return []int{}
	}
	raw, ok, err := s.kv.Get(Key)
	if err != nil || !ok || strings.TrimSpace(raw) == "" {
		return []int{}
	}
	return decode(raw)
}

func decode(raw string) []int {
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []int{}
	}
	if ids == nil {
		return []int{}
	}
	return ids
}

// Order returns a copy of the current custom order.
func (s *Store) Order() []int {
	return append([]int{}, s.order...)
}

func (s *Store) IsEmpty() bool { return len(s.order) == 0 }

// Save replaces the custom order and persists it. The in-memory order is updated even when
// the write fails; the returned error only reports that persistence was skipped.
func (s *Store) Save(ids []int) error {
	s.order = append([]int{}, ids...)
	if s.kv == nil {
		return nil
	}
	b, err := json.Marshal(s.order)
	if err != nil {
		return err
	}
	return s.kv.Set(Key, string(b))
}

// Clear drops the custom order (display falls back to the plain sort).
func (s *Store) Clear() error {
	s.order = []int{}
	if s.kv == nil {
		return nil
	}
	return s.kv.Delete(Key)
}

// Swap exchanges the events at visible indices a and b. The baseline is the custom order, or
// the gated id sequence when no custom order exists. Invalid or equal indices are a no-op.
func (s *Store) Swap(a, b int, visible, gated []int) (bool, error) {
	next, ok := PlanSwap(s.order, visible, gated, a, b)
	if !ok {
		return false, nil
	}
	return true, s.Save(next)
}

// CommitDrag moves draggedID so it lands at targetIndex of the visible list.
// originIndex == targetIndex is a no-op.
func (s *Store) CommitDrag(draggedID, targetIndex, originIndex int, visible []int) (bool, error) {
	next, ok := PlanDrag(s.order, visible, draggedID, targetIndex, originIndex)
	if !ok {
		return false, nil
	}
	return true, s.Save(next)
}
