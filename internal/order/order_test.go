package order

import (
	"errors"
	"reflect"
	"testing"

	"hackevents/internal/store"
)

func TestLoad_CorruptOrMissingIsEmpty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not json", `{"a":1}`, "null", `["x"]`} {
		kv := store.NewMemKV()
		if raw != "" {
			_ = kv.Set(Key, raw)
		}
		s := New(kv)
		if got := s.Order(); len(got) != 0 {
			t.Fatalf("raw %q: expected empty order; got %v", raw, got)
		}
	}
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingKV) Set(string, string) error { return errors.New("disk on fire") }
func (failingKV) Delete(string) error { return errors.New("disk on fire") }

func TestLoad_ReadErrorIsEmpty(t *testing.T) {
	t.Parallel()

	s := New(failingKV{})
	if !s.IsEmpty() {
		t.Fatalf("expected empty order on read error")
	}
	if err := s.Save([]int{1}); err == nil {
		t.Fatalf("expected write error")
	}
	if got := s.Order(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("in-memory order should survive a failed write; got %v", got)
	}
}

func TestSaveLoadClear(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	s := New(kv)
	if err := s.Save([]int{3, 1, 2}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, _, _ := kv.Get(Key)
	if raw != "[3,1,2]" {
		t.Fatalf("persisted = %q", raw)
	}
	if got := New(kv).Order(); !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Fatalf("reload = %v", got)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := kv.Get(Key); ok {
		t.Fatalf("expected key removed after Clear")
	}
	if !s.IsEmpty() {
		t.Fatalf("expected empty order after Clear")
	}
}

func TestOrder_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New(store.NewMemKV())
	_ = s.Save([]int{1, 2})
	got := s.Order()
	got[0] = 99
	if s.Order()[0] != 1 {
		t.Fatalf("Order leaked internal slice")
	}
}

func TestCommitDrag_ForwardMove(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	s := New(kv)
	ok, err := s.CommitDrag(1, 2, 0, []int{1, 2, 3, 4})
	if err != nil || !ok {
		t.Fatalf("CommitDrag ok=%v err=%v", ok, err)
	}
	if got := s.Order(); !reflect.DeepEqual(got, []int{2, 3, 1, 4}) {
		t.Fatalf("order = %v; want [2 3 1 4]", got)
	}
	raw, _, _ := kv.Get(Key)
	if raw != "[2,3,1,4]" {
		t.Fatalf("persisted = %q", raw)
	}
}

func TestCommitDrag_BackwardAndEnd(t *testing.T) {
	t.Parallel()

	s := New(store.NewMemKV())
	if _, err := s.CommitDrag(4, 1, 3, []int{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if got := s.Order(); !reflect.DeepEqual(got, []int{1, 4, 2, 3}) {
		t.Fatalf("order = %v; want [1 4 2 3]", got)
	}
	// Dragging to the last slot appends.
	if _, err := s.CommitDrag(1, 3, 0, []int{1, 4, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if got := s.Order(); !reflect.DeepEqual(got, []int{4, 2, 3, 1}) {
		t.Fatalf("order = %v; want [4 2 3 1]", got)
	}
}

func TestCommitDrag_SameIndexIsNoop(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	s := New(kv)
	ok, err := s.CommitDrag(2, 1, 1, []int{1, 2, 3})
	if err != nil || ok {
		t.Fatalf("expected no-op; ok=%v err=%v", ok, err)
	}
	if _, present, _ := kv.Get(Key); present {
		t.Fatalf("no-op must not persist")
	}
}

func TestCommitDrag_UsesCustomOrderBaseline(t *testing.T) {
	t.Parallel()

	// Custom order contains a stale id (99) and a hidden id (7, filtered out of view).
	s := New(store.NewMemKV())
	_ = s.Save([]int{99, 3, 7, 1, 2})
	visible := []int{3, 1, 2}

	if _, err := s.CommitDrag(2, 0, 2, visible); err != nil {
		t.Fatal(err)
	}
	// 2 lands before 3; stale and hidden ids keep their relative places.
	if got := s.Order(); !reflect.DeepEqual(got, []int{99, 2, 3, 7, 1}) {
		t.Fatalf("order = %v", got)
	}
}

func TestSwap_InvalidIndicesAreNoop(t *testing.T) {
	t.Parallel()

	s := New(store.NewMemKV())
	_ = s.Save([]int{1, 2, 3})
	visible := []int{1, 2, 3}

	for _, c := range [][2]int{{0, 0}, {-1, 0}, {0, 3}, {5, 1}} {
		ok, err := s.Swap(c[0], c[1], visible, visible)
		if err != nil || ok {
			t.Fatalf("swap(%d,%d): expected no-op; ok=%v err=%v", c[0], c[1], ok, err)
		}
		if got := s.Order(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
			t.Fatalf("swap(%d,%d) changed order: %v", c[0], c[1], got)
		}
	}
}

func TestSwap_EmptyOrderUsesGatedBaseline(t *testing.T) {
	t.Parallel()

	s := New(store.NewMemKV())
	gated := []int{1, 2, 3, 4}
	visible := []int{2, 4} // type filter active

	ok, err := s.Swap(0, 1, visible, gated)
	if err != nil || !ok {
		t.Fatalf("Swap ok=%v err=%v", ok, err)
	}
	if got := s.Order(); !reflect.DeepEqual(got, []int{1, 4, 3, 2}) {
		t.Fatalf("order = %v; want [1 4 3 2]", got)
	}
}

func TestSwap_AdjacentWithCustomOrder(t *testing.T) {
	t.Parallel()

	s := New(store.NewMemKV())
	_ = s.Save([]int{3, 1})
	// Display is [3 1 2]: 2 is absent from the custom order.
	visible := []int{3, 1, 2}

	if _, err := s.Swap(1, 2, visible, visible); err != nil {
		t.Fatal(err)
	}
	if got := s.Order(); !reflect.DeepEqual(got, []int{3, 2, 1}) {
		t.Fatalf("order = %v; want [3 2 1]", got)
	}
}
