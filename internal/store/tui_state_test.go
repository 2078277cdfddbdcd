package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}

	// Missing file => default state.
	st0, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &TUIState{
		Version:     1,
		OpenEventID: "7",
		ReorderMode: true,
	}
	if err := s.SaveTUIState(want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}

	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestTUIState_CorruptFileIsDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tuiStateFileName), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := (Store{Dir: dir}).LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.OpenEventID != "" || st.Version != 1 {
		t.Fatalf("expected default state; got %#v", st)
	}
}

func TestTUIState_ConcurrentSavesLeaveNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.SaveTUIState(&TUIState{OpenEventID: strconv.Itoa(i)}); err != nil {
				t.Errorf("SaveTUIState: %v", err)
			}
		}(i)
	}
	wg.Wait()

	st, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if _, err := strconv.Atoi(st.OpenEventID); err != nil {
		t.Fatalf("expected one of the saved states; got %#v", st)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("leftover temp file %s", e.Name())
		}
	}
}
