package store

import (
	"context"
	"testing"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) ok=%v err=%v", ok, err)
	}
	if err := kv.Set("eventOrderV1", "[3,1]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("eventOrderV1", "[2]"); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	v, ok, err := kv.Get("eventOrderV1")
	if err != nil || !ok || v != "[2]" {
		t.Fatalf("Get = %q ok=%v err=%v; want [2]", v, ok, err)
	}
	if err := kv.Delete("eventOrderV1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get("eventOrderV1"); ok {
		t.Fatalf("expected key to be gone after Delete")
	}
	// Deleting an absent key is not an error.
	if err := kv.Delete("eventOrderV1"); err != nil {
		t.Fatalf("Delete (absent): %v", err)
	}
}

func TestMemKV(t *testing.T) {
	t.Parallel()
	exerciseKV(t, NewMemKV())
}

func TestSQLiteKV(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	kv, err := s.OpenKV(context.Background())
	if err != nil {
		t.Fatalf("OpenKV: %v", err)
	}
	defer kv.Close()
	exerciseKV(t, kv)
}

func TestSQLiteKV_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	kv, err := s.OpenKV(ctx)
	if err != nil {
		t.Fatalf("OpenKV: %v", err)
	}
	if err := kv.Set("htn_isAuthed", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = kv.Close()

	kv2, err := s.OpenKV(ctx)
	if err != nil {
		t.Fatalf("OpenKV (reopen): %v", err)
	}
	defer kv2.Close()
	v, ok, err := kv2.Get("htn_isAuthed")
	if err != nil || !ok || v != "true" {
		t.Fatalf("Get after reopen = %q ok=%v err=%v", v, ok, err)
	}
}
