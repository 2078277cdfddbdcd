package store

import "sync"

// KV is the string-keyed slot storage used for the custom order and the auth flag.
// Get reports ok=false for absent keys.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// MemKV is an in-memory KV for tests and for sessions that should not persist.
type MemKV struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemKV() *MemKV {
	return &MemKV{m: map[string]string{}}
}

func (k *MemKV) Get(key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *MemKV) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.m == nil {
		k.m = map[string]string{}
	}
	k.m[key] = value
	return nil
}

func (k *MemKV) Delete(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.m, key)
	return nil
}
