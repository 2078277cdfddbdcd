package auth

import (
	"errors"

	"hackevents/internal/store"
)

// StorageKey holds "true" while a viewer is signed in. Any other value (or absence) is signed out.
const StorageKey = "htn_isAuthed"

const (
	username = "hacker"
	password = "htn2026"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Provider is the sign-in flag. It is read from storage once in New and written through on
// every change. A nil KV keeps the flag in memory only.
type Provider struct {
	kv     store.KV
	authed bool
}

func New(kv store.KV) *Provider {
	p := &Provider{kv: kv}
	if kv != nil {
		if v, ok, err := kv.Get(StorageKey); err == nil && ok && v == "true" {
			p.authed = true
		}
	}
	return p
}

func (p *Provider) IsAuthed() bool { return p.authed }

// Login compares against the fixed demo credentials. A storage failure still signs the viewer
// in for this session and is returned alongside.
func (p *Provider) Login(user, pass string) error {
	if user != username || pass != password {
		return ErrInvalidCredentials
	}
	p.authed = true
	if p.kv == nil {
		return nil
	}
	return p.kv.Set(StorageKey, "true")
}

func (p *Provider) Logout() error {
	p.authed = false
	if p.kv == nil {
		return nil
	}
	return p.kv.Delete(StorageKey)
}
