package permission

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/repo-downloader/internal/download"
	"github.com/ytget/repo-downloader/internal/logging"
)

// KeyPrefix prefixes the preference key of a stored grant
const KeyPrefix = "permission_"

// Store persists grants. fyne.Preferences satisfies it.
type Store interface {
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
}

// Prompter asks the user for a capability. onDecision fires at most once.
type Prompter interface {
	Prompt(capability string, onDecision func(granted bool))
}

// PreferenceAuthorizer remembers a granted capability and prompts otherwise
type PreferenceAuthorizer struct {
	store    Store
	prompter Prompter
	log      zerolog.Logger
}

var _ download.Authorizer = (*PreferenceAuthorizer)(nil)

// NewPreferenceAuthorizer creates an authorizer backed by store
func NewPreferenceAuthorizer(store Store, prompter Prompter) *PreferenceAuthorizer {
	return &PreferenceAuthorizer{
		store:    store,
		prompter: prompter,
		log:      logging.Component("permission"),
	}
}

// IsAuthorized reports whether the capability was granted before
func (a *PreferenceAuthorizer) IsAuthorized(capability string) bool {
	return a.store.BoolWithFallback(KeyPrefix+capability, false)
}

// RequestAuthorization prompts the user and stores a positive answer.
// A denial is not stored, so the next submission asks again.
func (a *PreferenceAuthorizer) RequestAuthorization(capability string, onDecision func(granted bool)) {
	a.prompter.Prompt(capability, func(granted bool) {
		a.log.Info().Str("capability", capability).Bool("granted", granted).Msg("authorization decided")
		if granted {
			a.store.SetBool(KeyPrefix+capability, true)
		}
		onDecision(granted)
	})
}

// Revoke forgets a stored grant
func (a *PreferenceAuthorizer) Revoke(capability string) {
	a.store.SetBool(KeyPrefix+capability, false)
}

// Static answers every request with the same decision
type Static struct {
	Granted bool
}

// IsAuthorized returns the fixed decision
func (s Static) IsAuthorized(string) bool {
	return s.Granted
}

// RequestAuthorization reports the fixed decision asynchronously
func (s Static) RequestAuthorization(_ string, onDecision func(bool)) {
	go onDecision(s.Granted)
}

// MemoryStore is an in-process Store for headless runs and tests
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]bool
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]bool)}
}

// BoolWithFallback returns the stored value or fallback
func (m *MemoryStore) BoolWithFallback(key string, fallback bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return fallback
}

// SetBool stores value under key
func (m *MemoryStore) SetBool(key string, value bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
