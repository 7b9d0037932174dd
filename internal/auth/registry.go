package auth

import (
	"context"
	"sync"
	"time"

	"tusep-web/config"
	"tusep-web/internal/client"
	"tusep-web/internal/database"

	"github.com/sirupsen/logrus"
)

// DefaultMaxIdle is used when Registry.MaxIdle is unset.
const DefaultMaxIdle = 24 * time.Hour

type cachedSession struct {
	session  *Session
	lastSeen time.Time
}

// Registry keeps one Session per browser session id. A browser's stored
// credential is restored the first time this process sees its id, and again
// after the cached session has been idle for MaxIdle, so an entry the store
// has expired is not served from memory.
type Registry struct {
	// MaxIdle should match the credential store TTL.
	MaxIdle time.Duration

	api    *client.Client
	store  database.CredentialStore
	logger *logrus.Logger
	opts   []Option
	now    func() time.Time

	mu        sync.Mutex
	sessions  map[string]*cachedSession
	lastSweep time.Time
}

func NewRegistry(api *client.Client, store database.CredentialStore, opts ...Option) *Registry {
	return &Registry{
		api:      api,
		store:    store,
		logger:   config.GetLogger(),
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*cachedSession),
	}
}

func (r *Registry) maxIdle() time.Duration {
	if r.MaxIdle > 0 {
		return r.MaxIdle
	}
	return DefaultMaxIdle
}

// Get returns the session for sid, restoring it from the store when it is
// not cached or has been idle too long. Unauthenticated sessions are not
// cached.
func (r *Registry) Get(ctx context.Context, sid string) *Session {
	now := r.now()
	r.mu.Lock()
	r.sweep(now)
	entry, ok := r.sessions[sid]
	if ok {
		entry.lastSeen = now
	}
	r.mu.Unlock()
	if ok && entry.session.Authenticated() {
		return entry.session
	}

	s := NewSession(r.api, r.store, sid, r.opts...)
	if err := s.Restore(ctx); err != nil {
		r.logger.WithError(err).WithField("session", sid).Info("stored session discarded")
	}
	if s.Authenticated() {
		r.Remember(s)
	} else {
		r.Forget(sid)
	}
	return s
}

// sweep drops idle entries, at most once per tenth of MaxIdle. r.mu is held.
func (r *Registry) sweep(now time.Time) {
	idle := r.maxIdle()
	if now.Sub(r.lastSweep) < idle/10 {
		return
	}
	r.lastSweep = now
	for sid, entry := range r.sessions {
		if now.Sub(entry.lastSeen) > idle {
			delete(r.sessions, sid)
		}
	}
}

// Remember caches an authenticated session under its key.
func (r *Registry) Remember(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Key()] = &cachedSession{session: s, lastSeen: r.now()}
}

func (r *Registry) Forget(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
}

// Len is the number of cached sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
