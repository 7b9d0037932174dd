// internal/database/store.go
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tusep-web/config"
	"tusep-web/internal/models"
)

// Credential is what survives a restart: the bearer token and the identity
// it was issued for.
type Credential struct {
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	SavedAt time.Time   `json:"savedAt"`
}

// CredentialStore keeps one credential per session key. Load reports
// found=false, not an error, when nothing is stored.
type CredentialStore interface {
	Load(ctx context.Context, key string) (cred Credential, found bool, err error)
	Save(ctx context.Context, key string, cred Credential) error
	Delete(ctx context.Context, key string) error
}

// Closer releases the connections behind a store.
type Closer func(context.Context) error

func noopCloser(context.Context) error { return nil }

// OpenStore builds the store selected by cfg.Session.Store.
func OpenStore(ctx context.Context, cfg config.Config) (CredentialStore, Closer, error) {
	switch cfg.Session.Store {
	case "", "file":
		s, err := NewFileStore(cfg.Session.FileDir, cfg.Session.Secret)
		return s, noopCloser, err
	case "redis":
		rdb, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(rdb, cfg.Session.MaxAge), func(context.Context) error { return rdb.Close() }, nil
	case "mongo":
		client, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		s := NewMongoStore(client.Database(cfg.Mongo.DBName), cfg.Session.MaxAge)
		if err := s.EnsureIndexes(ctx); err != nil {
			client.Disconnect(ctx)
			return nil, nil, err
		}
		return s, client.Disconnect, nil
	case "memory":
		return NewMemoryStore(), noopCloser, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
}

// MemoryStore keeps credentials for the process lifetime only.
type MemoryStore struct {
	mu    sync.RWMutex
	creds map[string]Credential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{creds: make(map[string]Credential)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (Credential, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.creds[key]
	return c, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, cred Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds[key] = cred
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.creds, key)
	return nil
}
