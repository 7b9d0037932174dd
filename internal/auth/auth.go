// internal/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tusep-web/config"
	"tusep-web/internal/client"
	"tusep-web/internal/database"
	"tusep-web/internal/models"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTokenExpired     = errors.New("stored token has expired")
)

// DefaultKey is the store key used by single-user front ends such as the CLI.
const DefaultKey = "default"

// Session holds the authenticated identity and bearer token of one user.
// It is created unauthenticated, becomes authenticated through Login or
// Restore, and returns to the unauthenticated state on Logout or on any 401.
type Session struct {
	api    *client.Client
	store  database.CredentialStore
	key    string
	logger *logrus.Logger
	now    func() time.Time

	mu    sync.RWMutex
	token string
	user  models.User

	// pmu orders writes to the credential store.
	pmu sync.Mutex
}

type Option func(*Session)

func WithLogger(l *logrus.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock replaces time.Now when checking token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession binds a session to api and to the credential stored under key.
func NewSession(api *client.Client, store database.CredentialStore, key string, opts ...Option) *Session {
	s := &Session{
		api:    api,
		store:  store,
		key:    key,
		logger: config.GetLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Key() string { return s.key }

// Login exchanges credentials for a token. A failed login leaves any prior
// session untouched.
func (s *Session) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return models.User{}, err
	}
	if resp.AccessToken == "" {
		return models.User{}, errors.New("login response carried no access token")
	}

	s.mu.Lock()
	s.token = resp.AccessToken
	s.user = resp.User
	s.mu.Unlock()

	cred := database.Credential{Token: resp.AccessToken, User: resp.User, SavedAt: s.now().UTC()}
	s.pmu.Lock()
	err = s.store.Save(ctx, s.key, cred)
	s.pmu.Unlock()
	if err != nil {
		config.LogError(s.logger, "auth", "Login", "persist credential", s.key, err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": resp.User.ID, "role": resp.User.Role}).Info("user logged in")
	return resp.User, nil
}

// Register creates the account and logs in with the same credentials.
func (s *Session) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	if _, err := s.api.Register(ctx, reg); err != nil {
		return models.User{}, err
	}
	return s.Login(ctx, models.Credentials{Email: reg.Email, Password: reg.Password})
}

// Restore revalidates a stored credential with GET /auth/me. Nothing stored
// is not an error. Any failure clears the stored credential and leaves the
// session unauthenticated; the cause is returned for logging.
func (s *Session) Restore(ctx context.Context) error {
	cred, found, err := s.store.Load(ctx, s.key)
	if err != nil {
		s.clear(ctx)
		return fmt.Errorf("load credential: %w", err)
	}
	if !found || cred.Token == "" {
		return nil
	}
	if exp, ok := TokenExpiry(cred.Token); ok && !s.now().Before(exp) {
		s.clear(ctx)
		return ErrTokenExpired
	}

	user, err := s.api.WithToken(cred.Token, nil).Me(ctx)
	if err != nil {
		s.clear(ctx)
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	s.token = cred.Token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout forgets the identity locally. The backend is not called.
func (s *Session) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Session) clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = models.User{}
	s.mu.Unlock()
	return s.dropStored(ctx)
}

// dropStored deletes the stored credential unless a login has authenticated
// the session again since it was cleared.
func (s *Session) dropStored(ctx context.Context) error {
	s.pmu.Lock()
	defer s.pmu.Unlock()
	if s.Authenticated() {
		return nil
	}
	if err := s.store.Delete(ctx, s.key); err != nil {
		config.LogError(s.logger, "auth", "dropStored", "delete credential", s.key, err)
		return err
	}
	return nil
}

// expire drops the session after a 401, unless a newer login replaced token.
func (s *Session) expire(token string) {
	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.user = models.User{}
	s.mu.Unlock()
	s.logger.WithField("session", s.key).Info("backend rejected credential, logging out")
	s.dropStored(context.Background())
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Current returns the logged-in user.
func (s *Session) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// API returns a client that carries the session's bearer token and logs the
// session out on a 401. Without a token the anonymous client is returned.
func (s *Session) API() *client.Client {
	tok := s.Token()
	if tok == "" {
		return s.api
	}
	return s.api.WithToken(tok, func() { s.expire(tok) })
}
