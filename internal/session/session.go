// Package session implements the local sign-in used to gate favorite edits.
//
// Credentials are checked against a single configured username and bcrypt
// hash. A successful login stores a signed token in the storage backend so
// later invocations stay signed in until it expires or the user logs out.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jacksmith/footy/internal/logging"
	"github.com/jacksmith/footy/internal/model"
	"github.com/jacksmith/footy/internal/storage"
)

// StorageKey is the key the signed-in session is stored under.
const StorageKey = "footballApp_user"

// DefaultPassword is accepted when no password hash is configured.
const DefaultPassword = "password123"

var (
	// ErrMissingCredentials is returned when username or password is blank.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials is returned when the credentials do not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotLoggedIn is returned when there is no valid session.
	ErrNotLoggedIn = errors.New("not logged in")
)

// Config holds the accepted credentials and token settings.
type Config struct {
	Username     string
	PasswordHash string
	Secret       string
	TTL          time.Duration
}

// Manager signs users in and out.
type Manager struct {
	backend  storage.Backend
	username string
	hash     []byte
	tokens   *tokenManager
	logger   *logging.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used when a stored session is discarded.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock overrides the time source for issuing and checking tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.tokens.now = now }
}

// NewManager returns a Manager storing its session in backend.
func NewManager(backend storage.Backend, cfg Config, opts ...Option) (*Manager, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("session secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = storage.DefaultSessionTTL
	}

	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash default password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid password_hash: %w", err)
	}

	m := &Manager{
		backend:  backend,
		username: cfg.Username,
		hash:     hash,
		tokens:   &tokenManager{secret: []byte(cfg.Secret), ttl: ttl, now: time.Now},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Login checks the credentials and stores a new session.
func (m *Manager) Login(ctx context.Context, username, password string) (*model.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	userOK := username == m.username
	passErr := bcrypt.CompareHashAndPassword(m.hash, []byte(password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, issuedAt, expiresAt, err := m.tokens.issue(username)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	s := &model.Session{
		Username:  username,
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}

	raw, err := model.EncodeSession(s)
	if err != nil {
		return nil, err
	}
	if err := m.backend.Set(ctx, StorageKey, raw); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Current returns the stored session. A session that cannot be read, whose
// token does not verify, or that has expired is removed and ErrNotLoggedIn
// is returned.
func (m *Manager) Current(ctx context.Context) (*model.Session, error) {
	raw, ok, err := m.backend.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}

	s, err := model.DecodeSession(raw)
	if err == nil {
		var c *claims
		c, err = m.tokens.parse(s.Token)
		if err == nil && c.Subject != s.Username {
			err = errors.New("token subject does not match session user")
		}
	}
	if err != nil {
		m.logger.Info("discarding stored session", "key", StorageKey, "err", err)
		if rmErr := m.backend.Remove(ctx, StorageKey); rmErr != nil {
			return nil, fmt.Errorf("remove session: %w", rmErr)
		}
		return nil, ErrNotLoggedIn
	}
	return s, nil
}

// IsAuthenticated reports whether a valid session exists.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	s, err := m.Current(ctx)
	return err == nil && s != nil
}

// Logout removes the stored session. Logging out when signed out is not an
// error.
func (m *Manager) Logout(ctx context.Context) error {
	return m.backend.Remove(ctx, StorageKey)
}

// HashPassword returns a bcrypt hash suitable for the password_hash setting.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrMissingCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
