package session

import (
	"context"
	"sync"
	"time"

	"farmdirect/internal/common"
	"farmdirect/internal/common/security"
	"farmdirect/internal/domain/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	SignedIn       EventType = "SIGNED_IN"
	SignedOut      EventType = "SIGNED_OUT"
	TokenRefreshed EventType = "TOKEN_REFRESHED"
)

// Event notifies subscribers of a session state change. Session is nil for
// SignedOut.
type Event struct {
	Type    EventType
	Session *model.Session
}

// TokenIssuer mints access tokens. Indirection exists so tests can issue
// tokens with controlled expiry without touching the JWT key material.
type TokenIssuer func(userID, role string) (token string, expiresAt time.Time, err error)

// Manager owns session lifecycle: issuing access/refresh token pairs,
// proactively refreshing tokens that are about to expire, and fanning state
// changes out to subscribers.
type Manager struct {
	store         TokenStore
	issue         TokenIssuer
	refreshWindow time.Duration
	refreshTTL    time.Duration
	now           func() time.Time

	mu     sync.Mutex
	subs   []chan Event
	closed bool
}

type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithTokenIssuer overrides access token minting.
func WithTokenIssuer(issue TokenIssuer) Option {
	return func(m *Manager) { m.issue = issue }
}

func NewManager(store TokenStore, refreshWindow, refreshTTL time.Duration, opts ...Option) *Manager {
	m := &Manager{
		store:         store,
		issue:         security.GenerateToken,
		refreshWindow: refreshWindow,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue creates a fresh session for the user and announces SignedIn.
func (m *Manager) Issue(ctx context.Context, userID, role string) (*model.Session, error) {
	sess, err := m.mint(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	m.publish(Event{Type: SignedIn, Session: sess})
	return sess, nil
}

// Current returns a session that is safe to use for at least the refresh
// window. A session expiring inside the window is refreshed transparently;
// callers always get back a usable token or an error, never a token that is
// about to die mid-request.
func (m *Manager) Current(ctx context.Context, sess *model.Session) (*model.Session, error) {
	if sess == nil {
		return nil, common.ErrUnauthorized
	}
	if !sess.ExpiresWithin(m.refreshWindow, m.now()) {
		return sess, nil
	}
	return m.Refresh(ctx, sess.RefreshToken)
}

// Refresh rotates the refresh token and mints a new access token. The old
// refresh token is invalidated before the event is published so a stolen
// token cannot be replayed after rotation.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	userID, role, err := m.store.Lookup(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if err := m.store.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}
	sess, err := m.mint(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	m.publish(Event{Type: TokenRefreshed, Session: sess})
	return sess, nil
}

// Revoke ends the session and announces SignedOut. Revoking an unknown
// token is not an error.
func (m *Manager) Revoke(ctx context.Context, refreshToken string) error {
	if err := m.store.Delete(ctx, refreshToken); err != nil {
		return err
	}
	m.publish(Event{Type: SignedOut})
	return nil
}

// Subscribe registers a listener for session events. The returned channel
// is buffered; a subscriber that falls behind loses events rather than
// blocking session operations.
func (m *Manager) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		close(ch)
		return ch
	}
	m.subs = append(m.subs, ch)
	return ch
}

// Close tears down the manager. Events raised by operations still in flight
// after Close are dropped, not delivered.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for _, ch := range m.subs {
		close(ch)
	}
	m.subs = nil
}

func (m *Manager) mint(ctx context.Context, userID, role string) (*model.Session, error) {
	accessToken, expiresAt, err := m.issue(userID, role)
	if err != nil {
		return nil, err
	}
	refreshToken := uuid.New().String()
	if err := m.store.Save(ctx, refreshToken, userID, role, m.refreshTTL); err != nil {
		return nil, err
	}
	return &model.Session{
		UserID:       userID,
		Role:         role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func (m *Manager) publish(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
			log.Warn().Str("event", string(ev.Type)).Msg("session subscriber full, dropping event")
		}
	}
}
