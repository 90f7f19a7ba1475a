package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"launchpad/pkg/mulearn"
)

// ErrSessionNotFound covers unknown, expired, and revoked sessions alike so
// callers cannot distinguish them.
var ErrSessionNotFound = errors.New("gateway: session not found")

const defaultSessionTTL = 12 * time.Hour

// Session is an authenticated browser session. The upstream access token
// stays server-side; the browser only ever holds the session id.
type Session struct {
	ID           uuid.UUID
	UserID       string
	UserType     mulearn.UserType
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type sessionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:text;not null;index"`
	UserType     string    `gorm:"type:text;not null"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null"`
	LastSeenAt   *time.Time
}

func (sessionModel) TableName() string { return "sessions" }

func (m sessionModel) toSession() Session {
	return Session{
		ID:           m.ID,
		UserID:       m.UserID,
		UserType:     mulearn.UserType(m.UserType),
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
		ExpiresAt:    m.ExpiresAt,
	}
}

type sessionStore struct {
	orm *gorm.DB
	ttl time.Duration
}

func newSessionStore(orm *gorm.DB, ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionStore{orm: orm, ttl: ttl}
}

// Create opens a session for a fresh upstream login.
func (s *sessionStore) Create(ctx context.Context, userType mulearn.UserType, tokens mulearn.Tokens) (Session, error) {
	model := sessionModel{
		ID:           uuid.New(),
		UserID:       tokens.ID,
		UserType:     string(userType),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(s.ttl),
	}
	if err := s.orm.WithContext(ctx).Create(&model).Error; err != nil {
		return Session{}, err
	}
	return model.toSession(), nil
}

// Lookup loads a live session and stamps last-seen.
func (s *sessionStore) Lookup(ctx context.Context, id uuid.UUID) (Session, error) {
	var model sessionModel
	err := s.orm.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}
	if time.Now().UTC().After(model.ExpiresAt) {
		return Session{}, ErrSessionNotFound
	}

	now := time.Now().UTC()
	_ = s.orm.WithContext(ctx).Model(&model).Update("last_seen_at", &now).Error

	return model.toSession(), nil
}

// Delete revokes a session.
func (s *sessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orm.WithContext(ctx).Delete(&sessionModel{}, "id = ?", id).Error
}

type sessionContextKey struct{}

// withSession authenticates requests with a bearer session id and stores the
// session on the request context.
func (g *Gateway) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			respondError(w, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}

		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			respondError(w, http.StatusUnauthorized, errors.New("malformed session token"))
			return
		}

		session, err := g.sessions.Lookup(r.Context(), id)
		if errors.Is(err, ErrSessionNotFound) {
			respondError(w, http.StatusUnauthorized, err)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(Session)
	return session, ok
}
