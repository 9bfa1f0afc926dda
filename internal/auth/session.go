package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/repository"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

// SessionManager creates, resolves and destroys login sessions.
type SessionManager struct {
	tokens   *TokenManager
	sessions repository.SessionRepository
	now      func() time.Time
}

// NewSessionManager wires tokens to a session store.
func NewSessionManager(tokens *TokenManager, sessions repository.SessionRepository) *SessionManager {
	return &SessionManager{tokens: tokens, sessions: sessions, now: time.Now}
}

// Create opens a session for userID and returns its signed token.
func (m *SessionManager) Create(ctx context.Context, userID string) (string, time.Time, error) {
	now := m.now()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now.UTC(),
		ExpiresAt: now.Add(m.tokens.TTL()).UTC(),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	token, exp, err := m.tokens.GenerateToken(session.ID, userID, now)
	if err != nil {
		_ = m.sessions.Delete(ctx, session.ID)
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

// Resolve returns the session behind token.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, apperrors.NewUnauthenticated("authentication required")
	}
	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthenticated("invalid session")
	}
	session, err := m.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthenticated("session expired")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if session.UserID != claims.Subject || session.Expired(m.now()) {
		return nil, apperrors.NewUnauthenticated("session expired")
	}
	return session, nil
}

// Destroy removes the session behind token. Unknown or malformed tokens are
// ignored.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := m.sessions.Delete(ctx, claims.SessionID); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
