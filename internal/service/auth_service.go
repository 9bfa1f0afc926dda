package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/request-desk/internal/auth"
	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/events"
	"github.com/spec-kit/request-desk/internal/repository"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

// AuthService coordinates login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	sessions   *auth.SessionManager
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   *auth.SessionManager
	Dispatcher events.Dispatcher
}

// LoginResult carries the authenticated user and the session token.
type LoginResult struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
	}
}

// Authenticate verifies credentials and returns the user without its
// password. The email must match the stored address exactly. Unknown emails
// and wrong passwords fail identically.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.loginFailed(ctx, email)
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if password == "" || !auth.VerifyPassword(user.Password, password) {
		s.loginFailed(ctx, email)
		return nil, apperrors.NewInvalidCredentials()
	}
	public := user.Public()
	return &public, nil
}

// Login authenticates the user and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: *user, Token: token, ExpiresAt: exp}, nil
}

// Logout destroys the session behind token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

func (s *AuthService) loginFailed(ctx context.Context, email string) {
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventLoginFailed,
		Payload: events.LoginFailedPayload{Email: email},
	})
}
