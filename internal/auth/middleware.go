package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/repository"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User      domain.User
	SessionID string
}

// AuthMiddleware resolves the session token and loads the caller.
type AuthMiddleware struct {
	sessions   *SessionManager
	users      repository.UserRepository
	cookieName string
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(sessions *SessionManager, users repository.UserRepository, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, users: users, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// Optional loads the caller when a valid session exists and continues
// anonymously otherwise.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err == nil {
		c.Locals(principalKey, principal)
	} else if !apperrors.HasCode(err, apperrors.CodeUnauthenticated) {
		return err
	}
	return c.Next()
}

// Token extracts the session token from the cookie or a bearer header.
func (m *AuthMiddleware) Token(c *fiber.Ctx) string {
	if token := c.Cookies(m.cookieName); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*Principal, error) {
	session, err := m.sessions.Resolve(c.UserContext(), m.Token(c))
	if err != nil {
		return nil, err
	}
	user, err := m.users.GetByID(c.UserContext(), session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthenticated("user not found")
		}
		return nil, err
	}
	return &Principal{User: user.Public(), SessionID: session.ID}, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
