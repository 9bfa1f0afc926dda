package domain

// Role determines transition and visibility rights.
type Role string

const (
	RoleRequester Role = "requester"
	RoleApprover  Role = "approver"
	RoleHandler   Role = "handler"
	RoleAdmin     Role = "admin"
)

// Roles lists every known role.
var Roles = []Role{RoleRequester, RoleApprover, RoleHandler, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleRequester, RoleApprover, RoleHandler, RoleAdmin:
		return true
	}
	return false
}

// User is a seeded account. Password holds either a bcrypt hash or, for
// legacy data files, the plaintext secret.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Public returns a copy without the password.
func (u User) Public() User {
	u.Password = ""
	return u
}
