package domain

// Role enumerates the actors the portal recognizes. Route access is gated on
// the role carried by the current session.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one the portal knows.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Session is the credential + role pair representing the current actor. It
// lives from login to logout or expiry, never longer than the backend token.
type Session struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Role  Role   `json:"role"`
}
