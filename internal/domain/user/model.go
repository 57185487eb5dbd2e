package user

// Role names the privileges carried by an access token.
type Role string

const RoleAdmin Role = "admin"

// Principal is the authenticated caller of a protected route.
type Principal struct {
	Subject string
	Role    Role
	Issuer  string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
