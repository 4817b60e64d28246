package models

// Session is a snapshot of "who is calling": the bearer token and the role it
// was issued for. An empty token means logged out, regardless of role.
type Session struct {
	Token string `json:"token,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// IsAuthenticated reports whether the session carries a token. The role is
// only meaningful when this is true.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Can reports whether the session's role grants the capability. Always false
// for unauthenticated sessions.
func (s Session) Can(c Capability) bool {
	if !s.IsAuthenticated() {
		return false
	}
	return Capabilities(s.Role)[c]
}

// HasRole reports whether the session is authenticated as one of the given
// roles. An empty list means any authenticated role passes.
func (s Session) HasRole(roles ...Role) bool {
	if !s.IsAuthenticated() {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func (s Session) IsCustomer() bool { return s.HasRole(RoleCustomer) }
func (s Session) IsOwner() bool    { return s.HasRole(RoleOwner) }
func (s Session) IsAdmin() bool    { return s.HasRole(RoleAdmin) }

// Clear resets the session to the logged-out state, dropping token and role
// together.
func (s *Session) Clear() {
	s.Token = ""
	s.Role = ""
}
