package domain

// Session is the client-side authentication state.
// Token present <=> authenticated; User is only meaningful when Token is set.
type Session struct {
	Token string
	User  *User
}

// Authenticated reports whether the session holds a bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
