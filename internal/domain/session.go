package domain

// Session identifies the user a core operation acts on behalf of.
// The zero value is the anonymous session: reads return defaults and
// mutations are no-ops, so nothing ever leaks into global storage.
type Session struct {
	Username string `json:"username"`
}

// NewSession creates a session for the given username.
func NewSession(username string) Session {
	return Session{Username: username}
}

// Anonymous reports whether no user is signed in.
func (s Session) Anonymous() bool {
	return s.Username == ""
}
