package types

// Session is the authenticated client state: which backend, the bearer
// token for it, and the projects the user is working on.
type Session struct {
	ServerURL      string           `json:"server_url"`
	Token          string           `json:"token"`
	User           User             `json:"user"`
	ActiveProjects []ProjectSummary `json:"active_projects,omitempty"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool { return s.Token != "" }
