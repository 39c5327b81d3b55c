package models

// SessionRequest is the body of POST /api/session. A client presenting the
// backend's bootstrap secret obtains a session token scoped to Space.
type SessionRequest struct {
	Space  string `json:"space"`
	Secret string `json:"secret"`
}

// SessionResponse carries the issued session token and its lifetime in
// seconds.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}
