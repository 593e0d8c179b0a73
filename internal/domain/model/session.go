package model

import "time"

// Session is the authenticated state handed to clients: a short-lived JWT
// access token plus an opaque refresh token stored server-side in Redis.
type Session struct {
	UserID       string    `json:"user_id"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ExpiresWithin reports whether the access token expires inside the window.
func (s *Session) ExpiresWithin(window time.Duration, now time.Time) bool {
	return s.ExpiresAt.Sub(now) < window
}
