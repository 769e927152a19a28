package models

import "time"

// Session is a refresh-token session bound to the client fingerprint it
// was created from. Access tokens carry the session ID as their subject.
type Session struct {
	ID           string
	UserID       string
	Fingerprint  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
