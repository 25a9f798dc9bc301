package models

import "time"

// Session is a server-side record of an issued credential. The JWT handed
// to the client carries the session ID as its jti claim; deleting the row
// revokes the token before its expiry.
type Session struct {
	ID        string    `json:"id"` // uuid, doubles as the jti claim
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
