package models

// User is a registered account. Records are immutable after sign-up;
// the only destructive path is the administrative reset.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never expose the hash
}
