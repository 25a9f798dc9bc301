package models

import "time"

// Blog is a published post. Author is the free-text display label set at
// creation time; OwnerID is the account that created the post and the
// only identity allowed to delete it.
type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"` // non-negative, only ever incremented
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
