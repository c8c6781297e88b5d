package domain

import "time"

// Category is an independent label. Posts reference categories by title, not
// by id, so deleting a category leaves posts untouched.
type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}
