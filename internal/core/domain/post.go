package domain

import "time"

// Post is the central content aggregate. OwnerID is set at creation and never
// changes afterwards.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	Category    string    `json:"category"`
	Image       Image     `json:"image"`
	Likes       []string  `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LikedBy reports whether userID has liked the post. Likes holds each user id
// at most once.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
