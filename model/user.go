package model

import "time"

// DefaultUserImage is the avatar assigned to users that never uploaded one.
const DefaultUserImage = "default-avatar.png"

// User holds the public display fields of an account.
// Credentials are owned by the authentication layer and never loaded here.
type User struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile is a user together with its ordered collections, read once per request.
type Profile struct {
	User      User     `json:"user"`
	Sketches  []Sketch `json:"sketches"`
	Followers []User   `json:"followers"`
	Follows   []User   `json:"follows"`
}

// HasFollower reports whether the user with the given ID follows this profile.
func (p *Profile) HasFollower(userID int64) bool {
	for _, f := range p.Followers {
		if f.ID == userID {
			return true
		}
	}
	return false
}

// FollowChange adds or removes one follow edge.
type FollowChange struct {
	FollowerID int64
	FolloweeID int64
	Follow     bool // false removes the edge
}

// ProfileChanges groups the writes of one profile update. Nil parts are left untouched.
type ProfileChanges struct {
	User   *User
	Follow *FollowChange
}
