package model

import "time"

// Sketch is a single uploaded drawing. Author is populated by the store on every read.
type Sketch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Place     string    `json:"place"`
	Image     string    `json:"image"`
	AuthorID  int64     `json:"author_id"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
