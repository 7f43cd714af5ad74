package services

import (
	"context"

	"github.com/sketchy-app/sketchy/model"
)

// FragmentKind names a per-item template used by partial-data responses.
type FragmentKind string

const (
	FragmentSketch    FragmentKind = "sketch"     // sketch preview with its author
	FragmentOwnSketch FragmentKind = "own-sketch" // sketch preview on its author's profile
	FragmentUser      FragmentKind = "user"       // user preview
	FragmentMessage   FragmentKind = "message"    // status message for form responses
)

// Page names of full-page templates.
const (
	PageIndex   = "index"
	PageProfile = "profile"
	PageSketch  = "sketch"
)

// Message is the data rendered by FragmentMessage.
type Message struct {
	Status      int    `json:"status"`
	Description string `json:"description"`
}

// Renderer produces markup for full pages and item fragments.
type Renderer interface {
	RenderPage(name string, data any) (string, error)
	RenderFragment(kind FragmentKind, item any) (string, error)
}

// SketchReader defines read operations over sketches.
// Every call returns a fresh snapshot owned by the caller.
type SketchReader interface {
	ListSketches(ctx context.Context) ([]model.Sketch, error)
	GetSketch(ctx context.Context, id int64) (model.Sketch, error)
	RandomSketchID(ctx context.Context) (int64, error)
}

// ProfileReader defines read operations over users.
type ProfileReader interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByLogin(ctx context.Context, login string) (model.User, error)
	GetProfile(ctx context.Context, id int64) (*model.Profile, error)
}

// ProfileWriter defines the profile mutations exposed over HTTP.
type ProfileWriter interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
	CreateSketch(ctx context.Context, sketch model.Sketch) (model.Sketch, error)
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	// ApplyProfileChanges stores every part of changes or none of them.
	ApplyProfileChanges(ctx context.Context, changes model.ProfileChanges) error
}

// Store combines every persistence operation the API depends on.
type Store interface {
	SketchReader
	ProfileReader
	ProfileWriter
	Close() error
}

// PreviewLister lists the preview images shown on the home page.
type PreviewLister interface {
	Previews() ([]string, error)
}
