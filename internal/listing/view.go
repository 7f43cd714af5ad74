package listing

import (
	"github.com/sketchy-app/sketchy/model"
	"github.com/sketchy-app/sketchy/services"
)

// View names one of the ordered collections of a profile.
type View string

const (
	ViewSketches  View = "sketches"
	ViewFollowers View = "followers"
	ViewFollows   View = "follows"
)

// DefaultView is used when a profile request carries no view parameter.
const DefaultView = ViewSketches

// Collection is the ordered item list of one profile view together with the
// fragment kind its items render with.
type Collection struct {
	View  View
	Kind  services.FragmentKind
	Items []any
}

// SelectView picks the collection named by view. It reports false for an empty
// or unknown name; callers treat that as a full-page request, not as an error.
// This is deliberately more permissive than search rule parsing, where an
// unknown rule fails the request.
func SelectView(profile *model.Profile, view string) (Collection, bool) {
	switch View(view) {
	case ViewSketches:
		items := make([]any, len(profile.Sketches))
		for i := range profile.Sketches {
			items[i] = profile.Sketches[i]
		}
		return Collection{View: ViewSketches, Kind: services.FragmentOwnSketch, Items: items}, true
	case ViewFollowers:
		return Collection{View: ViewFollowers, Kind: services.FragmentUser, Items: usersToItems(profile.Followers)}, true
	case ViewFollows:
		return Collection{View: ViewFollows, Kind: services.FragmentUser, Items: usersToItems(profile.Follows)}, true
	default:
		return Collection{}, false
	}
}

func usersToItems(users []model.User) []any {
	items := make([]any, len(users))
	for i := range users {
		items[i] = users[i]
	}
	return items
}
