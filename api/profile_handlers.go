package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/sketchy-app/sketchy/internal/errors"
	"github.com/sketchy-app/sketchy/internal/listing"
	"github.com/sketchy-app/sketchy/internal/metrics"
	"github.com/sketchy-app/sketchy/model"
	"github.com/sketchy-app/sketchy/services"
)

const (
	authPath = "/auth"

	profileSavedMessage    = "Profile changes saved"
	profileRejectedMessage = "Profile changes were not saved"
)

// profilePage is the template data of the profile page.
type profilePage struct {
	User         model.User
	Sketches     []model.Sketch
	Followers    []model.User
	Follows      []model.User
	SketchesNum  int
	FollowersNum int
	FollowsNum   int
	PageSize     int
}

// UserData is the part of the stored profile echoed back after an update.
type UserData struct {
	Avatar string `json:"avatar"`
}

// ProfileUpdateResponse is the body of a successful profile update.
type ProfileUpdateResponse struct {
	Status   int      `json:"status"`
	UserData UserData `json:"user_data"`
	Rendered string   `json:"rendered"`
}

// ProfileErrorResponse is the body of a rejected profile update.
type ProfileErrorResponse struct {
	Status   int               `json:"status"`
	Errors   map[string]string `json:"errors"`
	Rendered string            `json:"rendered"`
}

// FollowToggle interprets the followers form state, which tells whether the
// client believed it was already following. "false" asks to follow, "true" to
// unfollow. A state that does not match the stored edge fails with ErrFollowSync.
func FollowToggle(state string, following bool) (follow bool, err error) {
	switch {
	case state == "false" && !following:
		return true, nil
	case state == "true" && following:
		return false, nil
	default:
		return false, fmt.Errorf("followers state %q with following=%t: %w",
			state, following, internalErrors.ErrFollowSync)
	}
}

// profileTarget resolves the profile a request is about: the uid parameter
// when present, the acting user otherwise. redirect is true when neither exists.
func profileTarget(c *gin.Context) (id int64, redirect bool, ok bool) {
	if raw, present := c.GetQuery("uid"); present {
		id, ok = ParseID(raw)
		return id, false, ok
	}
	if id, ok = actingUserID(c); ok {
		return id, false, true
	}
	return 0, true, false
}

// ProfileHandler serves a profile page, or a window of one of its collections
// when the request carries limit and offset and names a known view.
func (api *API) ProfileHandler(c *gin.Context) {
	uid, redirect, ok := profileTarget(c)
	if redirect {
		c.Redirect(http.StatusFound, authPath)
		return
	}
	if !ok {
		SendUserNotFoundError(c, c.Query("uid"))
		return
	}

	profile, err := api.store.GetProfile(c.Request.Context(), uid)
	if err != nil {
		sendStoreError(c, "load profile", err)
		return
	}

	mode := listing.DetectMode(c.Request.URL.Query(), "limit", "offset")
	collection, found := listing.SelectView(profile, c.DefaultQuery("view", string(listing.DefaultView)))
	if mode == listing.ModeFullPage || !found {
		metrics.ObserveListing("profile", listing.ModeFullPage.String())
		api.renderPage(c, services.PageProfile, profilePage{
			User:         profile.User,
			Sketches:     profile.Sketches,
			Followers:    profile.Followers,
			Follows:      profile.Follows,
			SketchesNum:  len(profile.Sketches),
			FollowersNum: len(profile.Followers),
			FollowsNum:   len(profile.Follows),
			PageSize:     api.pageSize,
		})
		return
	}

	metrics.ObserveListing("profile", mode.String())
	envelope, err := listing.Page(collection.Items, intQuery(c, "offset"), intQuery(c, "limit"),
		func(item any) (string, error) {
			return api.renderer.RenderFragment(collection.Kind, item)
		})
	if err != nil {
		SendRenderError(c, string(collection.Kind), err)
		return
	}
	c.JSON(http.StatusOK, envelope)
}

// UpdateProfileHandler applies profile edits and follow toggles.
// Every field is validated before anything is written, and all writes are
// stored together.
func (api *API) UpdateProfileHandler(c *gin.Context) {
	uid, redirect, ok := profileTarget(c)
	if redirect {
		c.Redirect(http.StatusFound, authPath)
		return
	}
	if !ok {
		SendUserNotFoundError(c, c.Query("uid"))
		return
	}

	ctx := c.Request.Context()
	profile, err := api.store.GetProfile(ctx, uid)
	if err != nil {
		sendStoreError(c, "load profile", err)
		return
	}

	actingID, signedIn := actingUserID(c)
	isOwner := signedIn && actingID == uid
	fieldErrors := make(map[string]string)

	user := profile.User
	edited := false
	if username, present := c.GetPostForm("username"); present {
		if !isOwner {
			fieldErrors["username"] = "You can only edit your own profile"
		} else if msg := ValidateUsername(username); msg != "" {
			fieldErrors["username"] = msg
		} else {
			user.Username = username
			edited = true
		}
	}
	if description, present := c.GetPostForm("description"); present {
		if !isOwner {
			fieldErrors["description"] = "You can only edit your own profile"
		} else if msg := ValidateDescription(description); msg != "" {
			fieldErrors["description"] = msg
		} else {
			user.Description = description
			edited = true
		}
	}

	var changes model.ProfileChanges
	if edited {
		changes.User = &user
	}
	if state, present := c.GetPostForm("followers"); present {
		switch {
		case !signedIn:
			fieldErrors["followers"] = "Sign in to follow users"
		case isOwner:
			fieldErrors["followers"] = "You cannot follow yourself"
		default:
			follow, err := FollowToggle(state, profile.HasFollower(actingID))
			if err != nil {
				fieldErrors["followers"] = "Follow state is out of date, reload the page"
			} else {
				changes.Follow = &model.FollowChange{FollowerID: actingID, FolloweeID: uid, Follow: follow}
			}
		}
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, ProfileErrorResponse{
			Status:   http.StatusBadRequest,
			Errors:   fieldErrors,
			Rendered: api.renderMessage(http.StatusBadRequest, profileRejectedMessage),
		})
		return
	}

	if err := api.store.ApplyProfileChanges(ctx, changes); err != nil {
		sendStoreError(c, "update profile", err)
		return
	}

	c.JSON(http.StatusOK, ProfileUpdateResponse{
		Status:   http.StatusOK,
		UserData: UserData{Avatar: user.Image},
		Rendered: api.renderMessage(http.StatusOK, profileSavedMessage),
	})
}
