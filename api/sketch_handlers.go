package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sketchy-app/sketchy/model"
	"github.com/sketchy-app/sketchy/services"
)

const defaultCreateRedirect = "/profile"

// SketchHandler serves a sketch page. Without a sid it redirects to a random sketch.
func (api *API) SketchHandler(c *gin.Context) {
	raw, present := c.GetQuery("sid")
	if !present {
		id, err := api.store.RandomSketchID(c.Request.Context())
		if err != nil {
			sendStoreError(c, "pick random sketch", err)
			return
		}
		c.Redirect(http.StatusFound, "/sketch?sid="+strconv.FormatInt(id, 10))
		return
	}

	sid, ok := ParseID(raw)
	if !ok {
		SendSketchNotFoundError(c, raw)
		return
	}

	sketch, err := api.store.GetSketch(c.Request.Context(), sid)
	if err != nil {
		sendStoreError(c, "load sketch", err)
		return
	}

	api.renderPage(c, services.PageSketch, sketch)
}

// CreateSketchHandler stores a new sketch of the acting user and redirects to
// the referrer query parameter (form field as fallback), if it is a local path.
func (api *API) CreateSketchHandler(c *gin.Context) {
	authorID, ok := actingUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, authPath)
		return
	}

	name := c.PostForm("name")
	place := c.PostForm("place")
	if result := ValidateSketchForm(name, place); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	_, err := api.store.CreateSketch(c.Request.Context(), model.Sketch{
		Name:     name,
		Place:    place,
		Image:    uuid.NewString() + ".png",
		AuthorID: authorID,
	})
	if err != nil {
		sendStoreError(c, "create sketch", err)
		return
	}

	referrer, present := c.GetQuery("referrer")
	if !present {
		referrer = c.PostForm("referrer")
	}
	c.Redirect(http.StatusSeeOther, SafeRedirectTarget(referrer, defaultCreateRedirect))
}
