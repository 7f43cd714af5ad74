package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sketchy-app/sketchy/internal/listing"
	"github.com/sketchy-app/sketchy/internal/logger"
	"github.com/sketchy-app/sketchy/internal/metrics"
	"github.com/sketchy-app/sketchy/internal/search"
	"github.com/sketchy-app/sketchy/model"
	"github.com/sketchy-app/sketchy/services"
)

// indexPage is the template data of the home page.
type indexPage struct {
	Previews []string
	Rules    []search.Rule
	PageSize int
}

// IndexHandler serves the home page, or a page of search results when the
// request carries both rule and query.
func (api *API) IndexHandler(c *gin.Context) {
	mode := listing.DetectMode(c.Request.URL.Query(), "rule", "query")
	metrics.ObserveListing("index", mode.String())

	if mode == listing.ModeFullPage {
		api.renderIndexPage(c)
		return
	}

	ruleName := c.Query("rule")
	rule, err := search.ParseRule(ruleName)
	if err != nil {
		SendUnknownRuleError(c, ruleName)
		return
	}

	start := time.Now()
	query := c.Query("query")

	// One snapshot per request; ranking never re-reads the store.
	sketches, err := api.store.ListSketches(c.Request.Context())
	if err != nil {
		SendInternalError(c, "list sketches", err)
		return
	}

	ranked, err := search.NewRankContext(query).Rank(sketches, rule)
	if err != nil {
		SendUnknownRuleError(c, ruleName)
		return
	}
	metrics.ObserveSearch(len(sketches), len(ranked))

	envelope, err := listing.Page(ranked, intQuery(c, "offset"), intQuery(c, "limit"),
		func(s search.ScoredSketch) (string, error) {
			return api.renderer.RenderFragment(services.FragmentSketch, s.Sketch)
		})
	if err != nil {
		SendRenderError(c, string(services.FragmentSketch), err)
		return
	}

	api.analytics.TrackSearchEvent(model.SearchEvent{
		Rule:         string(rule),
		Query:        query,
		ResponseTime: time.Since(start),
		ResultCount:  len(ranked),
		Timestamp:    start,
	})

	c.JSON(http.StatusOK, envelope)
}

func (api *API) renderIndexPage(c *gin.Context) {
	var previews []string
	if api.previews != nil {
		var err error
		previews, err = api.previews.Previews()
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn("failed to list previews", zap.Error(err))
		}
	}

	api.renderPage(c, services.PageIndex, indexPage{
		Previews: previews,
		Rules:    search.Rules(),
		PageSize: api.pageSize,
	})
}
