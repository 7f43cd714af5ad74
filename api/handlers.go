package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sketchy-app/sketchy/internal/analytics"
	"github.com/sketchy-app/sketchy/services"
)

// ActingUserHeader carries the ID of the signed-in user. It is set by the
// authentication layer in front of this service.
const ActingUserHeader = "X-User-ID"

const defaultPageSize = 12

// Dependencies are the collaborators the API handlers need.
type Dependencies struct {
	Store     services.Store
	Renderer  services.Renderer
	Previews  services.PreviewLister
	Analytics *analytics.Service
	Logger    *zap.Logger
	PageSize  int // suggested "load more" size embedded in full pages

	// WriteLimiter throttles form submissions per client; nil disables it.
	WriteLimiter *ClientLimiter
}

// API holds dependencies for API handlers.
type API struct {
	store     services.Store
	renderer  services.Renderer
	previews  services.PreviewLister
	analytics *analytics.Service
	logger    *zap.Logger
	pageSize  int
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Dependencies) *API {
	if deps.Analytics == nil {
		deps.Analytics = analytics.NewService()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.PageSize <= 0 {
		deps.PageSize = defaultPageSize
	}
	return &API{
		store:     deps.Store,
		renderer:  deps.Renderer,
		previews:  deps.Previews,
		analytics: deps.Analytics,
		logger:    deps.Logger,
		pageSize:  deps.PageSize,
	}
}

// SetupRoutes defines all the routes of the site.
func SetupRoutes(router *gin.Engine, deps Dependencies) *API {
	apiHandler := NewAPI(deps)

	router.Use(RequestIDMiddleware(apiHandler.logger))

	// Home page and search
	router.GET("/", apiHandler.IndexHandler)

	// Profile browser and profile updates
	router.GET("/profile", apiHandler.ProfileHandler)
	router.POST("/profile", writeLimit(deps.WriteLimiter), apiHandler.UpdateProfileHandler)

	// Sketches
	router.GET("/sketch", apiHandler.SketchHandler)
	router.POST("/sketch_create", writeLimit(deps.WriteLimiter), apiHandler.CreateSketchHandler)

	// Service endpoints
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return apiHandler
}

func writeLimit(l *ClientLimiter) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return RateLimitMiddleware(l)
}

// actingUserID returns the signed-in user's ID, if any.
func actingUserID(c *gin.Context) (int64, bool) {
	return ParseID(c.GetHeader(ActingUserHeader))
}

// renderPage writes a full HTML page.
func (api *API) renderPage(c *gin.Context, name string, data any) {
	html, err := api.renderer.RenderPage(name, data)
	if err != nil {
		SendRenderError(c, name, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// renderMessage renders a status message fragment, falling back to the plain description.
func (api *API) renderMessage(status int, description string) string {
	html, err := api.renderer.RenderFragment(services.FragmentMessage, services.Message{
		Status:      status,
		Description: description,
	})
	if err != nil {
		api.logger.Warn("failed to render message", zap.Error(err))
		return description
	}
	return html
}
