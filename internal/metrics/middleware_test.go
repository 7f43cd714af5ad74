package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/ping/:id", func(c *gin.Context) {
		c.String(http.StatusTeapot, "pong")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping/:id", "418"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping/:id", "418"))
	assert.Equal(t, before+1, after)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "unknown", normalizePath(""))
	assert.Equal(t, "/profile", normalizePath("/profile"))
}

func TestObserveListing(t *testing.T) {
	before := testutil.ToFloat64(listingRequestsTotal.WithLabelValues("search", "partial"))
	ObserveListing("search", "partial")
	assert.Equal(t, before+1, testutil.ToFloat64(listingRequestsTotal.WithLabelValues("search", "partial")))
}
