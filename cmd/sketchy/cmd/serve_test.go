package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchy-app/sketchy/api"
	"github.com/sketchy-app/sketchy/config"
	"github.com/sketchy-app/sketchy/internal/previews"
	"github.com/sketchy-app/sketchy/internal/render"
	testutil "github.com/sketchy-app/sketchy/internal/testing"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mediaDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "preview-sketch-1.jpg"), []byte("jpg"), 0o600))

	settings := config.Default()
	settings.Media.Dir = mediaDir

	router := newRouter(settings, api.Dependencies{
		Store:    testutil.CreateTestStore(t),
		Renderer: render.MustNew(),
		Previews: previews.NewLister(mediaDir, settings.Media.URLPrefix,
			settings.Media.PreviewPrefix, settings.PreviewCacheTTL()),
	})

	t.Run("home page lists previews", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/static/img/preview-sketch-1.jpg")
	})

	t.Run("media is served", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/img/preview-sketch-1.jpg", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jpg", w.Body.String())
	})

	t.Run("every route carries a request id", func(t *testing.T) {
		for _, target := range []string{"/static/img/preview-sketch-1.jpg", "/health", "/missing"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

			assert.NotEmpty(t, w.Header().Get("X-Request-ID"), target)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/profile", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), api.ActingUserHeader)
	})
}
