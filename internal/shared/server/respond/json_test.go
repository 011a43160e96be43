package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResponsesAreNotCached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { OK(c, gin.H{"ok": true}) })
	r.GET("/fail", func(c *gin.Context) { Error(c, http.StatusBadRequest, "validation_error", "bad", nil) })

	for _, path := range []string{"/ok", "/fail"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if got := resp.Header().Get("Cache-Control"); got != "no-store" {
			t.Fatalf("%s: expected Cache-Control no-store, got %q", path, got)
		}
	}
}
