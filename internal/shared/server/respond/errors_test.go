package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobx-backend/internal/shared/apperr"
)

func TestFromErrorMapsCategories(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: apperr.Validation("job_url_required", "Job URL is required"), wantStatus: http.StatusBadRequest, wantCode: "job_url_required"},
		{name: "extraction", err: apperr.Extraction("pdf_renderer_missing", "renderer missing", "install poppler-utils"), wantStatus: http.StatusBadRequest, wantCode: "pdf_renderer_missing"},
		{name: "configuration", err: apperr.Configuration("gemini_not_configured", "Gemini AI not configured"), wantStatus: http.StatusInternalServerError, wantCode: "gemini_not_configured"},
		{name: "upstream wrapped", err: fmt.Errorf("search: %w", apperr.Upstream("search_api_error", "failed", 503, nil)), wantStatus: http.StatusBadGateway, wantCode: "search_api_error"},
		{name: "timeout", err: apperr.Timeout("search_timeout", "timed out", nil), wantStatus: http.StatusGatewayTimeout, wantCode: "search_timeout"},
		{name: "plain", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { FromError(c, tt.err) })
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

			if resp.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.Code)
			}
			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, body.Error.Code)
			}
		})
	}
}

func TestFromErrorIncludesHintAndUpstreamStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		FromError(c, apperr.Upstream("search_api_error", "Job search API error", 429, nil))
	})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body struct {
		Error struct {
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Details["upstream_status"] != float64(429) {
		t.Fatalf("expected upstream_status 429, got %v", body.Error.Details["upstream_status"])
	}
}
