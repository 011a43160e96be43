package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobx-backend/internal/llm"
	"jobx-backend/internal/shared/apperr"
)

func TestConfigured(t *testing.T) {
	assert.False(t, Configured(""))
	assert.False(t, Configured("  "))
	assert.False(t, Configured(PlaceholderKey))
	assert.True(t, Configured("AIza-real"))
}

func TestNewClientWithoutKeyIsConfigurationError(t *testing.T) {
	_, err := NewClient(context.Background(), Config{APIKey: PlaceholderKey})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	_, err = NewClient(context.Background(), Config{Backend: "vertex"})
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
}

func TestStreamYieldsChunkText(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Job Profile: Data Scientist\n", "Experience: Experienced\n", "Location: Austin"} {
			fmt.Fprintf(w, "data: {\"candidates\":[{\"content\":{\"role\":\"model\",\"parts\":[{\"text\":%q}]}}]}\n\n", part)
		}
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	reply, err := llm.Collect(client.Stream(context.Background(), "prompt"))
	require.NoError(t, err)
	assert.Equal(t, "Job Profile: Data Scientist\nExperience: Experienced\nLocation: Austin", reply)
	assert.True(t, strings.Contains(gotPath, "gemini-2.0-flash:streamGenerateContent"), "unexpected path %s", gotPath)
}

func TestStreamMapsAPIErrorToUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), Config{APIKey: "bad-key", BaseURL: server.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	_, err = llm.Collect(client.Stream(context.Background(), "prompt"))
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindUpstream, e.Kind)
	assert.Equal(t, "inference_failed", e.Code)
	assert.Equal(t, 400, e.UpstreamStatus)
}
