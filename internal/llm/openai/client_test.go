package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jobx-backend/internal/llm"
	"jobx-backend/internal/shared/apperr"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestStreamFoldsDeltas(t *testing.T) {
	var bodyMu sync.Mutex
	var lastBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		bodyMu.Lock()
		lastBody = payload
		bodyMu.Unlock()

		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Job Profile: Backend Developer\n", "", "Experience: Fresher"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", part)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-5-mini", server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	reply, err := llm.Collect(client.Stream(context.Background(), "prompt"))
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if reply != "Job Profile: Backend Developer\nExperience: Fresher" {
		t.Fatalf("unexpected reply %q", reply)
	}

	bodyMu.Lock()
	defer bodyMu.Unlock()
	if _, hasTemp := lastBody["temperature"]; hasTemp {
		t.Fatalf("expected temperature to be omitted for gpt-5 models")
	}
	if lastBody["stream"] != true {
		t.Fatalf("expected stream=true in request")
	}
}

func TestStreamHTTPErrorIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-4o-mini", server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = llm.Collect(client.Stream(context.Background(), "prompt"))
	e, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected categorized error, got %v", err)
	}
	if e.Kind != apperr.KindUpstream || e.UpstreamStatus != http.StatusUnauthorized {
		t.Fatalf("unexpected error: %+v", e)
	}
}

func TestStreamTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient("test-key", "gpt-4o-mini", server.URL, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = llm.Collect(client.Stream(context.Background(), "prompt"))
	if apperr.KindOf(err) != apperr.KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "gpt-4o-mini", "", 0)
	if apperr.KindOf(err) != apperr.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
