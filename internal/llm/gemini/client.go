// Package gemini streams completions from Google's Gemini models through
// google.golang.org/genai.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"jobx-backend/internal/llm"
	"jobx-backend/internal/shared/apperr"
)

// PlaceholderKey is the value shipped in sample env files; it counts as unset.
const PlaceholderKey = "your_gemini_api_key_here"

const (
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 120 * time.Second
)

// Config selects the backend and model.
type Config struct {
	APIKey   string
	Model    string
	Backend  string // "gemini" (API key) or "vertex"
	Project  string
	Location string
	Timeout  time.Duration
	BaseURL  string
}

// Client implements llm.Streamer.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Configured reports whether key is a usable Gemini API key.
func Configured(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderKey
}

// NewClient builds a Gemini client or a configuration error when credentials
// are missing.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cc := &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	}
	if strings.EqualFold(cfg.Backend, "vertex") {
		if strings.TrimSpace(cfg.Project) == "" {
			return nil, apperr.Configuration("gemini_not_configured", "GOOGLE_CLOUD_PROJECT is required for the Vertex AI backend")
		}
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	} else {
		if !Configured(cfg.APIKey) {
			return nil, llm.ErrNotConfigured
		}
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = strings.TrimSpace(cfg.APIKey)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cc.HTTPClient = &http.Client{Timeout: timeout}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, apperr.Configuration("gemini_not_configured", fmt.Sprintf("gemini client: %v", err)).WithErr(err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	return &Client{client: client, model: model, timeout: timeout}, nil
}

// Stream sends prompt as one user turn and yields the text of each streamed
// response chunk.
func (c *Client) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
		config := &genai.GenerateContentConfig{ResponseMIMEType: "text/plain"}
		for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, contents, config) {
			if err != nil {
				yield("", classify(ctx, err))
				return
			}
			if resp == nil {
				continue
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperr.Timeout("inference_timeout", "Gemini did not respond in time", err)
	}
	if status := apiStatus(err); status != 0 {
		return apperr.Upstream("inference_failed", "Gemini request failed", status, err)
	}
	return apperr.Upstream("inference_failed", "Gemini request failed", 0, err)
}

func apiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}
