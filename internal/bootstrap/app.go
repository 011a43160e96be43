// Package bootstrap wires configuration into services, handlers and the
// router.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"jobx-backend/internal/applies"
	"jobx-backend/internal/browser"
	"jobx-backend/internal/extract"
	"jobx-backend/internal/jobs"
	"jobx-backend/internal/jobsearch"
	"jobx-backend/internal/llm"
	"jobx-backend/internal/llm/gemini"
	"jobx-backend/internal/llm/openai"
	"jobx-backend/internal/profile"
	"jobx-backend/internal/resumes"
	"jobx-backend/internal/shared/config"
	"jobx-backend/internal/shared/server"
	"jobx-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine

	Resumes   resumes.Store
	Extractor resumes.Extractor
	LLM       llm.Streamer
	Rules     *profile.Rules
	Searcher  jobs.Searcher
	Opener    browser.Opener

	ResumeService *resumes.Service
	JobsService   *jobs.Service
	ApplyService  *applies.Service

	ResumeHandler *resumes.Handler
	JobsHandler   *jobs.Handler
	ApplyHandler  *applies.Handler
}

// Option overrides a collaborator, mostly for tests.
type Option func(*App)

func WithExtractor(e resumes.Extractor) Option { return func(a *App) { a.Extractor = e } }
func WithLLM(s llm.Streamer) Option            { return func(a *App) { a.LLM = s } }
func WithSearcher(s jobs.Searcher) Option      { return func(a *App) { a.Searcher = s } }
func WithOpener(o browser.Opener) Option       { return func(a *App) { a.Opener = o } }
func WithStore(s resumes.Store) Option         { return func(a *App) { a.Resumes = s } }

// Build prepares every dependency and the router.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}
	for _, opt := range opts {
		opt(app)
	}

	rules, err := buildRules(cfg)
	if err != nil {
		return nil, err
	}
	app.Rules = rules

	if app.Resumes == nil {
		app.Resumes = resumes.NewMemoryStore(cfg.ResumeMaxSessions, cfg.ResumeMaxBytes)
	}
	if app.Extractor == nil {
		app.Extractor = extract.New(extract.Options{
			PdftoppmPath:  cfg.PdftoppmPath,
			TesseractPath: cfg.TesseractPath,
			Lang:          cfg.OCRLang,
			OCRTimeout:    cfg.OCRTimeout,
		})
	}
	if app.LLM == nil {
		streamer, err := buildLLM(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.LLM = streamer
	}
	if app.Searcher == nil {
		app.Searcher = jobsearch.NewClient(jobsearch.Config{
			APIKey:     cfg.JSearchAPIKey,
			BaseURL:    cfg.JSearchBaseURL,
			Host:       cfg.JSearchHost,
			Country:    cfg.JSearchCountry,
			Timeout:    cfg.SearchTimeout,
			RatePerSec: cfg.JSearchRate,
			Burst:      cfg.JSearchBurst,
		})
	}
	if app.Opener == nil {
		opener, err := browser.New(browser.Options{
			Mode:       cfg.BrowserMode,
			ChromePath: cfg.ChromePath,
			Timeout:    cfg.BrowserTimeout,
		})
		if err != nil {
			return nil, err
		}
		app.Opener = opener
	}

	app.ResumeService = &resumes.Service{
		Store:     app.Resumes,
		Extractor: app.Extractor,
		Inferrer:  profile.NewInferrer(app.LLM, app.Rules),
	}
	app.JobsService = &jobs.Service{
		Resumes:         app.Resumes,
		Search:          app.Searcher,
		NumPages:        cfg.SearchPages,
		DefaultLocation: cfg.DefaultSearchLocation,
	}
	app.ApplyService = &applies.Service{Resumes: app.Resumes, Opener: app.Opener}

	app.ResumeHandler = resumes.NewHandler(app.ResumeService, cfg.MaxUploadBytes)
	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.ApplyHandler = applies.NewHandler(app.ApplyService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		ResumeHandler: app.ResumeHandler,
		JobsHandler:   app.JobsHandler,
		ApplyHandler:  app.ApplyHandler,
	})
	return app, nil
}

// Close releases the browser.
func (a *App) Close() error {
	if a == nil || a.Opener == nil {
		return nil
	}
	return a.Opener.Close()
}

func buildRules(cfg config.Config) (*profile.Rules, error) {
	if strings.TrimSpace(cfg.ProfileRulesFile) == "" {
		return profile.DefaultRules(), nil
	}
	rules, err := profile.LoadRules(cfg.ProfileRulesFile)
	if err != nil {
		return nil, fmt.Errorf("load profile rules: %w", err)
	}
	return rules, nil
}

// buildLLM picks the configured provider. Missing credentials do not stop
// startup; uploads then fail with the configuration error.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Streamer, error) {
	switch cfg.LLMProvider {
	case "", "gemini":
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:   cfg.GeminiAPIKey,
			Model:    cfg.GeminiModel,
			Backend:  cfg.GeminiBackend,
			Project:  cfg.GoogleCloudProject,
			Location: cfg.GoogleCloudLocation,
			Timeout:  cfg.LLMTimeout,
		})
		if err != nil {
			return placeholder("gemini", err), nil
		}
		return client, nil
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout)
		if err != nil {
			return placeholder("openai", err), nil
		}
		return client, nil
	case "none":
		return llm.PlaceholderClient{Err: llm.ErrNotConfigured}, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func placeholder(provider string, err error) llm.Streamer {
	telemetry.Warn("llm.not_configured", map[string]any{"provider": provider, "error": err})
	return llm.PlaceholderClient{Err: err}
}
