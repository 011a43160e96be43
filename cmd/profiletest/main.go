// Command profiletest runs extraction and profile inference on one resume
// and prints the result as JSON. With -search it also runs a job search.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"jobx-backend/internal/extract"
	"jobx-backend/internal/jobsearch"
	"jobx-backend/internal/llm"
	"jobx-backend/internal/llm/gemini"
	"jobx-backend/internal/llm/openai"
	"jobx-backend/internal/profile"
	"jobx-backend/internal/shared/config"
)

type output struct {
	ExtractMethod string              `json:"extract_method"`
	TextLength    int                 `json:"text_length"`
	Profile       profile.Profile     `json:"profile"`
	Jobs          []jobsearch.Posting `json:"jobs,omitempty"`
}

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume PDF")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider (gemini, openai, none)")
	model := flag.String("model", "", "LLM model override")
	search := flag.Bool("search", false, "Run a job search with the inferred profile")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}
	pdf, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}

	ctx := context.Background()
	extracted, err := extract.New(extract.Options{
		PdftoppmPath:  cfg.PdftoppmPath,
		TesseractPath: cfg.TesseractPath,
		Lang:          cfg.OCRLang,
		OCRTimeout:    cfg.OCRTimeout,
	}).ExtractResult(ctx, pdf)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}

	streamer, err := buildStreamer(ctx, cfg, *provider, *model)
	if err != nil {
		exitErr(err.Error())
	}
	rules := profile.DefaultRules()
	if cfg.ProfileRulesFile != "" {
		if rules, err = profile.LoadRules(cfg.ProfileRulesFile); err != nil {
			exitErr(fmt.Sprintf("load rules: %v", err))
		}
	}
	p, err := profile.NewInferrer(streamer, rules).Infer(ctx, extracted.Text)
	if err != nil {
		exitErr(fmt.Sprintf("infer profile: %v", err))
	}

	out := output{ExtractMethod: extracted.Method, TextLength: len(extracted.Text), Profile: p}
	if *search {
		client := jobsearch.NewClient(jobsearch.Config{
			APIKey:  cfg.JSearchAPIKey,
			BaseURL: cfg.JSearchBaseURL,
			Host:    cfg.JSearchHost,
			Country: cfg.JSearchCountry,
			Timeout: cfg.SearchTimeout,
		})
		criteria := jobsearch.Criteria{Role: p.Role, Experience: p.Experience, Location: p.Location}
		if out.Jobs, err = client.Search(ctx, criteria, cfg.SearchPages); err != nil {
			exitErr(fmt.Sprintf("search: %v", err))
		}
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}
	pretty = append(pretty, '\n')

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
}

func buildStreamer(ctx context.Context, cfg config.Config, provider, model string) (llm.Streamer, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "gemini":
		if model == "" {
			model = cfg.GeminiModel
		}
		return gemini.NewClient(ctx, gemini.Config{
			APIKey:   cfg.GeminiAPIKey,
			Model:    model,
			Backend:  cfg.GeminiBackend,
			Project:  cfg.GoogleCloudProject,
			Location: cfg.GoogleCloudLocation,
			Timeout:  cfg.LLMTimeout,
		})
	case "openai":
		if model == "" {
			model = cfg.OpenAIModel
		}
		return openai.NewClient(cfg.OpenAIAPIKey, model, cfg.OpenAIBaseURL, cfg.LLMTimeout)
	case "none":
		// Offline mode: the rules tables alone decide every field.
		return llm.Fragments{""}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
