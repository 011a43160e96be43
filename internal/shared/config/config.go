package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	// TrustedProxies lists proxy CIDRs allowed to set X-Forwarded-For.
	// Empty means the peer address is the client address.
	TrustedProxies  []string
	MaxUploadBytes  int64

	LLMProvider         string
	LLMTimeout          time.Duration
	GeminiAPIKey        string
	GeminiModel         string
	GeminiBackend       string
	GoogleCloudProject  string
	GoogleCloudLocation string
	OpenAIAPIKey        string
	OpenAIModel         string
	OpenAIBaseURL       string

	PdftoppmPath  string
	TesseractPath string
	OCRLang       string
	OCRTimeout    time.Duration

	JSearchAPIKey  string
	JSearchBaseURL string
	JSearchHost    string
	JSearchCountry string
	JSearchRate    float64
	JSearchBurst   int
	SearchTimeout  time.Duration
	SearchPages    int
	// DefaultSearchLocation is used only when a search has no explicit
	// location and no stored resume. Empty disables the fallback.
	DefaultSearchLocation string

	ProfileRulesFile string

	BrowserMode    string
	ChromePath     string
	BrowserTimeout time.Duration

	UploadRatePerMin int
	SearchRatePerMin int

	ResumeMaxSessions int
	ResumeMaxBytes    int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	cfg := Config{
		Port:            getEnv("PORT", "8000"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")),
		TrustedProxies:  splitAndTrim(getEnv("TRUSTED_PROXIES", "")),
		MaxUploadBytes:  int64(getInt("MAX_UPLOAD_BYTES", 10<<20)),

		LLMProvider:         normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMTimeout:          getSeconds("LLM_TIMEOUT_SECONDS", 120),
		GeminiAPIKey:        strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBackend:       strings.ToLower(getEnv("GEMINI_BACKEND", "gemini")),
		GoogleCloudProject:  getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation: getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
		OpenAIAPIKey:        strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:         getEnv("OPENAI_MODEL", getEnv("LLM_MODEL", "gpt-4o-mini")),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		PdftoppmPath:  getEnv("PDFTOPPM_PATH", ""),
		TesseractPath: getEnv("TESSERACT_PATH", ""),
		OCRLang:       getEnv("OCR_LANG", "eng"),
		OCRTimeout:    getSeconds("OCR_TIMEOUT_SECONDS", 120),

		JSearchAPIKey:         strings.TrimSpace(os.Getenv("JSEARCH_API_KEY")),
		JSearchBaseURL:        getEnv("JSEARCH_BASE_URL", "https://jsearch.p.rapidapi.com/search"),
		JSearchHost:           getEnv("JSEARCH_HOST", "jsearch.p.rapidapi.com"),
		JSearchCountry:        getEnv("JSEARCH_COUNTRY", "us"),
		JSearchRate:           getFloat("JSEARCH_RATE_PER_SEC", 2),
		JSearchBurst:          getInt("JSEARCH_BURST", 2),
		SearchTimeout:         getSeconds("SEARCH_TIMEOUT_SECONDS", 30),
		SearchPages:           getInt("JSEARCH_NUM_PAGES", 1),
		DefaultSearchLocation: strings.TrimSpace(os.Getenv("SEARCH_DEFAULT_LOCATION")),

		ProfileRulesFile: getEnv("PROFILE_RULES_FILE", ""),

		BrowserMode:    normalizeBrowserMode(getEnv("BROWSER_MODE", "system")),
		ChromePath:     getEnv("CHROME_PATH", ""),
		BrowserTimeout: getSeconds("BROWSER_TIMEOUT_SECONDS", 30),

		UploadRatePerMin: getInt("RATE_LIMIT_UPLOAD_PER_MIN", 10),
		SearchRatePerMin: getInt("RATE_LIMIT_SEARCH_PER_MIN", 30),

		ResumeMaxSessions: getInt("RESUME_MAX_SESSIONS", 500),
		ResumeMaxBytes:    int64(getInt("RESUME_STORE_MAX_BYTES", 256<<20)),
	}

	if env == "production" && cfg.JSearchAPIKey == "" {
		log.Printf("JSEARCH_API_KEY is not set; job search requests will fail")
	}
	return cfg
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		log.Printf("config: ignoring invalid %s=%q", key, raw)
		return def
	}
	return parsed
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		log.Printf("config: ignoring invalid %s=%q", key, raw)
		return def
	}
	return parsed
}

func getSeconds(key string, def int) time.Duration {
	secs := getInt(key, def)
	if secs <= 0 {
		secs = def
	}
	return time.Duration(secs) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none", "off":
		return "none"
	default:
		return "gemini"
	}
}

func normalizeBrowserMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "chromedp", "chrome":
		return "chromedp"
	case "none", "off", "disabled":
		return "none"
	default:
		return "system"
	}
}
