package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "LLM_PROVIDER", "JSEARCH_API_KEY", "SEARCH_DEFAULT_LOCATION", "BROWSER_MODE", "OCR_TIMEOUT_SECONDS", "TRUSTED_PROXIES", "RESUME_MAX_SESSIONS", "RESUME_STORE_MAX_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "", cfg.JSearchAPIKey)
	assert.Equal(t, "", cfg.DefaultSearchLocation)
	assert.Equal(t, "system", cfg.BrowserMode)
	assert.Equal(t, 120*time.Second, cfg.OCRTimeout)
	assert.Equal(t, 30*time.Second, cfg.SearchTimeout)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Contains(t, cfg.CORSAllowOrigin, "http://localhost:5173")
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 500, cfg.ResumeMaxSessions)
	assert.Equal(t, int64(256<<20), cfg.ResumeMaxBytes)
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := "JSEARCH_API_KEY=from-file\nPORT=9999\nBROWSER_MODE=chromedp\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Setenv("PORT", "7000")
	t.Setenv("JSEARCH_API_KEY", "")
	t.Setenv("BROWSER_MODE", "")
	// godotenv only fills unset variables, so clear the two it should load.
	require.NoError(t, os.Unsetenv("JSEARCH_API_KEY"))
	require.NoError(t, os.Unsetenv("BROWSER_MODE"))

	cfg := Load()
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "from-file", cfg.JSearchAPIKey)
	assert.Equal(t, "chromedp", cfg.BrowserMode)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEARCH_TIMEOUT_SECONDS", "abc")
	t.Setenv("JSEARCH_RATE_PER_SEC", "-1")
	t.Setenv("LLM_PROVIDER", "OpenAI")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 2.0, cfg.JSearchRate)
	assert.Equal(t, "openai", cfg.LLMProvider)
}
