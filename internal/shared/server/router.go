package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobx-backend/internal/applies"
	"jobx-backend/internal/jobs"
	"jobx-backend/internal/resumes"
	"jobx-backend/internal/shared/config"
	"jobx-backend/internal/shared/metrics"
	"jobx-backend/internal/shared/server/middleware"
	"jobx-backend/internal/shared/server/respond"
	"jobx-backend/internal/shared/telemetry"
)

const (
	rateGroupUpload = "UPLOAD"
	rateGroupSearch = "SEARCH"
)

// RouterDeps holds the handlers mounted on the router.
type RouterDeps struct {
	Config        config.Config
	ResumeHandler *resumes.Handler
	JobsHandler   *jobs.Handler
	ApplyHandler  *applies.Handler
	RateLimiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		telemetry.Warn("server.trusted_proxies_invalid", map[string]any{"error": err})
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Session(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": "JobX Backend API is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := &r.RouterGroup
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.JobsHandler != nil {
		deps.JobsHandler.RegisterRoutes(api)
	}
	if deps.ApplyHandler != nil {
		deps.ApplyHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if n := deps.Config.UploadRatePerMin; n > 0 {
		rules[rateGroupUpload] = middleware.PerMinute(n)
	}
	if n := deps.Config.SearchRatePerMin; n > 0 {
		rules[rateGroupSearch] = middleware.PerMinute(n)
	}
	return middleware.RateLimitConfig{
		Rules:    rules,
		GroupFor: rateGroupFor,
		Limiter:  deps.RateLimiter,
	}
}

// rateGroupFor limits the routes that reach paid or slow upstreams.
func rateGroupFor(c *gin.Context) string {
	switch c.FullPath() {
	case "/upload-resume":
		return rateGroupUpload
	case "/apply-job", "/get-jobs", "/linkedin-search":
		return rateGroupSearch
	default:
		return ""
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
