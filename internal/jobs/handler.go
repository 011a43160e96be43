package jobs

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobx-backend/internal/jobsearch"
	"jobx-backend/internal/shared/server/middleware"
	"jobx-backend/internal/shared/server/respond"
)

const maxJobsCap = 100

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/apply-job", h.searchByCriteria)
	rg.GET("/get-jobs", h.getJobs)
}

type searchRequest struct {
	Role       string `json:"job_profile"`
	Experience string `json:"experience"`
	Location   string `json:"location"`
}

func (h *Handler) searchByCriteria(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.SearchByCriteria(c.Request.Context(), middleware.SessionIDFromContext(c), jobsearch.Criteria{
		Role:       req.Role,
		Experience: req.Experience,
		Location:   req.Location,
	})
	if err != nil {
		respond.FromError(c, err)
		return
	}
	c.Set("jobCount", res.Total)
	respond.OK(c, res)
}

func (h *Handler) getJobs(c *gin.Context) {
	maxJobs := defaultMaxJobs
	if raw := strings.TrimSpace(c.Query("max_jobs")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxJobsCap {
			respond.Error(c, http.StatusBadRequest, "validation_error", "max_jobs must be between 1 and 100", nil)
			return
		}
		maxJobs = parsed
	}

	res, err := h.Svc.GetJobs(c.Request.Context(), middleware.SessionIDFromContext(c), jobsearch.Criteria{
		Role:       c.Query("job_profile"),
		Experience: c.Query("experience"),
		Location:   c.Query("location"),
	}, maxJobs)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	c.Set("jobCount", res.Total)
	respond.OK(c, res)
}
