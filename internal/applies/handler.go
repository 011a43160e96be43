package applies

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobx-backend/internal/shared/server/middleware"
	"jobx-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the apply service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches apply routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/apply-to-job", h.applyToJob)
	rg.POST("/linkedin-search", h.linkedInSearch)
}

func (h *Handler) applyToJob(c *gin.Context) {
	jobURL := strings.TrimSpace(c.Query("job_url"))
	if jobURL == "" {
		req := applyRequest{}
		if err := decodeOptionalJSON(c.Request.Body, &req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		jobURL = req.JobURL
	}

	res, err := h.Svc.OpenApplication(c.Request.Context(), middleware.SessionIDFromContext(c), jobURL)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, res)
}

func (h *Handler) linkedInSearch(c *gin.Context) {
	req := linkedInRequest{}
	if err := decodeOptionalJSON(c.Request.Body, &req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.OpenLinkedInSearch(c.Request.Context(), middleware.SessionIDFromContext(c), req.Role, req.Experience)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, res)
}

func decodeOptionalJSON(body io.Reader, dest any) error {
	if body == nil {
		return nil
	}
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
