// Package applies opens job applications and job board searches in the
// user's browser. The user completes every application by hand.
package applies

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"jobx-backend/internal/resumes"
	"jobx-backend/internal/shared/apperr"
	"jobx-backend/internal/shared/metrics"
	"jobx-backend/internal/shared/telemetry"
)

const linkedInSearchURL = "https://www.linkedin.com/jobs/search/"

var (
	ErrResumeRequired = apperr.Validation("resume_required", "No resume data found. Please upload a resume first.")
	ErrJobURLRequired = apperr.Validation("job_url_required", "Job URL is required")
	ErrInvalidJobURL  = apperr.Validation("invalid_job_url", "Job URL must be an absolute http or https URL")
)

// Opener shows a URL to the user.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Service opens pages for the session that owns a stored resume.
type Service struct {
	Resumes resumes.Store
	Opener  Opener
}

// OpenApplication opens jobURL for the user to apply manually.
func (s *Service) OpenApplication(ctx context.Context, sessionID, jobURL string) (OpenResult, error) {
	if _, err := s.record(ctx, sessionID); err != nil {
		return OpenResult{}, err
	}
	jobURL = strings.TrimSpace(jobURL)
	if jobURL == "" {
		return OpenResult{}, ErrJobURLRequired
	}
	if !validURL(jobURL) {
		return OpenResult{}, ErrInvalidJobURL
	}

	if err := s.open(ctx, sessionID, jobURL); err != nil {
		return OpenResult{
			Message:    "Could not open job application automatically",
			JobURL:     jobURL,
			Status:     StatusFailed,
			Suggestion: "Please copy and paste the URL into your browser manually",
		}, nil
	}
	return OpenResult{
		Message: "Job application opened in browser",
		JobURL:  jobURL,
		Status:  StatusOpened,
		Note:    "Please complete the application manually in the opened browser window",
	}, nil
}

// OpenLinkedInSearch opens a LinkedIn job search for role and experience.
// Missing values come from the stored resume.
func (s *Service) OpenLinkedInSearch(ctx context.Context, sessionID, role, experience string) (OpenResult, error) {
	rec, err := s.record(ctx, sessionID)
	if err != nil {
		return OpenResult{}, err
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = rec.Role
	}
	experience = strings.TrimSpace(experience)
	if experience == "" {
		experience = rec.Experience
	}

	searchURL := LinkedInSearchURL(role, experience)
	if err := s.open(ctx, sessionID, searchURL); err != nil {
		return OpenResult{
			Message:    "Could not open LinkedIn search automatically",
			SearchURL:  searchURL,
			Status:     StatusFailed,
			Suggestion: "Please copy and paste the URL into your browser manually",
		}, nil
	}
	return OpenResult{
		Message:   "LinkedIn job search opened in browser",
		SearchURL: searchURL,
		Status:    StatusOpened,
		Note:      "Review the listings and apply manually in the opened browser window",
	}, nil
}

// LinkedInSearchURL builds the LinkedIn jobs search URL.
func LinkedInSearchURL(role, experience string) string {
	q := url.Values{}
	q.Set("keywords", role+" AND "+experience+" AND Hiring")
	return linkedInSearchURL + "?" + q.Encode()
}

func (s *Service) record(ctx context.Context, sessionID string) (resumes.Record, error) {
	rec, err := s.Resumes.Get(ctx, sessionID)
	if errors.Is(err, resumes.ErrNotFound) {
		return resumes.Record{}, ErrResumeRequired
	}
	if err != nil {
		return resumes.Record{}, apperr.Internal("failed to load resume", err)
	}
	return rec, nil
}

func (s *Service) open(ctx context.Context, sessionID, target string) error {
	err := s.Opener.Open(ctx, target)
	metrics.ObserveBrowserOpen(err != nil)
	if err != nil {
		telemetry.Warn("browser.open_failed", map[string]any{
			"session_id": sessionID,
			"url":        target,
			"error":      err,
		})
		return err
	}
	telemetry.Info("browser.opened", map[string]any{"session_id": sessionID, "url": target})
	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
