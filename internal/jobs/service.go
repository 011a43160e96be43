// Package jobs resolves search criteria against the stored resume and runs
// the job search.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobx-backend/internal/jobsearch"
	"jobx-backend/internal/resumes"
	"jobx-backend/internal/shared/apperr"
)

const defaultMaxJobs = 10

var (
	ErrLocationRequired = apperr.Validation(
		"location_required",
		"No location given and no resume uploaded. Provide a location or upload a resume first.",
	)
	ErrResumeRequired = apperr.Validation(
		"resume_required",
		"No resume data found. Please upload a resume first.",
	)
)

// Searcher runs one job search.
type Searcher interface {
	Search(ctx context.Context, criteria jobsearch.Criteria, numPages int) ([]jobsearch.Posting, error)
}

// Service orchestrates criteria resolution and search.
type Service struct {
	Resumes  resumes.Store
	Search   Searcher
	NumPages int
	// DefaultLocation applies only when neither the request nor a stored
	// resume provides one.
	DefaultLocation string
}

// Result is a completed search.
type Result struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Jobs     []jobsearch.Posting `json:"jobs"`
	Criteria jobsearch.Criteria  `json:"search_criteria"`
	Total    int                 `json:"total_jobs"`
}

// SearchByCriteria searches with an explicit role and experience level. The
// location falls back to the stored resume, then to DefaultLocation.
func (s *Service) SearchByCriteria(ctx context.Context, sessionID string, criteria jobsearch.Criteria) (Result, error) {
	criteria = trim(criteria)
	if criteria.Role == "" {
		return Result{}, apperr.Validation("job_profile_required", "job_profile is required")
	}
	if criteria.Experience == "" {
		return Result{}, apperr.Validation("experience_required", "experience is required")
	}

	if criteria.Location == "" {
		rec, err := s.lookup(ctx, sessionID)
		switch {
		case err == nil && rec.Location != "":
			criteria.Location = rec.Location
		case err != nil && !errors.Is(err, resumes.ErrNotFound):
			return Result{}, err
		case s.DefaultLocation != "":
			criteria.Location = s.DefaultLocation
		default:
			return Result{}, ErrLocationRequired
		}
	}

	postings, err := s.Search.Search(ctx, criteria, s.NumPages)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Success:  true,
		Message:  fmt.Sprintf("Found %d jobs for %s in %s", len(postings), criteria.Role, criteria.Location),
		Jobs:     postings,
		Criteria: criteria,
		Total:    len(postings),
	}, nil
}

// GetJobs searches with whatever criteria are given, filling missing fields
// from the stored resume, and caps the result at maxJobs.
func (s *Service) GetJobs(ctx context.Context, sessionID string, partial jobsearch.Criteria, maxJobs int) (Result, error) {
	criteria := trim(partial)
	if maxJobs <= 0 {
		maxJobs = defaultMaxJobs
	}

	if criteria.Role == "" || criteria.Experience == "" || criteria.Location == "" {
		rec, err := s.lookup(ctx, sessionID)
		if errors.Is(err, resumes.ErrNotFound) {
			return Result{}, ErrResumeRequired
		}
		if err != nil {
			return Result{}, err
		}
		criteria.Role = firstNonEmpty(criteria.Role, rec.Role)
		criteria.Experience = firstNonEmpty(criteria.Experience, rec.Experience)
		criteria.Location = firstNonEmpty(criteria.Location, rec.Location, s.DefaultLocation)
	}

	postings, err := s.Search.Search(ctx, criteria, s.NumPages)
	if err != nil {
		return Result{}, err
	}
	if len(postings) > maxJobs {
		postings = postings[:maxJobs]
	}
	return Result{
		Success:  true,
		Message:  fmt.Sprintf("Found %d jobs", len(postings)),
		Jobs:     postings,
		Criteria: criteria,
		Total:    len(postings),
	}, nil
}

func (s *Service) lookup(ctx context.Context, sessionID string) (resumes.Record, error) {
	rec, err := s.Resumes.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, resumes.ErrNotFound) {
		return resumes.Record{}, apperr.Internal("failed to read resume", err)
	}
	return rec, err
}

func trim(c jobsearch.Criteria) jobsearch.Criteria {
	return jobsearch.Criteria{
		Role:       strings.TrimSpace(c.Role),
		Experience: strings.TrimSpace(c.Experience),
		Location:   strings.TrimSpace(c.Location),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
