package resumes

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"jobx-backend/internal/extract"
	"jobx-backend/internal/profile"
	"jobx-backend/internal/shared/apperr"
	"jobx-backend/internal/shared/metrics"
	"jobx-backend/internal/shared/telemetry"
	"jobx-backend/internal/shared/util"
)

// Extractor turns PDF bytes into text.
type Extractor interface {
	ExtractResult(ctx context.Context, pdf []byte) (extract.Result, error)
}

// Inferrer turns resume text into a profile.
type Inferrer interface {
	Infer(ctx context.Context, text string) (profile.Profile, error)
}

// Service handles resume upload and status.
type Service struct {
	Store     Store
	Extractor Extractor
	Inferrer  Inferrer
	Now       func() time.Time
}

// Upload validates, extracts, infers and stores a resume for the session.
func (s *Service) Upload(ctx context.Context, sessionID, filename string, content []byte) (UploadResult, Record, error) {
	rec, err := s.upload(ctx, sessionID, filename, content)
	if err != nil {
		metrics.IncResumeUploadFailed()
		return UploadResult{}, Record{}, err
	}
	metrics.IncResumeUpload()
	return UploadResult{
		Message:         uploadSuccessMessage,
		ResumeID:        rec.ID,
		Role:            rec.Role,
		Experience:      rec.Experience,
		Location:        rec.Location,
		ResumeStored:    true,
		AnalysisSummary: summary(rec.Role, rec.Experience, rec.Location),
		ExtractMethod:   rec.Method,
	}, rec, nil
}

func (s *Service) upload(ctx context.Context, sessionID, filename string, content []byte) (Record, error) {
	name, err := util.SanitizeFileName(filename)
	if err != nil || !util.HasExtension(name, ".pdf") {
		return Record{}, apperr.Validation("invalid_file_type", "Only PDF files are allowed")
	}
	if len(content) == 0 {
		return Record{}, apperr.Validation("empty_file", "Uploaded file is empty")
	}

	extracted, err := s.Extractor.ExtractResult(ctx, content)
	if err != nil {
		return Record{}, err
	}

	p, err := s.Inferrer.Infer(ctx, extracted.Text)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Filename:    name,
		Content:     content,
		ContentHash: util.ContentHash(content),
		Text:        extracted.Text,
		Method:      extracted.Method,
		Role:        p.Role,
		Experience:  p.Experience,
		Location:    p.Location,
		UploadedAt:  s.now(),
	}
	if err := s.Store.Put(ctx, rec); err != nil {
		return Record{}, apperr.Internal("failed to store resume", err)
	}

	telemetry.Info("resume.stored", map[string]any{
		"resume_id":      rec.ID,
		"session_id":     sessionID,
		"filename":       name,
		"content_sha256": rec.ContentHash,
		"text_length":    len(rec.Text),
		"extract_method": rec.Method,
	})
	return rec, nil
}

// Status reports the stored resume for the session, if any.
func (s *Service) Status(ctx context.Context, sessionID string) (Status, error) {
	rec, err := s.Store.Get(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return Status{ResumeUploaded: false, Message: noResumeMessage}, nil
	}
	if err != nil {
		return Status{}, apperr.Internal("failed to read resume", err)
	}
	uploadedAt := rec.UploadedAt
	return Status{
		ResumeUploaded: true,
		Filename:       rec.Filename,
		Role:           rec.Role,
		Experience:     rec.Experience,
		Location:       rec.Location,
		TextLength:     len(rec.Text),
		UploadedAt:     &uploadedAt,
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
