package resumes

import (
	"fmt"
	"time"
)

// Record is the analyzed resume kept for a session.
type Record struct {
	ID          string
	SessionID   string
	Filename    string
	Content     []byte
	ContentHash string
	Text        string
	Method      string
	Role        string
	Experience  string
	Location    string
	UploadedAt  time.Time
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	Message         string `json:"message"`
	ResumeID        string `json:"resume_id"`
	Role            string `json:"job_profile"`
	Experience      string `json:"experience"`
	Location        string `json:"location"`
	ResumeStored    bool   `json:"resume_stored"`
	AnalysisSummary string `json:"analysis_summary"`
	ExtractMethod   string `json:"extract_method"`
}

// Status reports what is stored for a session.
type Status struct {
	ResumeUploaded bool       `json:"resume_uploaded"`
	Message        string     `json:"message,omitempty"`
	Filename       string     `json:"filename,omitempty"`
	Role           string     `json:"job_profile,omitempty"`
	Experience     string     `json:"experience,omitempty"`
	Location       string     `json:"location,omitempty"`
	TextLength     int        `json:"text_length,omitempty"`
	UploadedAt     *time.Time `json:"uploaded_at,omitempty"`
}

const (
	uploadSuccessMessage = "Resume analyzed successfully"
	noResumeMessage      = "No resume data found. Please upload a resume."
)

func summary(role, experience, location string) string {
	return fmt.Sprintf("Job Profile: %s\nExperience Level: %s\nPreferred Location: %s", role, experience, location)
}
