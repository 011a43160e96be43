package applies

const (
	StatusOpened = "application_opened"
	StatusFailed = "failed"
)

// OpenResult is the response for an application or search page open. A
// failed open is reported here rather than as an error.
type OpenResult struct {
	Message    string `json:"message"`
	JobURL     string `json:"job_url,omitempty"`
	SearchURL  string `json:"search_url,omitempty"`
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type applyRequest struct {
	JobURL string `json:"job_url"`
}

type linkedInRequest struct {
	Role       string `json:"job_profile"`
	Experience string `json:"experience"`
}
