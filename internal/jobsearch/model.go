package jobsearch

// NotAvailable fills every posting field the upstream omits.
const NotAvailable = "N/A"

// Criteria are the search inputs.
type Criteria struct {
	Role       string `json:"job_profile"`
	Experience string `json:"experience"`
	Location   string `json:"location"`
}

// Posting is one normalized search result. No field is ever empty.
type Posting struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	JobURL         string `json:"job_url"`
	ApplyURL       string `json:"apply_url"`
	Description    string `json:"description"`
	EmploymentType string `json:"employment_type"`
	PostedAt       string `json:"posted_at"`
	Salary         string `json:"salary"`
}
