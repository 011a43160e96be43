package jobsearch

import (
	"encoding/json"
	"strconv"
	"strings"
)

type rawPosting struct {
	Title            string          `json:"job_title"`
	Employer         string          `json:"employer_name"`
	City             string          `json:"job_city"`
	State            string          `json:"job_state"`
	Country          string          `json:"job_country"`
	JobLocation      string          `json:"job_location"`
	EmployerLocation string          `json:"employer_location"`
	ApplyLink        string          `json:"job_apply_link"`
	GoogleLink       string          `json:"job_google_link"`
	JobURL           string          `json:"job_url"`
	Description      string          `json:"job_description"`
	EmploymentType   string          `json:"job_employment_type"`
	PostedAt         string          `json:"job_posted_at_datetime_utc"`
	MinSalary        json.RawMessage `json:"job_min_salary"`
}

// normalize decodes one item of the response data array.
func normalize(item json.RawMessage) (Posting, error) {
	var raw rawPosting
	if err := json.Unmarshal(item, &raw); err != nil {
		return Posting{}, err
	}

	return Posting{
		Title:          orNA(raw.Title),
		Company:        orNA(raw.Employer),
		Location:       orNA(firstNonEmpty(joinLocation(raw.City, raw.State, raw.Country), raw.JobLocation, raw.EmployerLocation)),
		JobURL:         orNA(firstNonEmpty(raw.ApplyLink, raw.JobURL, raw.GoogleLink)),
		ApplyURL:       orNA(raw.ApplyLink),
		Description:    orNA(raw.Description),
		EmploymentType: orNA(raw.EmploymentType),
		PostedAt:       orNA(raw.PostedAt),
		Salary:         orNA(salary(raw.MinSalary)),
	}, nil
}

func joinLocation(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// salary accepts a number or a string; null and anything else yield "".
func salary(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func orNA(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return NotAvailable
}
