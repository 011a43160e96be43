package jobsearch

import (
	"strings"
)

// ResolveLocation keeps the last comma-separated segment, so
// "Austin, TX" searches in "TX".
func ResolveLocation(location string) string {
	location = strings.TrimSpace(location)
	if i := strings.LastIndex(location, ","); i >= 0 {
		return strings.TrimSpace(location[i+1:])
	}
	return location
}

// BuildQuery renders the free-text JSearch query for the criteria.
func BuildQuery(role, experience, location string) string {
	q := strings.TrimSpace(role) + " jobs in " + ResolveLocation(location)
	switch strings.ToLower(strings.TrimSpace(experience)) {
	case "experienced":
		q += " senior"
	case "fresher":
		q += " entry level"
	}
	return q
}
