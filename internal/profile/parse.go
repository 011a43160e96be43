package profile

import "strings"

var labels = []struct {
	prefix string
	set    func(*Profile, string)
}{
	{"job profile:", func(p *Profile, v string) { p.Role = v }},
	{"experience:", func(p *Profile, v string) { p.Experience = v }},
	{"location:", func(p *Profile, v string) { p.Location = v }},
}

// parseLabeled reads "Job Profile:", "Experience:" and "Location:" lines.
// Fields without a labeled line stay empty.
func parseLabeled(reply string) Profile {
	var p Profile
	for _, raw := range strings.Split(reply, "\n") {
		line := strings.TrimSpace(raw)
		line = strings.TrimLeft(line, "-*• ")
		lowered := strings.ToLower(line)
		for _, l := range labels {
			if !strings.HasPrefix(lowered, l.prefix) {
				continue
			}
			value := strings.TrimSpace(line[len(l.prefix):])
			value = strings.TrimSpace(strings.Trim(value, "*"))
			if value != "" {
				l.set(&p, value)
			}
			break
		}
	}
	return p
}
