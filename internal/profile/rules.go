package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule maps any of its keywords to Value.
type Rule struct {
	Value string   `yaml:"value"`
	Match []string `yaml:"match"`
}

// Table is an ordered rule list with a fallback value.
type Table struct {
	Default string `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

// LocationTable checks the city gazetteer before its rules.
type LocationTable struct {
	Default string   `yaml:"default"`
	Cities  []string `yaml:"cities"`
	Rules   []Rule   `yaml:"rules"`
}

// Rules drive the heuristic fallback.
type Rules struct {
	Roles      Table         `yaml:"roles"`
	Experience Table         `yaml:"experience"`
	Locations  LocationTable `yaml:"locations"`
}

// DefaultRules returns the embedded rule table.
func DefaultRules() *Rules {
	r, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded profile rules: %v", err))
	}
	return r
}

// LoadRules reads rules from path, or the embedded table when path is empty.
func LoadRules(path string) (*Rules, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRules(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile rules: %w", err)
	}
	return ParseRules(raw)
}

// ParseRules decodes and validates a YAML rule document.
func ParseRules(raw []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse profile rules: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	r.normalize()
	return &r, nil
}

func (r *Rules) validate() error {
	var errs []error
	if strings.TrimSpace(r.Roles.Default) == "" {
		errs = append(errs, errors.New("roles.default is required"))
	}
	if strings.TrimSpace(r.Experience.Default) == "" {
		errs = append(errs, errors.New("experience.default is required"))
	}
	if strings.TrimSpace(r.Locations.Default) == "" {
		errs = append(errs, errors.New("locations.default is required"))
	}
	for _, t := range []struct {
		name  string
		rules []Rule
	}{{"roles", r.Roles.Rules}, {"experience", r.Experience.Rules}, {"locations", r.Locations.Rules}} {
		for i, rule := range t.rules {
			if strings.TrimSpace(rule.Value) == "" || len(rule.Match) == 0 {
				errs = append(errs, fmt.Errorf("%s.rules[%d] needs a value and at least one match", t.name, i))
			}
		}
	}
	return errors.Join(errs...)
}

func (r *Rules) normalize() {
	lower := func(rules []Rule) {
		for i := range rules {
			for j, m := range rules[i].Match {
				rules[i].Match[j] = strings.ToLower(strings.TrimSpace(m))
			}
		}
	}
	lower(r.Roles.Rules)
	lower(r.Experience.Rules)
	lower(r.Locations.Rules)
	for i, c := range r.Locations.Cities {
		r.Locations.Cities[i] = strings.ToLower(strings.TrimSpace(c))
	}
}

func (t Table) pick(lowered string) string {
	if v, ok := firstMatch(t.Rules, lowered); ok {
		return v
	}
	return t.Default
}

func (t LocationTable) pick(lowered string) string {
	for _, city := range t.Cities {
		if city != "" && strings.Contains(lowered, city) {
			// Casers are stateful, so one per call.
			return cases.Title(language.English).String(city)
		}
	}
	if v, ok := firstMatch(t.Rules, lowered); ok {
		return v
	}
	return t.Default
}

func firstMatch(rules []Rule, lowered string) (string, bool) {
	for _, rule := range rules {
		for _, kw := range rule.Match {
			if kw != "" && strings.Contains(lowered, kw) {
				return rule.Value, true
			}
		}
	}
	return "", false
}

// Fill sets every empty field of p from reply using the keyword tables.
func (r *Rules) Fill(p *Profile, reply string) {
	lowered := strings.ToLower(reply)
	if p.Role == "" {
		p.Role = r.Roles.pick(lowered)
	}
	if p.Experience == "" {
		p.Experience = r.Experience.pick(lowered)
	}
	if p.Location == "" {
		p.Location = r.Locations.pick(lowered)
	}
}
