// Package profile infers a candidate's target role, experience level and
// preferred location from resume text with one generative model call.
package profile

import (
	"context"
	"time"

	"jobx-backend/internal/llm"
	"jobx-backend/internal/shared/apperr"
	"jobx-backend/internal/shared/metrics"
	"jobx-backend/internal/shared/telemetry"
)

// Profile is the inference result. Every field is non-empty.
type Profile struct {
	Role       string `json:"job_profile"`
	Experience string `json:"experience"`
	Location   string `json:"location"`
}

// Inferrer drives the model call and the two-tier reply parse.
type Inferrer struct {
	LLM   llm.Streamer
	Rules *Rules
}

// NewInferrer builds an Inferrer. A nil rules table uses the embedded one.
func NewInferrer(streamer llm.Streamer, rules *Rules) *Inferrer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Inferrer{LLM: streamer, Rules: rules}
}

// Infer sends text to the model and parses the reply. Labeled lines win;
// missing fields fall back to the keyword tables and then to defaults.
func (i *Inferrer) Infer(ctx context.Context, text string) (Profile, error) {
	if i.LLM == nil {
		return Profile{}, llm.ErrNotConfigured
	}

	start := time.Now()
	reply, err := llm.Collect(i.LLM.Stream(ctx, BuildPrompt(text)))
	metrics.ObserveInference(metrics.Since(start), err != nil)
	if err != nil {
		if _, ok := apperr.As(err); !ok {
			err = apperr.Upstream("inference_failed", "profile inference failed", 0, err)
		}
		return Profile{}, err
	}

	p := ParseReply(reply, i.Rules)
	telemetry.Info("profile.inferred", map[string]any{
		"reply_chars": len(reply),
		"role":        p.Role,
		"experience":  p.Experience,
		"location":    p.Location,
	})
	return p, nil
}

// ParseReply applies the labeled parse, then rules for fields it left empty.
func ParseReply(reply string, rules *Rules) Profile {
	if rules == nil {
		rules = DefaultRules()
	}
	p := parseLabeled(reply)
	rules.Fill(&p, reply)
	return p
}
