package profile

import (
	"fmt"
	"unicode/utf8"
)

// MaxPromptChars bounds the resume text sent to the model.
const MaxPromptChars = 8000

const promptTemplate = `You are a recruiting assistant. Read the resume below and identify the candidate's target job.

Reply with exactly these three lines and nothing else:
Job Profile: <the most suitable job title, for example Software Developer, Data Scientist, Frontend Developer, Backend Developer or Full Stack Developer>
Experience: <Fresher or Experienced>
Location: <the candidate's preferred city, or Remote>

Resume:
%s`

// BuildPrompt renders the inference prompt for resume text.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, truncate(text, MaxPromptChars))
}

// truncate cuts s to limit runes and marks the cut with "...".
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
