package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EmailDraft is the subject/body pair the email prompt asks the model for.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ParseEmailDraft validates raw model output as a subject/body JSON object.
// Markdown code fences and text around the object are tolerated.
func ParseEmailDraft(raw string) (EmailDraft, error) {
	payload := extractJSONObject(stripCodeFence(strings.TrimSpace(raw)))
	if payload == "" {
		return EmailDraft{}, fmt.Errorf("%w: no JSON object found", ErrInvalidEmailDraft)
	}

	var draft EmailDraft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return EmailDraft{}, fmt.Errorf("%w: %v", ErrInvalidEmailDraft, err)
	}
	draft.Subject = strings.TrimSpace(draft.Subject)
	draft.Body = strings.TrimSpace(draft.Body)
	if draft.Subject == "" {
		return EmailDraft{}, fmt.Errorf("%w: missing subject", ErrInvalidEmailDraft)
	}
	if draft.Body == "" {
		return EmailDraft{}, fmt.Errorf("%w: missing body", ErrInvalidEmailDraft)
	}
	return draft, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
