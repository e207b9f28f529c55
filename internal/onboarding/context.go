package onboarding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const contextHeader = "Conversation History:\n"

// FormatContext renders answered questions as "Q: ...\nA: ...\n" blocks in
// question order, skipping empty answers.
func FormatContext(questions, answers []string) string {
	var b strings.Builder
	b.WriteString(contextHeader)
	for i, answer := range answers {
		if answer == "" || i >= len(questions) {
			continue
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", questions[i], answer)
	}
	return b.String()
}

// AnswerPair is the question/answer shape the email endpoint expects as context.
type AnswerPair struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// AnswerPairs zips questions and answers, skipping unanswered slots.
func AnswerPairs(questions, answers []string) []AnswerPair {
	pairs := make([]AnswerPair, 0, len(answers))
	for i, answer := range answers {
		if answer == "" || i >= len(questions) {
			continue
		}
		pairs = append(pairs, AnswerPair{Question: questions[i], Answer: answer})
	}
	return pairs
}

// FormatEmailContext turns the client-supplied context into prompt text. JSON
// strings are used verbatim; other values are re-indented.
func FormatEmailContext(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("onboarding: decode context string: %w", err)
		}
		return s, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, trimmed, "", "    "); err != nil {
		return "", fmt.Errorf("onboarding: format context: %w", err)
	}
	return out.String(), nil
}

// isMissingContext mirrors a falsy check: absent, null, false, 0 and "" count as missing.
func isMissingContext(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return true
	default:
		return false
	}
}
