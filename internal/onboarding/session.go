package onboarding

import "time"

// Session tracks one user's progress through the question list.
// Answers[i] holds the reply to Questions[i]; len(Answers) <= CurrentQuestion.
type Session struct {
	CurrentQuestion int       `json:"currentQuestion"`
	Answers         []string  `json:"answers"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewSession() *Session {
	return &Session{Answers: []string{}}
}

// RecordAnswer stores message as the answer to the question asked last.
// Re-answering before Advance overwrites the slot. No-op before activation.
func (s *Session) RecordAnswer(message string) {
	if s.CurrentQuestion <= 0 {
		return
	}
	idx := s.CurrentQuestion - 1
	for len(s.Answers) <= idx {
		s.Answers = append(s.Answers, "")
	}
	s.Answers[idx] = message
}

func (s *Session) Advance() {
	s.CurrentQuestion++
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Answers = make([]string, len(s.Answers))
	copy(out.Answers, s.Answers)
	return &out
}
