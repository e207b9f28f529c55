package onboarding

import (
	"context"
	"errors"
	"fmt"
)

// SessionStore persists sessions keyed by user identifier.
type SessionStore interface {
	// Get returns ErrSessionNotFound when userID has no session.
	Get(ctx context.Context, userID string) (*Session, error)
	// Save creates or replaces the session for userID.
	Save(ctx context.Context, userID string, session *Session) error
	// Delete removes the session; deleting an unknown user is not an error.
	Delete(ctx context.Context, userID string) error
}

// GetOrCreate returns the stored session or a fresh one. The fresh session is
// not saved until the caller calls Save.
func GetOrCreate(ctx context.Context, store SessionStore, userID string) (*Session, error) {
	session, err := store.Get(ctx, userID)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return NewSession(), nil
	}
	return nil, fmt.Errorf("onboarding: load session: %w", err)
}
