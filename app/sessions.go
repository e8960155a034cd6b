package app

import (
	"context"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// SessionRepository persists catch-up sessions.
type SessionRepository interface {
	// Insert stores a new session under the given namespace.
	Insert(ctx context.Context, namespace string, session domain.Session) error

	// Get returns the session or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.Session, error)

	// Summaries lists every session of a namespace, most recently completed first.
	Summaries(ctx context.Context, namespace string) ([]domain.SessionSummary, error)

	// Delete removes a session. Deleting a missing session returns domain.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Trim keeps the keep most recently completed sessions of a namespace and
	// deletes the rest, returning how many were removed.
	Trim(ctx context.Context, namespace string, keep int) (int64, error)
}

// Sweeper schedules retention sweeps to run off the caller's path.
type Sweeper interface {
	Schedule(ctx context.Context, namespace string) error
}
