package catchup

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/terminalcatchup/app"
	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// KeepSessions is how many catch-ups are kept per account.
const KeepSessions = 3

// SessionStore is the bounded history of past catch-ups, one namespace per
// account. Saving schedules a retention sweep instead of trimming inline.
type SessionStore struct {
	repo    app.SessionRepository
	sweeper app.Sweeper
	keep    int
}

// NewSessionStore wires a store. A nil sweeper disables retention.
func NewSessionStore(repo app.SessionRepository, sweeper app.Sweeper, keep int) *SessionStore {
	if keep <= 0 {
		keep = KeepSessions
	}
	return &SessionStore{repo: repo, sweeper: sweeper, keep: keep}
}

// Keep returns the retention limit.
func (s *SessionStore) Keep() int {
	return s.keep
}

// Save writes the session and queues a sweep of its namespace. Failing to
// queue the sweep is logged only: the next save will sweep again.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	ns := NamespaceOf(session.ID)
	if err := s.repo.Insert(ctx, ns, session); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if s.sweeper != nil {
		if err := s.sweeper.Schedule(ctx, ns); err != nil {
			log.Error().Err(err).Str("namespace", ns).Msg("scheduling catch-up retention sweep")
		}
	}
	return nil
}

// Load returns a session with its posts in chronological order.
func (s *SessionStore) Load(ctx context.Context, id string) (domain.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	sort.SliceStable(session.Posts, func(i, j int) bool {
		return session.Posts[i].CreatedAt.Before(session.Posts[j].CreatedAt)
	})
	return session, nil
}

// ListRecent returns up to Keep summaries, most recently completed first.
func (s *SessionStore) ListRecent(ctx context.Context, namespace string) ([]domain.SessionSummary, error) {
	all, err := s.repo.Summaries(ctx, namespace)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].EndAt.After(all[j].EndAt)
	})
	if len(all) > s.keep {
		all = all[:s.keep]
	}
	return all, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return err
}

// Sweep trims a namespace down to Keep sessions. It is what scheduled sweeps run.
func (s *SessionStore) Sweep(ctx context.Context, namespace string) error {
	n, err := s.repo.Trim(ctx, namespace, s.keep)
	if err != nil {
		return fmt.Errorf("trimming catch-ups of %s: %w", namespace, err)
	}
	if n > 0 {
		log.Info().Str("namespace", namespace).Int64("deleted", n).Msg("old catch-ups removed")
	}
	return nil
}
