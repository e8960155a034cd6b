package catchup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/terminalcatchup/app"
	"github.com/CrestNiraj12/terminalcatchup/domain"
)

// Service starts catch-ups and gives access to the stored ones of one account.
type Service struct {
	Timeline  app.TimelineService
	Collector *Collector
	Store     *SessionStore
	Filters   app.FilterEvaluator
	Namespace string
	PageSize  int
	Now       func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ViewerID is the account the catch-ups belong to.
func (s *Service) ViewerID() string {
	return s.Collector.ViewerID
}

// StartCollection runs a catch-up reaching back duration from now, or as far
// as possible when duration is nil, and saves it.
//
// If saving fails the collected session is still returned together with an
// error wrapping domain.ErrPersistence. Cancelling ctx aborts the run.
func (s *Service) StartCollection(ctx context.Context, duration *time.Duration) (domain.Session, error) {
	now := s.now()
	var startAt *time.Time
	if duration != nil {
		t := now.Add(-*duration)
		startAt = &t
	}

	limit := s.PageSize
	if limit <= 0 {
		limit = PageSize
	}

	log.Info().Str("namespace", s.Namespace).Bool("unbounded", startAt == nil).Msg("catch-up started")
	posts, err := s.Collector.Collect(ctx, s.Timeline.HomeTimeline(limit), startAt)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.NewSession(NewSessionID(s.Namespace), posts, startAt, now)
	log.Info().Str("id", session.ID).Int("count", session.Count).Msg("catch-up collected")

	if err := s.Store.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("id", session.ID).Msg("saving catch-up")
		return session, err
	}
	return session, nil
}

// Open loads a stored catch-up and re-applies the current filter rules.
func (s *Service) Open(ctx context.Context, id string) (domain.Session, error) {
	session, err := s.Store.Load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if s.Filters == nil {
		return session, nil
	}
	viewer := s.ViewerID()
	for i := range session.Posts {
		p := &session.Posts[i]
		if isOwn(*p, viewer) {
			p.Filtered = nil
			continue
		}
		p.Filtered = s.Filters.Evaluate(*p, FilterContextHome)
	}
	return session, nil
}

// Recent lists the last catch-ups of this account.
func (s *Service) Recent(ctx context.Context) ([]domain.SessionSummary, error) {
	return s.Store.ListRecent(ctx, s.Namespace)
}

// LastEndAt returns when the latest catch-up ended, or nil if there is none.
func (s *Service) LastEndAt(ctx context.Context) (*time.Time, error) {
	recent, err := s.Recent(ctx)
	if err != nil || len(recent) == 0 {
		return nil, err
	}
	t := recent[0].EndAt
	return &t, nil
}

// Delete removes a stored catch-up.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}
