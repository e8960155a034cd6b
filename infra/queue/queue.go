// Package queue runs background maintenance on a backlite task queue that
// lives in the same SQLite file as the catch-ups.
package queue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SweepQueue is the backlite queue name of retention sweeps.
const SweepQueue = "CatchupSweep"

// SweepTask trims the catch-up history of one namespace.
type SweepTask struct {
	Namespace string
}

func (t SweepTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        SweepQueue,
		MaxAttempts: 3,
		Backoff:     5 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
			Data: &backlite.RetainData{
				OnlyFailed: true,
			},
		},
	}
}

// Sweeper is what a sweep task calls into.
type Sweeper interface {
	Sweep(ctx context.Context, namespace string) error
}

// SweeperFunc adapts a function to Sweeper.
type SweeperFunc func(ctx context.Context, namespace string) error

// Sweep calls f.
func (f SweeperFunc) Sweep(ctx context.Context, namespace string) error {
	return f(ctx, namespace)
}

// Queue schedules sweeps and runs them on backlite workers.
type Queue struct {
	client *backlite.Client
}

// New installs the backlite schema into db and registers the sweep queue.
// Call Start to begin processing.
func New(db *sql.DB, sweeper Sweeper) (*Queue, error) {
	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		Logger:          Logger{zl: log.Logger},
		ReleaseAfter:    time.Minute,
		NumWorkers:      1,
		CleanupInterval: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("creating task queue: %w", err)
	}
	if err := client.Install(); err != nil {
		return nil, fmt.Errorf("installing task queue: %w", err)
	}

	client.Register(backlite.NewQueue[SweepTask](ProcessSweep(sweeper)))
	return &Queue{client: client}, nil
}

// Start launches the workers. Sweeps left over from a previous run are picked
// up as well.
func (q *Queue) Start(ctx context.Context) {
	q.client.Start(ctx)
	log.Info().Msg("started task queue")
}

// Stop waits for running tasks until ctx expires. Queued tasks stay in the
// database for the next run.
func (q *Queue) Stop(ctx context.Context) {
	if !q.client.Stop(ctx) {
		log.Warn().Msg("task queue stopped before running tasks finished")
	}
}

// Schedule implements app.Sweeper.
func (q *Queue) Schedule(ctx context.Context, namespace string) error {
	log.Debug().Str("namespace", namespace).Msg("enqueueing retention sweep")
	_, err := q.client.Add(SweepTask{Namespace: namespace}).Ctx(ctx).Save()
	if err != nil {
		return fmt.Errorf("enqueueing sweep of %s: %w", namespace, err)
	}
	return nil
}

// ProcessSweep is the processor of SweepQueue.
func ProcessSweep(sweeper Sweeper) func(context.Context, SweepTask) error {
	return func(ctx context.Context, task SweepTask) error {
		log.Debug().Str("namespace", task.Namespace).Msg("running retention sweep")
		if err := sweeper.Sweep(ctx, task.Namespace); err != nil {
			log.Error().Err(err).Str("namespace", task.Namespace).Msg("retention sweep failed")
			return err
		}
		return nil
	}
}

// Logger adapts zerolog to backlite's logger.
type Logger struct {
	zl zerolog.Logger
}

func (l Logger) Info(message string, params ...any) {
	l.zl.Debug().Fields(params).Msg(message)
}

func (l Logger) Error(message string, params ...any) {
	l.zl.Error().Fields(params).Msg(message)
}
