// Package timebank implements the TimeBank ledger engine.
//
// The engine owns member balances and the engagement state machine. Every
// operation reads a snapshot from storage, computes the resulting transition in
// memory and commits it with storage.Applier, conditioned on the versions it
// read. If another writer got there first the commit fails with
// storage.ErrConflict and the whole operation is retried from a fresh read.
// Rule violations are never retried.
package timebank

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chris/hive-timebank/pkg/events"
	"github.com/chris/hive-timebank/pkg/metrics"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/storage"
)

const (
	defaultMaxRetries     = 10
	defaultInitialBackoff = 5 * time.Millisecond
	maxBackoff            = 250 * time.Millisecond
)

// Options configures a Ledger. The zero value is usable.
type Options struct {
	Logger *slog.Logger
	// Now is the clock used for timestamps. Defaults to time.Now.
	Now func() time.Time
	// MaxRetries bounds how often an operation is retried after a version conflict.
	MaxRetries uint64
	// InitialBackoff is the first delay between retries; it grows exponentially.
	InitialBackoff time.Duration
}

// Ledger is the TimeBank ledger engine. It is safe for concurrent use.
type Ledger struct {
	store          storage.Storage
	publisher      events.Publisher
	logger         *slog.Logger
	now            func() time.Time
	maxRetries     uint64
	initialBackoff time.Duration
}

// New creates a Ledger over the given store. A nil publisher discards events.
func New(store storage.Storage, publisher events.Publisher, opts Options) *Ledger {
	l := &Ledger{
		store:          store,
		publisher:      publisher,
		logger:         opts.Logger,
		now:            opts.Now,
		maxRetries:     opts.MaxRetries,
		initialBackoff: opts.InitialBackoff,
	}
	if l.publisher == nil {
		l.publisher = &events.NoOpPublisher{}
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.maxRetries == 0 {
		l.maxRetries = defaultMaxRetries
	}
	if l.initialBackoff == 0 {
		l.initialBackoff = defaultInitialBackoff
	}
	return l
}

// outcome is what a committed operation hands back to execute.
type outcome struct {
	member     *models.Member
	engagement *models.Engagement
	events     []events.Event
}

// execute runs op until it commits, fails permanently or runs out of retries,
// then records metrics and publishes the events of the committed attempt.
func (l *Ledger) execute(ctx context.Context, op string, fn func(ctx context.Context) (*outcome, error)) (*outcome, error) {
	start := time.Now()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.initialBackoff
	b.MaxInterval = maxBackoff
	b.MaxElapsedTime = 0

	out, err := backoff.RetryWithData(func() (*outcome, error) {
		out, err := fn(ctx)
		if errors.Is(err, storage.ErrConflict) {
			metrics.LedgerConflicts.WithLabelValues(op).Inc()
			l.logger.DebugContext(ctx, "version conflict, retrying", "operation", op, "error", err)
			return nil, err
		}
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		return out, nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, l.maxRetries), ctx))

	metrics.LedgerOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LedgerOperations.WithLabelValues(op, string(KindOf(err))).Inc()
		if rejected(err) {
			l.logger.DebugContext(ctx, "operation rejected", "operation", op, "kind", KindOf(err), "error", err)
		} else {
			l.logger.ErrorContext(ctx, "operation failed", "operation", op, "error", err)
		}
		return nil, err
	}
	metrics.LedgerOperations.WithLabelValues(op, "ok").Inc()

	for _, ev := range out.events {
		if err := l.publisher.Publish(ctx, ev); err != nil {
			l.logger.ErrorContext(ctx, "failed to publish event", "type", ev.Type, "engagement_id", ev.EngagementID, "member_id", ev.MemberID, "error", err)
		}
	}
	return out, nil
}

// event builds an engagement event stamped with the engagement's last update.
func engagementEvent(t events.Type, e *models.Engagement) events.Event {
	return events.Event{
		Type:         t,
		EngagementID: e.Id,
		RequesterID:  e.RequesterId,
		ProviderID:   e.ProviderId,
		Hours:        e.Hours,
		State:        string(e.State),
		OccurredAt:   e.UpdatedAt,
	}
}
