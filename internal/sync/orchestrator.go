// Package sync drives one full fetch-map-replace pass for a single day.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AndreyKarmanov/aw-garmin/internal/domain"
	"github.com/AndreyKarmanov/aw-garmin/internal/mapper"
	"github.com/AndreyKarmanov/aw-garmin/internal/observability"
)

// Source exposes the minimal source-client surface the orchestrator needs.
type Source interface {
	FetchSleep(ctx context.Context, date time.Time) ([]domain.RawSleepSegment, error)
	FetchActivities(ctx context.Context, date time.Time) ([]domain.RawActivity, error)
}

// Sink exposes the minimal event-store surface the orchestrator needs.
type Sink interface {
	EnsureBucket(ctx context.Context, bucketID, eventType string) error
	ReplaceWindow(ctx context.Context, bucketID string, window domain.Window, events []domain.Event) error
}

// BucketEventType is the type tag on the destination bucket.
const BucketEventType = "health"

// Result summarises one completed run.
type Result struct {
	RunID          string
	Window         domain.Window
	SleepEvents    int
	ActivityEvents int
}

// Option configures optional orchestrator behaviour.
type Option func(*Orchestrator)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithDryRun maps and reports without touching the sink.
func WithDryRun(dryRun bool) Option {
	return func(o *Orchestrator) {
		o.dryRun = dryRun
	}
}

// Orchestrator coordinates one sync pass: resolve the day window, fetch raw
// records, map them, and replace the window's contents in the sink.
type Orchestrator struct {
	source Source
	sink   Sink
	bucket string
	logger *zap.Logger
	now    func() time.Time
	dryRun bool
}

// New constructs an Orchestrator writing to the named bucket.
func New(source Source, sink Sink, bucket string, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		source: source,
		sink:   sink,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one pass for the calendar day containing date. A zero date
// means today. Any source or sink failure aborts the run with the sink's
// prior state intact; a day with no recorded data succeeds and clears the
// window.
func (o *Orchestrator) Run(ctx context.Context, date time.Time) (Result, error) {
	if date.IsZero() {
		date = o.now()
	}

	window := domain.DayWindow(date)
	logger := o.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.Time("window_start", window.Start),
		zap.Time("window_end", window.End),
	)

	segments, err := o.source.FetchSleep(ctx, date)
	if err != nil {
		observability.RecordFailure(observability.StageFetch)
		return Result{}, fmt.Errorf("fetch sleep: %w", err)
	}
	activities, err := o.source.FetchActivities(ctx, date)
	if err != nil {
		observability.RecordFailure(observability.StageFetch)
		return Result{}, fmt.Errorf("fetch activities: %w", err)
	}

	events := mapper.MapAll(segments, activities)

	// The source attributes a night's sleep to the day the user wakes, so a
	// segment for today can start the prior evening. Widening the replace
	// scope to the earliest mapped event keeps reruns convergent for those
	// segments; the widened span is derived from the source data alone.
	effective := window
	for _, event := range events {
		effective = effective.WidenTo(event.Timestamp)
	}

	result := Result{
		Window:         effective,
		SleepEvents:    len(segments),
		ActivityEvents: len(activities),
	}

	if o.dryRun {
		logger.Info("dry run, skipping write",
			zap.Int("sleep_events", result.SleepEvents),
			zap.Int("activity_events", result.ActivityEvents),
		)
		return result, nil
	}

	if err := o.sink.EnsureBucket(ctx, o.bucket, BucketEventType); err != nil {
		observability.RecordFailure(observability.StageWrite)
		return Result{}, fmt.Errorf("ensure bucket: %w", err)
	}
	if err := o.sink.ReplaceWindow(ctx, o.bucket, effective, events); err != nil {
		observability.RecordFailure(observability.StageWrite)
		return Result{}, fmt.Errorf("replace window: %w", err)
	}

	observability.RecordSynced(domain.CategorySleep, result.SleepEvents)
	observability.RecordSynced(domain.CategoryActivity, result.ActivityEvents)
	observability.RecordSuccess(o.now())

	logger.Info("sync complete",
		zap.Int("sleep_events", result.SleepEvents),
		zap.Int("activity_events", result.ActivityEvents),
	)
	return result, nil
}
