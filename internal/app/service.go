// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the static build.
package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"

	"github.com/okian/eventboard/internal/adapters/ics"
	"github.com/okian/eventboard/internal/adapters/page"
	"github.com/okian/eventboard/internal/adapters/repository"
	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/internal/domain/classify"
	"github.com/okian/eventboard/internal/domain/model"
	"github.com/okian/eventboard/internal/render"
	"github.com/okian/eventboard/pkg/logger"
	"github.com/okian/eventboard/pkg/metrics"
)

// Refresh triggers, used as metric labels.
const (
	TriggerStart    = "start"
	TriggerCron     = "cron"
	TriggerRollover = "rollover"
)

// DefaultRefreshSchedule rebuilds the snapshot at local midnight.
const DefaultRefreshSchedule = "0 0 * * *"

// Service implements the API dependencies for the events site.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	normalizer *calendar.Normalizer
	dates      *calendar.Formatter
	renderer   *render.Renderer
	dispatcher *page.Dispatcher
	feed       *ics.Feed

	// Configuration
	clock         calendar.Clock
	loc           *time.Location
	locale        language.Tag
	membershipURL string
	schedule      string

	// State
	snap    *model.Snapshot
	cron    *cron.Cron
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock that decides what "today" is.
func WithClock(c calendar.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLocation sets the timezone that defines calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLocale sets the display locale.
func WithLocale(tag language.Tag) Option {
	return func(s *Service) {
		s.locale = tag
	}
}

// WithMembershipURL sets the membership call-to-action destination.
func WithMembershipURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.membershipURL = url
		}
	}
}

// WithRefreshSchedule sets the cron expression for snapshot rebuilds.
func WithRefreshSchedule(expr string) Option {
	return func(s *Service) {
		if expr != "" {
			s.schedule = expr
		}
	}
}

// New constructs a Service over store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		clock:         calendar.SystemClock{},
		loc:           time.Local,
		locale:        calendar.DefaultLocale,
		membershipURL: render.DefaultMembershipURL,
		schedule:      DefaultRefreshSchedule,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	s.normalizer = calendar.NewNormalizer(s.clock, s.loc)
	s.dates = calendar.NewFormatter(s.locale)
	s.renderer = render.New(s.dates, render.WithMembershipURL(s.membershipURL))
	s.dispatcher = page.NewDispatcher(s.renderer)
	s.feed = ics.NewFeed(ics.WithLocation(s.loc), ics.WithClock(s.clock))

	return s
}

// Start builds the first snapshot and schedules periodic rebuilds.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "starting events service...",
		logger.String("source", s.store.Source()),
		logger.String("schedule", s.schedule),
	)

	if _, err := s.Refresh(ctx, TriggerStart); err != nil {
		return err
	}

	c := cron.New(cron.WithLocation(s.loc), cron.WithLogger(cronLogger{l: s.logger}))
	if _, err := c.AddFunc(s.schedule, func() {
		if _, err := s.Refresh(context.Background(), TriggerCron); err != nil {
			s.logger.Error(context.Background(), "scheduled refresh failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSchedule, s.schedule, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	c.Start()
	s.cron = c
	s.started = true

	metrics.UpdateEventsLoaded(s.store.Count(ctx))
	s.logger.Info(ctx, "events service started", logger.Int("events", s.store.Count(ctx)))
	return nil
}

// Stop halts scheduled refreshes and waits for a running one to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	c := s.cron
	s.cron = nil
	s.started = false
	s.mu.Unlock()

	s.logger.Info(context.Background(), "stopping events service...")
	<-c.Stop().Done()
	s.logger.Info(context.Background(), "events service stopped")
}

// Refresh reclassifies the store against the current day.
func (s *Service) Refresh(ctx context.Context, trigger string) (model.Snapshot, error) {
	today := s.normalizer.Today()
	parts, err := classify.SplitAt(s.store.All(ctx), today, s.normalizer)
	if err != nil {
		s.logger.Error(ctx, "classification failed", logger.Error(err))
		return model.Snapshot{}, err
	}

	snap := &model.Snapshot{
		Today:       today,
		Partitions:  parts,
		RefreshedAt: s.clock.Now(),
	}

	// A refresh for an earlier day is returned but never replaces a newer
	// cached snapshot.
	s.mu.Lock()
	if s.snap == nil || !today.Before(s.snap.Today) {
		s.snap = snap
	}
	s.mu.Unlock()

	metrics.RecordSnapshotRefresh(trigger)
	metrics.UpdatePartitionSizes(len(snap.Partitions.Upcoming), len(snap.Partitions.Past))
	s.logger.Debug(ctx, "snapshot refreshed",
		logger.String("trigger", trigger),
		logger.String("today", snap.Today.Format(calendar.DateLayout)),
		logger.Int("upcoming", len(snap.Partitions.Upcoming)),
		logger.Int("past", len(snap.Partitions.Past)),
	)
	return *snap, nil
}

// Snapshot returns the classification for today, rebuilding it when the
// calendar day has changed since the last build.
func (s *Service) Snapshot(ctx context.Context) (model.Snapshot, error) {
	today := s.normalizer.Today()

	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap != nil && snap.Today.Equal(today) {
		return *snap, nil
	}
	return s.Refresh(ctx, TriggerRollover)
}

// Preview returns the first render.PreviewLimit upcoming events.
func (s *Service) Preview(ctx context.Context) ([]model.Event, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return classify.Preview(snap.Partitions, render.PreviewLimit), nil
}

// RenderPage fills the event containers of the page read from r and writes
// it to w.
func (s *Service) RenderPage(ctx context.Context, r io.Reader, w io.Writer) (page.Mode, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return page.ModeNone, err
	}
	return s.dispatcher.Render(ctx, r, w, snap.Partitions)
}

// WriteCalendar writes the iCalendar feed of every event to w.
func (s *Service) WriteCalendar(ctx context.Context, w io.Writer) error {
	return s.feed.Write(ctx, w, s.store.All(ctx))
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":  s.started,
		"source":   s.store.Source(),
		"events":   s.store.Count(ctx),
		"timezone": s.loc.String(),
		"locale":   s.dates.Locale().String(),
		"schedule": s.schedule,
	}

	if s.snap != nil {
		stats["today"] = s.snap.Today.Format(calendar.DateLayout)
		stats["upcoming"] = len(s.snap.Partitions.Upcoming)
		stats["past"] = len(s.snap.Partitions.Past)
		stats["refreshedAt"] = s.snap.RefreshedAt.Format(time.RFC3339)
	}

	if s.cron != nil {
		if entries := s.cron.Entries(); len(entries) > 0 {
			stats["nextRefresh"] = entries[0].Next.Format(time.RFC3339)
		}
	}

	return stats
}

// cronLogger routes scheduler messages into the service logger.
type cronLogger struct {
	l logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(context.Background(), "cron: "+msg, pairs(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(context.Background(), "cron: "+msg, append(pairs(keysAndValues), logger.Error(err))...)
}

func pairs(kv []interface{}) []logger.Field {
	fields := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, logger.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return fields
}
