// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"docportal/internal/logger"
)

// Refresher re-persists stale document statuses and reports how many rows changed.
type Refresher interface {
	RefreshStatuses(ctx context.Context) (int64, error)
}

// StatusRefresher runs a Refresher on a cron schedule. Overlapping runs are skipped.
type StatusRefresher struct {
	cron    *cron.Cron
	target  Refresher
	timeout time.Duration
	log     *logger.Logger
}

// NewStatusRefresher validates schedule (standard five fields or descriptors such as @hourly)
// and schedules the job in loc.
func NewStatusRefresher(target Refresher, schedule string, loc *time.Location, l *logger.Logger) (*StatusRefresher, error) {
	if l == nil {
		l = logger.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	l = l.Component("scheduler")
	cl := cronLogger{l}

	r := &StatusRefresher{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			cron.WithLogger(cl),
		),
		target:  target,
		timeout: 5 * time.Minute,
		log:     l,
	}
	if _, err := r.cron.AddFunc(schedule, func() { r.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid status refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

// RunOnce performs a single refresh. Failures are logged.
func (r *StatusRefresher) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	n, err := r.target.RefreshStatuses(ctx)
	if err != nil {
		r.log.Error("status refresh failed", "err", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	r.log.Info("status refresh done", "updated", n, "duration_ms", time.Since(start).Milliseconds())
}

// Start refreshes once synchronously, then hands the schedule to the cron runner.
func (r *StatusRefresher) Start(ctx context.Context) {
	r.RunOnce(ctx)
	r.cron.Start()
}

// Stop halts the schedule and returns a context done when a running job finishes.
func (r *StatusRefresher) Stop() context.Context {
	return r.cron.Stop()
}

// cronLogger adapts the application logger to cron.Logger.
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "err", err)...)
}
