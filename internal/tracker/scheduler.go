package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic price checks on a cron schedule derived from the
// configured check interval.
type Scheduler struct {
	tracker *Tracker
	cron    *cron.Cron
	log     *slog.Logger
	entryID cron.EntryID
}

// NewScheduler creates a Scheduler driving tr.
func NewScheduler(tr *Tracker, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		tracker: tr,
		cron:    cron.New(),
		log:     log,
	}
}

// Start schedules checks every interval and starts the cron runner.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("check interval must be positive, got %s", interval)
	}

	spec := "@every " + interval.String()
	id, err := s.cron.AddFunc(spec, s.runOnce)
	if err != nil {
		return fmt.Errorf("scheduling price checks: %w", err)
	}
	s.entryID = id
	s.cron.Start()

	s.log.Info("scheduler started", "interval", interval)
	return nil
}

func (s *Scheduler) runOnce() {
	_, err := s.tracker.RunCheck(context.Background())
	if errors.Is(err, ErrCheckInFlight) {
		s.log.Warn("skipping scheduled check, previous check still running")
		return
	}
	if err != nil {
		s.log.Error("scheduled price check failed", "error", err)
	}
}

// NextRun returns the time of the next scheduled check.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// Stop stops the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
