package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/climate-data-explorer/internal/logger"
)

const reloadTimeout = 2 * time.Minute

// Reloader refreshes the in-memory dataset from its source.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler periodically reloads the dataset.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	interval  time.Duration
	log       logger.Logger
}

// New creates a new Scheduler. An interval of zero disables reloading.
func New(interval time.Duration, reloader Reloader, log logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		reloader:  reloader,
		interval:  interval,
		log:       log.WithField("component", "scheduler"),
	}
}

// Start schedules the reload job and starts the underlying scheduler.
// The first run happens one interval after Start.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("dataset reload disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Infof("dataset reload scheduled every %s", s.interval)
	return nil
}

func (s *Scheduler) run() {
	s.log.Debug("running dataset reload job")

	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	start := time.Now()
	if err := s.reloader.Reload(ctx); err != nil {
		s.log.Errorf("dataset reload failed, keeping previous data: %v", err)
		return
	}
	s.log.Infof("dataset reload completed in %s", time.Since(start).Round(time.Millisecond))
}

// Running reports whether the reload job is active.
func (s *Scheduler) Running() bool {
	return s.scheduler.IsRunning()
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil && s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}
