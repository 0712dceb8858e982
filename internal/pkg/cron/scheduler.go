package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a named background task run on a fixed interval. The context it
// receives is canceled when the scheduler stops.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs registered jobs on their own tickers. Register with
// AddJob before calling Start; Stop cancels the shared context and waits
// for in-flight runs to finish.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("background job registered", "name", name, "interval", interval)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("background scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all jobs and blocks until their goroutines return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("background scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// First run happens at startup so a restart never skips an interval.
	s.executeJob(job)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeJob(job)
		}
	}
}

func (s *Scheduler) executeJob(job Job) {
	start := time.Now()

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("background job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("background job finished", "name", job.Name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time with the caller's
// context, outside the ticker loop.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("background job failed", "name", job.Name, "error", err)
		}
	}
}
