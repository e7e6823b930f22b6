// Package scheduler runs named background jobs on fixed intervals.
//
// A tick that arrives while the previous run of the same job is still in flight is
// skipped. Run returns only after every in-flight job has finished. A job in flight at
// shutdown keeps its context for the drain timeout before it is cancelled.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Job is one periodic task.
type Job struct {
	Name       string
	Interval   time.Duration
	RunOnStart bool
	Fn         func(ctx context.Context) error
}

type entry struct {
	job     Job
	running atomic.Bool
}

// Scheduler owns a set of jobs.
type Scheduler struct {
	logger  *slog.Logger
	drain   time.Duration
	entries map[string]*entry
	order   []string
	wg      sync.WaitGroup
}

// ErrUnknownJob is returned by Trigger for unregistered names.
var ErrUnknownJob = errors.New("unknown job")

// ErrAlreadyRunning is returned by Trigger when the job is in flight.
var ErrAlreadyRunning = errors.New("job already running")

const defaultDrain = 30 * time.Second

// SetDrainTimeout bounds how long in-flight runs may continue once Run's context is done.
func (s *Scheduler) SetDrainTimeout(d time.Duration) {
	if d > 0 {
		s.drain = d
	}
}

func New(logger *slog.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{logger: logger, drain: defaultDrain, entries: make(map[string]*entry, len(jobs))}
	for _, j := range jobs {
		s.entries[j.Name] = &entry{job: j}
		s.order = append(s.order, j.Name)
	}
	return s
}

// Run blocks until ctx is cancelled and all in-flight runs have drained.
func (s *Scheduler) Run(ctx context.Context) error {
	var loops sync.WaitGroup
	for _, name := range s.order {
		e := s.entries[name]
		if e.job.Interval <= 0 {
			s.logger.WarnContext(ctx, "job disabled, non-positive interval", "job", name)
			continue
		}
		loops.Add(1)
		go func() {
			defer loops.Done()
			s.loop(ctx, e)
		}()
	}
	<-ctx.Done()
	loops.Wait()
	s.wg.Wait()
	return nil
}

func (s *Scheduler) loop(ctx context.Context, e *entry) {
	if e.job.RunOnStart {
		s.start(ctx, e)
	}
	ticker := time.NewTicker(e.job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.start(ctx, e) {
				s.logger.InfoContext(ctx, "skipping tick, previous run still in flight", "job", e.job.Name)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Trigger starts a job once outside its schedule, subject to the same overlap rule.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	e, ok := s.entries[name]
	if !ok {
		return ErrUnknownJob
	}
	if !s.start(ctx, e) {
		return ErrAlreadyRunning
	}
	return nil
}

// Wait blocks until all runs started so far have returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) start(ctx context.Context, e *entry) bool {
	if !e.running.CompareAndSwap(false, true) {
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer e.running.Store(false)

		runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(ctx, func() {
			timer := time.AfterFunc(s.drain, cancel)
			<-runCtx.Done()
			timer.Stop()
		})
		defer stop()

		start := time.Now()
		if err := e.job.Fn(runCtx); err != nil {
			s.logger.ErrorContext(ctx, "job failed",
				"job", e.job.Name,
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return
		}
		s.logger.DebugContext(ctx, "job completed",
			"job", e.job.Name,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()
	return true
}
