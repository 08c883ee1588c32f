// Package scheduler repeats a run on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one run. Its error is logged; the schedule keeps going.
type Job func(ctx context.Context) error

// Scheduler wraps robfig/cron. A tick that fires while the previous run is
// still going is skipped.
type Scheduler struct {
	cron  *cron.Cron
	every time.Duration
	spec  string
	job   cron.Job
	// wg covers the immediate run; cron.Stop waits for scheduled ones.
	wg sync.WaitGroup
}

func New(ctx context.Context, every time.Duration, job Job) *Scheduler {
	logger := cron.PrintfLogger(log.Default())
	s := &Scheduler{
		cron:  cron.New(cron.WithLogger(logger)),
		every: every,
		spec:  fmt.Sprintf("@every %s", every),
	}
	s.job = cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(func() {
		if err := job(ctx); err != nil {
			log.Printf("[scheduler] Run failed: %v", err)
		}
	}))
	return s
}

// Start registers the job, starts the cron loop and runs once right away
// without waiting for the first tick.
func (s *Scheduler) Start() error {
	if s.every < time.Second {
		return fmt.Errorf("interval must be at least 1s, got %s", s.every)
	}
	if _, err := s.cron.AddJob(s.spec, s.job); err != nil {
		return fmt.Errorf("cron.AddJob: %w", err)
	}
	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.job.Run()
	}()
	return nil
}

// Stop halts the schedule and waits for a run in progress to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Println("[scheduler] Cron stopped")
}
