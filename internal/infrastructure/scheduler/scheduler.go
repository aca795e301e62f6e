package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"thgamestore/pkg/logger"
)

// JobRecorder receives the result of every run.
type JobRecorder interface {
	RecordJobRun(job string, success bool)
}

type Scheduler struct {
	cron     *cron.Cron
	recorder JobRecorder
	timeout  time.Duration
}

func New(recorder JobRecorder) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		recorder: recorder,
		timeout:  time.Minute,
	}
}

// Add registers fn under a cron spec such as "@hourly" or "*/5 * * * *".
func (s *Scheduler) Add(spec, name string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, fn) })
	return err
}

func (s *Scheduler) run(name string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	if s.recorder != nil {
		s.recorder.RecordJobRun(name, err == nil)
	}
	if err != nil {
		logger.Error("Job %s failed: %v", name, err)
		return
	}
	logger.Debug("Job %s finished in %s", name, time.Since(start))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
