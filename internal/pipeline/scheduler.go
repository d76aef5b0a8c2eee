package pipeline

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs an orchestrator's cycle on a fixed interval. Cycles
// for the same scheduler never overlap: if a cycle is still running
// when the ticker fires, that tick is dropped.
type Scheduler struct {
	orch     *Orchestrator
	interval time.Duration
	log      *zap.Logger

	running bool
	mu      sync.Mutex
	wg      sync.WaitGroup
	quit    chan struct{}
}

func NewScheduler(orch *Orchestrator, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{orch: orch, interval: interval, log: log}
}

// Start launches the polling loop. An immediate cycle runs first, then
// one per interval. Start is a no-op on an already running scheduler.
// Cycles run under ctx; Stop does not cancel it, so shutdown takes
// effect at cycle boundaries only.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.quit = make(chan struct{})

	quit := s.quit
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.log.Info("scheduler started",
			zap.String("source", s.orch.source.Name()),
			zap.Duration("interval", s.interval))

		s.runOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				s.log.Info("scheduler stopped", zap.String("source", s.orch.source.Name()))
				return
			case <-ctx.Done():
				s.log.Info("scheduler stopped", zap.String("source", s.orch.source.Name()))
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.orch.RunCycle(ctx); err != nil && ctx.Err() == nil {
		s.log.Error("scheduled cycle failed",
			zap.String("source", s.orch.source.Name()), zap.Error(err))
	}
}

// Stop ends the loop and waits for any in-flight cycle to finish. The
// running cycle keeps its context, so its items complete normally.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.quit)
	s.mu.Unlock()

	s.wg.Wait()
}
