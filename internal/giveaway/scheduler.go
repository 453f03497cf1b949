package giveaway

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SettleFunc finishes an expired giveaway after the scan has taken it
// out of the registry: draws winners, updates the panel and announces
// the result
type SettleFunc func(g *Giveaway)

// Scheduler periodically scans the registry for expired giveaways
type Scheduler struct {
	registry *Registry
	settle   SettleFunc
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler scanning at the given cadence
func NewScheduler(registry *Registry, intervalSeconds int, settle SettleFunc) *Scheduler {
	return &Scheduler{
		registry: registry,
		settle:   settle,
		interval: time.Duration(intervalSeconds) * time.Second,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scan loop
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Starting giveaway scheduler", "interval", s.interval)

	s.wg.Add(1)
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Giveaway scheduler stopped (context cancelled)")
			return
		case <-s.stopChan:
			slog.Info("Giveaway scheduler stopped")
			return
		case <-ticker.C:
			s.scan()
		}
	}
}

// Stop signals the scheduler to stop and waits for the loop to exit
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

// scan removes every giveaway past its deadline from the registry and
// settles it
func (s *Scheduler) scan() {
	expired := s.registry.TakeExpired(time.Now().Unix())
	if len(expired) == 0 {
		return
	}

	slog.Debug("Settling expired giveaways", "count", len(expired))

	for _, g := range expired {
		s.settle(g)
	}
}
