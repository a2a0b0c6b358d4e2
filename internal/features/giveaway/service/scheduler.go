package service

import (
	"context"
	"sync"
	"time"

	"giveaway-bot-backend/internal/common/logger"
)

// Scheduler polls for overdue giveaways on a fixed interval and ends them
// through the service. One sweep runs at a time; giveaways within a sweep
// are ended sequentially.
type Scheduler struct {
	service  GiveawayService
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(service GiveawayService, interval time.Duration) *Scheduler {
	return &Scheduler{
		service:  service,
		interval: interval,
	}
}

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	logger.Info().
		Dur("interval", s.interval).
		Msg("Giveaway scheduler started")
}

// Stop signals the poll loop to exit and waits for the in-flight sweep to
// finish.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	logger.Info().Msg("Giveaway scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	ended, err := s.service.EndDue(ctx, time.Now().UTC())
	if err != nil {
		logger.Error().Err(err).Msg("Scheduler sweep failed")
		return
	}
	schedulerSweeps.Inc()
	if ended > 0 {
		logger.Info().Int("ended", ended).Msg("Scheduler ended due giveaways")
	}
}
