package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"go.uber.org/zap"
)

const defaultInterval = 5 * time.Minute

type ServiceParams struct {
	Registry *Registry
	Lock     Lock
	Metrics  *metrics.CronJobMetrics
	Interval time.Duration
}

// Service runs the registered jobs on a fixed cadence.
type Service struct {
	registry *Registry
	lock     Lock
	metrics  *metrics.CronJobMetrics
	interval time.Duration
}

func NewService(p ServiceParams) (*Service, error) {
	if p.Lock == nil {
		return nil, errors.New("lock required")
	}
	registry := p.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	interval := p.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		registry: registry,
		lock:     p.Lock,
		metrics:  p.Metrics,
		interval: interval,
	}, nil
}

// Run executes a cycle immediately and then on every tick until ctx is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	if err := s.runCycle(ctx); err != nil {
		log.Error("scheduled run failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("cron service stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				log.Error("scheduled run failed", zap.Error(err))
			}
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("lock acquire: %w", err)
	}
	if !locked {
		log.Info("another sweeper holds the lock, skipping cycle")
		return nil
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			log.Error("failed to release cron lock", zap.Error(err))
		}
	}()

	for _, job := range s.registry.Jobs() {
		s.runJob(ctx, job)
	}
	return nil
}

func (s *Service) runJob(ctx context.Context, job Job) {
	ctx = logger.WithFields(ctx, zap.String("job", job.Name()))
	log := logger.FromCtx(ctx)

	timer := metrics.StartTimer()
	err := job.Run(ctx)
	elapsed := timer.Duration()
	s.metrics.ObserveDuration(job.Name(), elapsed)

	if err != nil {
		log.Error("job failed", zap.Duration("duration", elapsed), zap.Error(err))
		s.metrics.IncFailure(job.Name())
		return
	}
	log.Info("job completed", zap.Duration("duration", elapsed))
	s.metrics.IncSuccess(job.Name())
}
