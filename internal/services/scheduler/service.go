// -----------------------------------------------------------------------
// Scheduler Service - automatic cause-list refresh on a cron schedule
// -----------------------------------------------------------------------

package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/services/pipeline"
)

// Service runs the acquisition pipeline on a schedule
type Service struct {
	pipeline *pipeline.Service
	config   *common.SchedulerConfig
	cron     *cron.Cron
	logger   arbor.ILogger
	mu       sync.Mutex
	running  bool
}

// NewService creates a new scheduler service
func NewService(pipelineService *pipeline.Service, config *common.SchedulerConfig, logger arbor.ILogger) *Service {
	return &Service{
		pipeline: pipelineService,
		config:   config,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers the refresh job and begins the scheduler. Disabled
// configuration is a no-op.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Debug().Msg("Scheduler disabled")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	_, err := s.cron.AddFunc(s.config.Schedule, s.refresh)
	if err != nil {
		return fmt.Errorf("invalid scheduler cron expression %q: %w", s.config.Schedule, err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", s.config.Schedule).
		Str("state", s.config.State).
		Str("day", s.config.Day).
		Msg("Scheduler started")

	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Service) refresh() {
	s.logger.Info().
		Str("state", s.config.State).
		Str("day", s.config.Day).
		Msg("Scheduled cause-list refresh starting")

	outcome := s.pipeline.RefreshCauseList(context.Background(), s.config.State, s.config.Day)
	if !outcome.Succeeded {
		s.logger.Warn().Str("diagnostic", outcome.Diagnostic).Msg("Scheduled refresh failed")
		return
	}

	s.logger.Info().Msg("Scheduled refresh complete")
}
