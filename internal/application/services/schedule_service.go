package services

import (
	"context"
	"fmt"

	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/ports"
)

// ScheduleService classifies the daily routine against the current clock.
// Classification is recomputed on every read; nothing is cached between
// ticks.
type ScheduleService struct {
	scheduleRepo ports.ScheduleRepository
	clock        ports.Clock
	logger       *logger.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(scheduleRepo ports.ScheduleRepository, clock ports.Clock, logger *logger.Logger) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		clock:        clock,
		logger:       logger,
	}
}

// Snapshot returns every routine entry with its live status.
func (s *ScheduleService) Snapshot(ctx context.Context) ([]ports.ScheduleEntryView, error) {
	entries, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	now := s.clock.Now()
	views := make([]ports.ScheduleEntryView, 0, len(entries))
	for _, entry := range entries {
		status := entry.Classify(now)
		views = append(views, ports.ScheduleEntryView{
			ScheduleEntry: entry,
			Status:        status,
			StatusIcon:    entities.ScheduleStatusIcon(status),
			TimeRange:     entry.TimeRange(),
		})
	}

	return views, nil
}

// DashboardService aggregates the home screen data: progress cards plus the
// classified schedule.
type DashboardService struct {
	progressRepo ports.ProgressRepository
	schedule     *ScheduleService
	clock        ports.Clock
	logger       *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(progressRepo ports.ProgressRepository, schedule *ScheduleService, clock ports.Clock, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		progressRepo: progressRepo,
		schedule:     schedule,
		clock:        clock,
		logger:       logger,
	}
}

// Overview builds the dashboard snapshot.
func (s *DashboardService) Overview(ctx context.Context) (*ports.DashboardView, error) {
	cards, err := s.progressRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress cards: %w", err)
	}

	schedule, err := s.schedule.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardView{
		ProgressCards: cards,
		Schedule:      schedule,
		CurrentTime:   s.clock.Now(),
	}, nil
}
