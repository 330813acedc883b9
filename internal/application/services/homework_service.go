package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/ports"
)

// HomeworkService maintains the homework collection together with the sticky
// subject and status filters. Filters are plain state replacement and take
// effect on the next read; the visible list is recomputed on every call.
type HomeworkService struct {
	homeworkRepo ports.HomeworkRepository
	clock        ports.Clock
	notifier     ports.Notifier
	logger       *logger.Logger

	mu            sync.RWMutex
	subjectFilter *string
	statusFilter  ports.StatusFilter
}

// NewHomeworkService creates a new homework service
func NewHomeworkService(homeworkRepo ports.HomeworkRepository, clock ports.Clock, notifier ports.Notifier, logger *logger.Logger) *HomeworkService {
	return &HomeworkService{
		homeworkRepo: homeworkRepo,
		clock:        clock,
		notifier:     notifier,
		logger:       logger,
		statusFilter: ports.StatusFilterAll,
	}
}

// SetSubjectFilter selects a single subject, or all subjects when nil.
func (s *HomeworkService) SetSubjectFilter(subject *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjectFilter = subject
}

// SetStatusFilter selects the completion bucket.
func (s *HomeworkService) SetStatusFilter(filter ports.StatusFilter) error {
	if !filter.IsValid() {
		return fmt.Errorf("status filter %q: %w", filter, entities.ErrInvalidFilter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusFilter = filter
	return nil
}

// Filters returns the current filter selection.
func (s *HomeworkService) Filters() (*string, ports.StatusFilter) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subjectFilter, s.statusFilter
}

// VisibleItems returns the items passing both filters, in insertion order,
// each with its urgency label freshly derived from the clock.
func (s *HomeworkService) VisibleItems(ctx context.Context) ([]ports.HomeworkItemView, error) {
	items, err := s.homeworkRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list homework: %w", err)
	}

	s.mu.RLock()
	subject, status := s.subjectFilter, s.statusFilter
	s.mu.RUnlock()

	now := s.clock.Now()
	views := make([]ports.HomeworkItemView, 0, len(items))
	for _, item := range items {
		if subject != nil && item.Subject != *subject {
			continue
		}
		if !status.Matches(item.Status) {
			continue
		}
		views = append(views, ports.HomeworkItemView{
			HomeworkItem: item,
			UrgencyLabel: entities.UrgencyLabel(item.DueAt, now),
		})
	}

	return views, nil
}

// Subjects returns the distinct subject set in first-seen order, for the
// filter chips.
func (s *HomeworkService) Subjects(ctx context.Context) ([]string, error) {
	items, err := s.homeworkRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list homework: %w", err)
	}

	seen := make(map[string]bool, len(items))
	subjects := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item.Subject] {
			seen[item.Subject] = true
			subjects = append(subjects, item.Subject)
		}
	}

	return subjects, nil
}

// Toggle flips an item's completion state. Unknown ids fail without touching
// the collection. Two toggles return the item to its original status.
func (s *HomeworkService) Toggle(ctx context.Context, id string) (*entities.HomeworkItem, error) {
	item, err := s.homeworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle homework %q: %w", id, err)
	}

	item.Toggle()
	if err := s.homeworkRepo.UpdateStatus(ctx, id, item.Status); err != nil {
		return nil, fmt.Errorf("toggle homework %q: %w", id, err)
	}

	// Feedback is best-effort and must never fail the toggle.
	s.notifier.Notify("homework_toggled", map[string]interface{}{
		"homework_id": id,
		"status":      item.Status,
	})

	s.logger.Info("Homework status toggled", "homework_id", id, "status", item.Status)

	return item, nil
}
