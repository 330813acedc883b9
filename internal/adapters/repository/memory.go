package repository

import (
	"context"
	"sync"

	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/ports"
)

// In-memory stores for the dashboard data that the mobile app keeps
// client-side: the daily routine, the homework list and the progress cards.
// Contents reset on process restart.

// MemoryScheduleRepository holds the fixed daily routine.
type MemoryScheduleRepository struct {
	entries []entities.ScheduleEntry
}

// NewMemoryScheduleRepository creates a schedule store. Entries must already
// be validated via entities.NewScheduleEntry.
func NewMemoryScheduleRepository(entries []entities.ScheduleEntry) *MemoryScheduleRepository {
	return &MemoryScheduleRepository{entries: entries}
}

func (r *MemoryScheduleRepository) List(ctx context.Context) ([]entities.ScheduleEntry, error) {
	out := make([]entities.ScheduleEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// MemoryHomeworkRepository holds homework items in insertion order.
type MemoryHomeworkRepository struct {
	mu    sync.RWMutex
	items []entities.HomeworkItem
	index map[string]int
}

// NewMemoryHomeworkRepository creates a homework store seeded with items.
func NewMemoryHomeworkRepository(items []entities.HomeworkItem) *MemoryHomeworkRepository {
	r := &MemoryHomeworkRepository{
		items: make([]entities.HomeworkItem, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(r.items, items)
	for i, item := range r.items {
		r.index[item.ID] = i
	}
	return r
}

func (r *MemoryHomeworkRepository) List(ctx context.Context) ([]entities.HomeworkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.HomeworkItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MemoryHomeworkRepository) GetByID(ctx context.Context, id string) (*entities.HomeworkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, entities.ErrHomeworkNotFound
	}
	item := r.items[i]
	return &item, nil
}

func (r *MemoryHomeworkRepository) UpdateStatus(ctx context.Context, id string, status entities.HomeworkStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return entities.ErrHomeworkNotFound
	}
	r.items[i].Status = status
	return nil
}

// MemoryProgressRepository holds the dashboard progress cards.
type MemoryProgressRepository struct {
	cards []entities.ProgressCard
}

// NewMemoryProgressRepository creates a progress-card store.
func NewMemoryProgressRepository(cards []entities.ProgressCard) *MemoryProgressRepository {
	return &MemoryProgressRepository{cards: cards}
}

func (r *MemoryProgressRepository) List(ctx context.Context) ([]entities.ProgressCard, error) {
	out := make([]entities.ProgressCard, len(r.cards))
	copy(out, r.cards)
	return out, nil
}

var _ ports.ScheduleRepository = (*MemoryScheduleRepository)(nil)
var _ ports.HomeworkRepository = (*MemoryHomeworkRepository)(nil)
var _ ports.ProgressRepository = (*MemoryProgressRepository)(nil)
