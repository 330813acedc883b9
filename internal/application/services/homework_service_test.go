package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolday/core/internal/adapters/repository"
	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/ports"
)

func newHomeworkFixture(t *testing.T) (*HomeworkService, *fakeTimeline, *recordingNotifier) {
	t.Helper()
	tl := newFakeTimeline()
	day := 24 * time.Hour

	items := []entities.HomeworkItem{
		{ID: "1", Subject: "Mathematics", Description: "Algebra exercises", DueAt: tl.Now(), Status: entities.HomeworkStatusPending, Priority: entities.PriorityHigh},
		{ID: "2", Subject: "Science", Description: "Solar system model", DueAt: tl.Now().Add(5 * day), Status: entities.HomeworkStatusPending, Priority: entities.PriorityMedium},
		{ID: "3", Subject: "English", Description: "Friendship essay", DueAt: tl.Now().Add(-5 * day), Status: entities.HomeworkStatusOverdue, Priority: entities.PriorityHigh},
		{ID: "4", Subject: "Mathematics", Description: "Geometry practice", DueAt: tl.Now().Add(-2 * day), Status: entities.HomeworkStatusCompleted, Priority: entities.PriorityMedium},
	}

	repo := repository.NewMemoryHomeworkRepository(items)
	notifier := &recordingNotifier{}
	svc := NewHomeworkService(repo, tl, notifier, logger.NewNop())
	return svc, tl, notifier
}

func visibleIDs(t *testing.T, svc *HomeworkService) []string {
	t.Helper()
	views, err := svc.VisibleItems(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestHomeworkVisibleItemsDefault(t *testing.T) {
	svc, _, _ := newHomeworkFixture(t)

	// No filters: everything, in insertion order.
	assert.Equal(t, []string{"1", "2", "3", "4"}, visibleIDs(t, svc))
}

func TestHomeworkStatusFilter(t *testing.T) {
	svc, _, _ := newHomeworkFixture(t)

	require.NoError(t, svc.SetStatusFilter(ports.StatusFilterPending))
	// Overdue counts as not-completed, so it shows under pending.
	assert.Equal(t, []string{"1", "2", "3"}, visibleIDs(t, svc))

	require.NoError(t, svc.SetStatusFilter(ports.StatusFilterCompleted))
	assert.Equal(t, []string{"4"}, visibleIDs(t, svc))

	require.NoError(t, svc.SetStatusFilter(ports.StatusFilterAll))
	assert.Equal(t, []string{"1", "2", "3", "4"}, visibleIDs(t, svc))
}

func TestHomeworkInvalidStatusFilter(t *testing.T) {
	svc, _, _ := newHomeworkFixture(t)

	err := svc.SetStatusFilter(ports.StatusFilter("done"))
	assert.ErrorIs(t, err, entities.ErrInvalidFilter)

	// The previous selection stays in effect.
	assert.Equal(t, []string{"1", "2", "3", "4"}, visibleIDs(t, svc))
}

func TestHomeworkFilterConjunction(t *testing.T) {
	svc, _, _ := newHomeworkFixture(t)

	math := "Mathematics"
	svc.SetSubjectFilter(&math)
	require.NoError(t, svc.SetStatusFilter(ports.StatusFilterPending))

	assert.Equal(t, []string{"1"}, visibleIDs(t, svc))

	// Filters are sticky until replaced.
	assert.Equal(t, []string{"1"}, visibleIDs(t, svc))

	svc.SetSubjectFilter(nil)
	assert.Equal(t, []string{"1", "2", "3"}, visibleIDs(t, svc))
}

func TestHomeworkUrgencyLabels(t *testing.T) {
	svc, tl, _ := newHomeworkFixture(t)

	views, err := svc.VisibleItems(context.Background())
	require.NoError(t, err)

	labels := make(map[string]string)
	for _, v := range views {
		labels[v.ID] = v.UrgencyLabel
	}

	assert.Equal(t, "Due Today", labels["1"])
	assert.Equal(t, "Due in 5 days", labels["2"])
	assert.Equal(t, "Overdue", labels["3"])
	assert.Equal(t, "Overdue", labels["4"])

	// Labels track the clock, not stored state.
	tl.Advance(24 * time.Hour)
	views, err = svc.VisibleItems(context.Background())
	require.NoError(t, err)
	for _, v := range views {
		if v.ID == "1" {
			assert.Equal(t, "Overdue", v.UrgencyLabel)
		}
	}
}

func TestHomeworkSubjects(t *testing.T) {
	svc, _, _ := newHomeworkFixture(t)

	subjects, err := svc.Subjects(context.Background())
	require.NoError(t, err)

	// Distinct, first-seen order.
	assert.Equal(t, []string{"Mathematics", "Science", "English"}, subjects)
}

func TestHomeworkToggle(t *testing.T) {
	svc, _, notifier := newHomeworkFixture(t)
	ctx := context.Background()

	item, err := svc.Toggle(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, entities.HomeworkStatusCompleted, item.Status)

	item, err = svc.Toggle(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, entities.HomeworkStatusPending, item.Status)

	// Overdue toggles straight to completed.
	item, err = svc.Toggle(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, entities.HomeworkStatusCompleted, item.Status)

	notifier.mu.Lock()
	events := len(notifier.events)
	notifier.mu.Unlock()
	assert.Equal(t, 3, events)
}

func TestHomeworkToggleUnknownID(t *testing.T) {
	svc, _, notifier := newHomeworkFixture(t)

	before := visibleIDs(t, svc)

	_, err := svc.Toggle(context.Background(), "999")
	assert.ErrorIs(t, err, entities.ErrHomeworkNotFound)

	// Nothing moved and no feedback fired.
	assert.Equal(t, before, visibleIDs(t, svc))
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Empty(t, notifier.events)
}
