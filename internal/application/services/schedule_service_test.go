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
)

func newScheduleFixture(t *testing.T) (*ScheduleService, *fakeTimeline) {
	t.Helper()
	entries, err := repository.SeedSchedule()
	require.NoError(t, err)

	tl := newFakeTimeline()
	svc := NewScheduleService(repository.NewMemoryScheduleRepository(entries), tl, logger.NewNop())
	return svc, tl
}

func TestScheduleSnapshot(t *testing.T) {
	svc, tl := newScheduleFixture(t)
	ctx := context.Background()

	// Fixture clock starts at 09:00: first entry just started, rest upcoming.
	views, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, views, 4)

	assert.Equal(t, entities.ScheduleStatusInProgress, views[0].Status)
	assert.Equal(t, "pending", views[0].StatusIcon)
	for _, v := range views[1:] {
		assert.Equal(t, entities.ScheduleStatusUpcoming, v.Status)
		assert.Equal(t, "schedule", v.StatusIcon)
	}

	// Mid-afternoon everything before the homework session is done.
	tl.Advance(5 * time.Hour)
	views, err = svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, entities.ScheduleStatusCompleted, views[0].Status)
	assert.Equal(t, entities.ScheduleStatusCompleted, views[1].Status)
	assert.Equal(t, entities.ScheduleStatusCompleted, views[2].Status)
	assert.Equal(t, entities.ScheduleStatusInProgress, views[3].Status)

	// After the day ends every entry is completed.
	tl.Advance(5 * time.Hour)
	views, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	for _, v := range views {
		assert.Equal(t, entities.ScheduleStatusCompleted, v.Status)
		assert.Equal(t, "check-circle", v.StatusIcon)
	}
}

func TestScheduleSnapshotTimeRange(t *testing.T) {
	svc, _ := newScheduleFixture(t)

	views, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "9:00 AM - 9:30 AM", views[0].TimeRange)
	assert.Equal(t, "12:30 PM - 1:30 PM", views[2].TimeRange)
}

func TestDashboardOverview(t *testing.T) {
	scheduleSvc, tl := newScheduleFixture(t)
	svc := NewDashboardService(repository.NewMemoryProgressRepository(repository.SeedProgress()), scheduleSvc, tl, logger.NewNop())

	view, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Len(t, view.ProgressCards, 3)
	assert.Len(t, view.Schedule, 4)
	assert.Equal(t, tl.Now(), view.CurrentTime)

	assert.Equal(t, "Academic Progress", view.ProgressCards[0].Category)
	assert.Equal(t, entities.MoodFocused, view.ProgressCards[0].Mood)
}
