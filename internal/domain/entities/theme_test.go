package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThemeMode(t *testing.T) {
	mode, err := ParseThemeMode("dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeModeDark, mode)

	mode, err = ParseThemeMode("light")
	require.NoError(t, err)
	assert.Equal(t, ThemeModeLight, mode)

	_, err = ParseThemeMode("sepia")
	assert.ErrorIs(t, err, ErrInvalidThemeMode)

	_, err = ParseThemeMode("")
	assert.ErrorIs(t, err, ErrInvalidThemeMode)
}

func TestPalette(t *testing.T) {
	light := Palette(ThemeModeLight)
	dark := Palette(ThemeModeDark)

	assert.Equal(t, "#7C3AED", light.Primary)
	assert.Equal(t, "#FAFAFA", light.Background)
	assert.Equal(t, "#A78BFA", dark.Primary)
	assert.Equal(t, "#111827", dark.Background)

	// Unknown mode renders light rather than an empty palette.
	assert.Equal(t, light, Palette(ThemeMode("sepia")))
}

func TestMessageStatusIcon(t *testing.T) {
	assert.Equal(t, "check", MessageStatusIcon(MessageStatusSent))
	assert.Equal(t, "done-all", MessageStatusIcon(MessageStatusDelivered))
	assert.Equal(t, "done-all", MessageStatusIcon(MessageStatusRead))
	assert.Equal(t, "help-outline", MessageStatusIcon(MessageStatus("queued")))
}

func TestScheduleStatusIcon(t *testing.T) {
	assert.Equal(t, "schedule", ScheduleStatusIcon(ScheduleStatusUpcoming))
	assert.Equal(t, "pending", ScheduleStatusIcon(ScheduleStatusInProgress))
	assert.Equal(t, "check-circle", ScheduleStatusIcon(ScheduleStatusCompleted))
	assert.Equal(t, "help-outline", ScheduleStatusIcon(ScheduleStatus("paused")))
}

func TestMoodIcon(t *testing.T) {
	assert.Equal(t, "psychology", MoodIcon(MoodFocused))
	assert.Equal(t, "spa", MoodIcon(MoodCalm))
	assert.Equal(t, "sentiment-very-satisfied", MoodIcon(MoodHappy))
	assert.Equal(t, "sentiment-very-satisfied", MoodIcon(Mood("tired")))
}

func TestCardIcon(t *testing.T) {
	for _, name := range []string{"school", "people", "stars", "self-improvement", "restaurant", "edit"} {
		assert.Equal(t, name, CardIcon(name))
	}
	assert.Equal(t, "help-outline", CardIcon("rocket"))
	assert.Equal(t, "help-outline", CardIcon(""))
}

func TestPriorityColor(t *testing.T) {
	assert.Equal(t, "#ff4444", PriorityColor(PriorityHigh, ThemeModeLight))
	assert.Equal(t, "#ffaa00", PriorityColor(PriorityMedium, ThemeModeLight))
	assert.Equal(t, "#00c851", PriorityColor(PriorityLow, ThemeModeLight))

	// Fallback follows the mode's text color.
	assert.Equal(t, Palette(ThemeModeDark).Text, PriorityColor(Priority("urgent"), ThemeModeDark))
	assert.Equal(t, Palette(ThemeModeLight).Text, PriorityColor(Priority("urgent"), ThemeModeLight))
}

func TestHomeworkStatusColor(t *testing.T) {
	assert.Equal(t, "#00c851", HomeworkStatusColor(HomeworkStatusCompleted, ThemeModeLight))
	assert.Equal(t, "#ff4444", HomeworkStatusColor(HomeworkStatusOverdue, ThemeModeDark))
	assert.Equal(t, Palette(ThemeModeLight).Primary, HomeworkStatusColor(HomeworkStatusPending, ThemeModeLight))
	assert.Equal(t, Palette(ThemeModeDark).Primary, HomeworkStatusColor(HomeworkStatusPending, ThemeModeDark))
}
