package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/schoolday/core/internal/domain/entities"
)

// Demo seed data matching the mobile app's fixtures.

// SeedSchedule returns the fixed daily routine.
func SeedSchedule() ([]entities.ScheduleEntry, error) {
	specs := []struct {
		id, activity, icon     string
		startHour, startMinute int
		endHour, endMinute     int
		description            string
	}{
		{"1", "Prayer & Exercise", "self-improvement", 9, 0, 9, 30,
			"Start your day with mindfulness and physical activity"},
		{"2", "Learning Session", "school", 9, 30, 12, 30,
			"Core subjects and interactive learning"},
		{"3", "Lunch Break", "restaurant", 12, 30, 13, 30,
			"Nutritious meal and social time"},
		{"4", "Homework Session", "edit", 13, 30, 14, 30,
			"Guided study and homework completion"},
	}

	entries := make([]entities.ScheduleEntry, 0, len(specs))
	for _, s := range specs {
		entry, err := entities.NewScheduleEntry(s.id, s.activity, s.icon,
			s.startHour, s.startMinute, s.endHour, s.endMinute, s.description)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SeedHomework returns the demo homework list. Due dates are pinned relative
// to now so the urgency labels stay meaningful.
func SeedHomework(now time.Time) []entities.HomeworkItem {
	day := 24 * time.Hour
	return []entities.HomeworkItem{
		{
			ID:           "1",
			Subject:      "Mathematics",
			Description:  "Complete exercises 5.2 and 5.3 from textbook. Focus on algebraic equations and show all working steps.",
			DueAt:        now,
			Status:       entities.HomeworkStatusPending,
			Priority:     entities.PriorityHigh,
			Attachments:  2,
			TeacherNotes: "Please submit with proper working steps",
		},
		{
			ID:           "2",
			Subject:      "Science",
			Description:  "Create a model of the solar system showing all planets and their relative distances.",
			DueAt:        now.Add(5 * day),
			Status:       entities.HomeworkStatusPending,
			Priority:     entities.PriorityMedium,
			Attachments:  1,
			TeacherNotes: "Use the reference material shared in class",
		},
		{
			ID:           "3",
			Subject:      "English",
			Description:  "Write a 500-word essay on the theme of friendship in Shakespeare's works",
			DueAt:        now.Add(-5 * day),
			Status:       entities.HomeworkStatusOverdue,
			Priority:     entities.PriorityHigh,
			TeacherNotes: "Focus on at least two plays",
		},
		{
			ID:          "4",
			Subject:     "Mathematics",
			Description: "Practice geometric constructions from Chapter 7",
			DueAt:       now.Add(-2 * day),
			Status:      entities.HomeworkStatusCompleted,
			Priority:    entities.PriorityMedium,
			Attachments: 3,
		},
	}
}

// SeedProgress returns the demo progress cards.
func SeedProgress() []entities.ProgressCard {
	return []entities.ProgressCard{
		{ID: "1", Category: "Academic Progress", Progress: 75, LastActivity: "Mathematics", Mood: entities.MoodFocused, Icon: "school"},
		{ID: "2", Category: "Social Interaction", Progress: 60, LastActivity: "Group Prayer", Mood: entities.MoodCalm, Icon: "people"},
		{ID: "3", Category: "Daily Participation", Progress: 85, LastActivity: "Exercise Session", Mood: entities.MoodHappy, Icon: "stars"},
	}
}

// SeedMessages returns the thread's initial log: a day-old system welcome and
// an hour-old teacher greeting, both already read.
func SeedMessages(now time.Time) []entities.Message {
	return []entities.Message{
		{
			ID:     uuid.New(),
			Sender: entities.SenderSystem,
			Text:   "Welcome to the chat! You can communicate with the teacher here.",
			SentAt: now.Add(-24 * time.Hour),
			Status: entities.MessageStatusRead,
		},
		{
			ID:     uuid.New(),
			Sender: entities.SenderTeacher,
			Text:   "Hello! How can I help you today?",
			SentAt: now.Add(-time.Hour),
			Status: entities.MessageStatusRead,
		},
	}
}
