package entities

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrHomeworkNotFound = errors.New("homework item not found")
	ErrEntryNotFound    = errors.New("schedule entry not found")
	ErrEmptyMessage     = errors.New("message text is empty")
	ErrInvalidInterval  = errors.New("schedule interval end must be after start")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidBatch     = errors.New("invalid batch")
	ErrBatchRequired    = errors.New("batch is required for students")
	ErrInvalidThemeMode = errors.New("invalid theme mode")
	ErrInvalidFilter    = errors.New("invalid status filter")
	ErrThreadClosed     = errors.New("message thread is closed")
	ErrUnauthorized     = errors.New("unauthorized")
)

// Enums and types
type UserRole string

const (
	UserRoleStudent UserRole = "Student"
	UserRoleTeacher UserRole = "Teacher"
	UserRoleIntern  UserRole = "Intern"
)

type Batch string

const (
	BatchMorning   Batch = "morning"
	BatchAfternoon Batch = "afternoon"
	BatchBoth      Batch = "Both"
)

type ScheduleStatus string

const (
	ScheduleStatusUpcoming   ScheduleStatus = "upcoming"
	ScheduleStatusInProgress ScheduleStatus = "in_progress"
	ScheduleStatusCompleted  ScheduleStatus = "completed"
)

type HomeworkStatus string

const (
	HomeworkStatusPending   HomeworkStatus = "pending"
	HomeworkStatusCompleted HomeworkStatus = "completed"
	HomeworkStatusOverdue   HomeworkStatus = "overdue"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Sender string

const (
	SenderParent  Sender = "parent"
	SenderTeacher Sender = "teacher"
	SenderSystem  Sender = "system"
)

type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

type Mood string

const (
	MoodFocused Mood = "focused"
	MoodCalm    Mood = "calm"
	MoodHappy   Mood = "happy"
)

// ScheduleEntry represents one labeled interval of the fixed daily routine.
// Entries are immutable once created; the daily set is fixed at load.
type ScheduleEntry struct {
	ID          string `json:"id"`
	Activity    string `json:"activity"`
	Icon        string `json:"icon"`
	StartHour   int    `json:"start_hour"`
	StartMinute int    `json:"start_minute"`
	EndHour     int    `json:"end_hour"`
	EndMinute   int    `json:"end_minute"`
	Description string `json:"description,omitempty"`
}

// NewScheduleEntry validates the interval at construction. A malformed
// interval (end not after start, or fields out of range) is rejected here so
// classification never has to deal with one.
func NewScheduleEntry(id, activity, icon string, startHour, startMinute, endHour, endMinute int, description string) (ScheduleEntry, error) {
	if startHour < 0 || startHour > 23 || endHour < 0 || endHour > 23 ||
		startMinute < 0 || startMinute > 59 || endMinute < 0 || endMinute > 59 {
		return ScheduleEntry{}, fmt.Errorf("entry %q: %w", id, ErrInvalidInterval)
	}
	if endHour*60+endMinute <= startHour*60+startMinute {
		return ScheduleEntry{}, fmt.Errorf("entry %q: %w", id, ErrInvalidInterval)
	}
	return ScheduleEntry{
		ID:          id,
		Activity:    activity,
		Icon:        icon,
		StartHour:   startHour,
		StartMinute: startMinute,
		EndHour:     endHour,
		EndMinute:   endMinute,
		Description: description,
	}, nil
}

// Classify places the entry relative to now's time of day. The result is
// always derived from the clock, never stored.
func (e ScheduleEntry) Classify(now time.Time) ScheduleStatus {
	t := now.Hour()*60 + now.Minute()
	s := e.StartHour*60 + e.StartMinute
	end := e.EndHour*60 + e.EndMinute

	switch {
	case t < s:
		return ScheduleStatusUpcoming
	case t < end:
		return ScheduleStatusInProgress
	default:
		return ScheduleStatusCompleted
	}
}

// TimeRange renders the interval the way the dashboard shows it,
// e.g. "9:00 AM - 9:30 AM".
func (e ScheduleEntry) TimeRange() string {
	return fmt.Sprintf("%s - %s",
		formatClock(e.StartHour, e.StartMinute),
		formatClock(e.EndHour, e.EndMinute))
}

func formatClock(hour, minute int) string {
	t := time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}

// HomeworkItem represents a homework assignment. Status is persisted state
// flipped by Toggle; the urgency label is a display-time fact computed from
// DueAt and is never written back.
type HomeworkItem struct {
	ID           string         `json:"id"`
	Subject      string         `json:"subject"`
	Description  string         `json:"description"`
	DueAt        time.Time      `json:"due_at"`
	Status       HomeworkStatus `json:"status"`
	Priority     Priority       `json:"priority"`
	Attachments  int            `json:"attachments,omitempty"`
	TeacherNotes string         `json:"teacher_notes,omitempty"`
}

// Toggle flips completion state. Anything not completed (including an item
// seeded as overdue) becomes completed; completed goes back to pending.
func (h *HomeworkItem) Toggle() {
	if h.Status == HomeworkStatusCompleted {
		h.Status = HomeworkStatusPending
	} else {
		h.Status = HomeworkStatusCompleted
	}
}

// IsCompleted reports whether the item has been marked done.
func (h *HomeworkItem) IsCompleted() bool {
	return h.Status == HomeworkStatusCompleted
}

// UrgencyLabel describes dueAt relative to now at calendar-day granularity.
// Both timestamps are normalized to local midnight first so "Due Today" means
// today regardless of the hour.
func UrgencyLabel(dueAt, now time.Time) string {
	due := midnight(dueAt)
	today := midnight(now)
	// The gap between consecutive local midnights is 23h or 25h on DST
	// transition days, so the hour difference must be rounded, not truncated.
	days := int(math.Round(due.Sub(today).Hours() / 24))

	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Due Today"
	case days == 1:
		return "Due Tomorrow"
	case days <= 7:
		return fmt.Sprintf("Due in %d days", days)
	default:
		return due.Format("1/2/2006")
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Message represents one entry in the parent-teacher thread. Only parent
// messages carry a delivery lifecycle; teacher and system messages are
// created read.
type Message struct {
	ID          uuid.UUID     `json:"id"`
	Sender      Sender        `json:"sender"`
	Text        string        `json:"text"`
	SentAt      time.Time     `json:"sent_at"`
	Status      MessageStatus `json:"status"`
	Attachments []string      `json:"attachments,omitempty"`
}

// HasLifecycle reports whether the message escalates through delivery states.
func (m *Message) HasLifecycle() bool {
	return m.Sender == SenderParent
}

// Advance moves the delivery status one step forward if target is the direct
// successor of the current state. Transitions are strictly linear
// (sent -> delivered -> read); any other combination is ignored.
func (m *Message) Advance(target MessageStatus) bool {
	if !m.HasLifecycle() {
		return false
	}
	switch {
	case m.Status == MessageStatusSent && target == MessageStatusDelivered:
		m.Status = MessageStatusDelivered
		return true
	case m.Status == MessageStatusDelivered && target == MessageStatusRead:
		m.Status = MessageStatusRead
		return true
	}
	return false
}

// ProgressCard is one of the dashboard's progress summaries.
type ProgressCard struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	Progress     int    `json:"progress"`
	LastActivity string `json:"last_activity"`
	Mood         Mood   `json:"mood,omitempty"`
	Icon         string `json:"icon"`
}

// User represents a registered account with its profile document.
type User struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	Username         string     `json:"username" db:"username"`
	Email            string     `json:"email" db:"email"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	Age              int        `json:"age" db:"age"`
	Role             UserRole   `json:"role" db:"role"`
	Batch            *Batch     `json:"batch,omitempty" db:"batch"`
	Phone            string     `json:"phone" db:"phone"`
	EmergencyContact *string    `json:"emergency_contact,omitempty" db:"emergency_contact"`
	Address          string     `json:"address" db:"address"`
	Grade            *string    `json:"grade,omitempty" db:"grade"`
	GuardianName     *string    `json:"guardian_name,omitempty" db:"guardian_name"`
	BloodGroup       *string    `json:"blood_group,omitempty" db:"blood_group"`
	StudentID        *string    `json:"student_id,omitempty" db:"student_id"`
	JoinDate         time.Time  `json:"join_date" db:"join_date"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Validate enforces the profile schema: batch is mandatory for students and
// role/batch values must come from their closed sets.
func (u *User) Validate() error {
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	if u.Role == UserRoleStudent && u.Batch == nil {
		return ErrBatchRequired
	}
	if u.Batch != nil && !u.Batch.IsValid() {
		return ErrInvalidBatch
	}
	return nil
}

// Utility methods
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleStudent, UserRoleTeacher, UserRoleIntern:
		return true
	default:
		return false
	}
}

func (b Batch) IsValid() bool {
	switch b {
	case BatchMorning, BatchAfternoon, BatchBoth:
		return true
	default:
		return false
	}
}

func (s HomeworkStatus) IsValid() bool {
	switch s {
	case HomeworkStatusPending, HomeworkStatusCompleted, HomeworkStatusOverdue:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func (s Sender) IsValid() bool {
	switch s {
	case SenderParent, SenderTeacher, SenderSystem:
		return true
	default:
		return false
	}
}

func (m Mood) IsValid() bool {
	switch m {
	case MoodFocused, MoodCalm, MoodHappy:
		return true
	default:
		return false
	}
}
