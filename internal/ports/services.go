package ports

import (
	"time"

	"github.com/schoolday/core/internal/domain/entities"
)

// Clock supplies the current time. Engines never call time.Now directly so
// tests can pin the clock.
type Clock interface {
	Now() time.Time
}

// CancelFunc cancels a scheduled callback. Safe to call more than once and
// after the callback has fired.
type CancelFunc func()

// Scheduler runs a callback after a delay and hands back its cancellation
// token. Callbacks scheduled from the same origin with d1 < d2 fire in that
// relative order.
type Scheduler interface {
	After(d time.Duration, fn func()) CancelFunc
}

// Notifier delivers fire-and-forget feedback (push/haptic) for a user
// action. Implementations must never block the caller; errors are the
// implementation's to swallow.
type Notifier interface {
	Notify(event string, fields map[string]interface{})
}

// Claims carries the identity extracted from an access token.
type Claims struct {
	UserID string
	Email  string
	Role   entities.UserRole
}

// Request types

type RegisterRequest struct {
	Name             string            `json:"name" validate:"required"`
	Username         string            `json:"username" validate:"required,min=3,max=64"`
	Email            string            `json:"email" validate:"required,email"`
	Password         string            `json:"password" validate:"required,min=8"`
	Age              int               `json:"age" validate:"required,gt=0"`
	Role             entities.UserRole `json:"role" validate:"required"`
	Batch            *entities.Batch   `json:"batch,omitempty"`
	Phone            string            `json:"phone" validate:"required"`
	EmergencyContact *string           `json:"emergency_contact,omitempty"`
	Address          string            `json:"address" validate:"required"`
	Grade            *string           `json:"grade,omitempty"`
	GuardianName     *string           `json:"guardian_name,omitempty"`
	BloodGroup       *string           `json:"blood_group,omitempty"`
	StudentID        *string           `json:"student_id,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

type UpdateProfileRequest struct {
	Name             *string         `json:"name,omitempty"`
	Age              *int            `json:"age,omitempty" validate:"omitempty,gt=0"`
	Batch            *entities.Batch `json:"batch,omitempty"`
	Phone            *string         `json:"phone,omitempty"`
	EmergencyContact *string         `json:"emergency_contact,omitempty"`
	Address          *string         `json:"address,omitempty"`
	Grade            *string         `json:"grade,omitempty"`
	GuardianName     *string         `json:"guardian_name,omitempty"`
	BloodGroup       *string         `json:"blood_group,omitempty"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// StatusFilter is the homework completion bucket filter.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterPending   StatusFilter = "pending"
	StatusFilterCompleted StatusFilter = "completed"
)

func (f StatusFilter) IsValid() bool {
	switch f {
	case StatusFilterAll, StatusFilterPending, StatusFilterCompleted:
		return true
	default:
		return false
	}
}

// Matches reports whether an item's stored status falls in the bucket.
// Overdue items count as not-completed, so they show under "pending".
func (f StatusFilter) Matches(status entities.HomeworkStatus) bool {
	switch f {
	case StatusFilterPending:
		return status != entities.HomeworkStatusCompleted
	case StatusFilterCompleted:
		return status == entities.HomeworkStatusCompleted
	default:
		return true
	}
}

// View types returned to handlers

// ScheduleEntryView is a schedule entry with its live classification.
type ScheduleEntryView struct {
	entities.ScheduleEntry
	Status     entities.ScheduleStatus `json:"status"`
	StatusIcon string                  `json:"status_icon"`
	TimeRange  string                  `json:"time_range"`
}

// HomeworkItemView is a homework item with its display-time urgency label.
type HomeworkItemView struct {
	entities.HomeworkItem
	UrgencyLabel string `json:"urgency_label"`
}

// ThreadView is the full message log plus the typing signal.
type ThreadView struct {
	Messages []entities.Message `json:"messages"`
	Typing   bool               `json:"typing"`
}

// DashboardView is the aggregate the home screen renders.
type DashboardView struct {
	ProgressCards []entities.ProgressCard `json:"progress_cards"`
	Schedule      []ScheduleEntryView     `json:"schedule"`
	CurrentTime   time.Time               `json:"current_time"`
}
