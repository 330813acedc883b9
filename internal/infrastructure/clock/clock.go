package clock

import (
	"sync"
	"time"

	"github.com/schoolday/core/internal/ports"
)

// SystemClock reads the wall clock.
type SystemClock struct{}

// NewSystemClock creates the production clock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// TimerScheduler schedules callbacks on the runtime timer wheel. Each
// scheduled callback hands back a cancellation token; cancelling after the
// fire is a no-op.
type TimerScheduler struct{}

// NewTimerScheduler creates the production scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (TimerScheduler) After(d time.Duration, fn func()) ports.CancelFunc {
	t := time.AfterFunc(d, fn)
	var once sync.Once
	return func() {
		once.Do(func() { t.Stop() })
	}
}
