package notify

import (
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/ports"
)

// LogNotifier records feedback events in the application log. It stands in
// for the push/haptic channel; delivery failures are invisible to callers.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a new log-backed notifier
func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithComponent("notify")}
}

// Notify logs the event and returns immediately.
func (n *LogNotifier) Notify(event string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, "event", event)
	for k, v := range fields {
		args = append(args, k, v)
	}
	n.logger.Infow("Feedback event", args...)
}

var _ ports.Notifier = (*LogNotifier)(nil)
