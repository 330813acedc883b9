package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/config"
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/ports"
)

// ThreadService owns the parent-teacher message thread: an append-only log
// plus the delivery escalation timers. All state lives behind one mutex;
// timer callbacks and HTTP requests may race and the lock arbitrates.
type ThreadService struct {
	cfg       config.ThreadConfig
	clock     ports.Clock
	scheduler ports.Scheduler
	notifier  ports.Notifier
	logger    *logger.Logger

	mu           sync.Mutex
	messages     []entities.Message
	timerSeq     uint64
	timers       map[uint64]ports.CancelFunc
	typing       bool
	typingCancel ports.CancelFunc
	closed       bool
}

// NewThreadService creates a new thread service seeded with the given
// initial log.
func NewThreadService(cfg config.ThreadConfig, clock ports.Clock, scheduler ports.Scheduler, notifier ports.Notifier, logger *logger.Logger, seed []entities.Message) *ThreadService {
	return &ThreadService{
		cfg:       cfg,
		clock:     clock,
		scheduler: scheduler,
		notifier:  notifier,
		logger:    logger,
		messages:  append([]entities.Message(nil), seed...),
		timers:    make(map[uint64]ports.CancelFunc),
	}
}

// Send appends a parent message and arms its delivery escalation. Empty or
// whitespace-only text fails without touching the log. Each send restarts
// the typing indicator.
func (s *ThreadService) Send(text string) (*entities.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, entities.ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, entities.ErrThreadClosed
	}

	msg := entities.Message{
		ID:     uuid.New(),
		Sender: entities.SenderParent,
		Text:   trimmed,
		SentAt: s.clock.Now(),
		Status: entities.MessageStatusSent,
	}
	s.messages = append(s.messages, msg)

	// Each message escalates independently; capture its id, not an index.
	id := msg.ID
	s.armLocked(s.cfg.DeliveredDelay, func() {
		s.escalate(id, entities.MessageStatusDelivered)
	})
	s.armLocked(s.cfg.ReadDelay, func() {
		s.escalate(id, entities.MessageStatusRead)
	})

	s.startTypingLocked()

	s.logger.Info("Message sent", "message_id", id, "length", len(trimmed))

	return &msg, nil
}

// Receive appends a teacher message. Teacher messages carry no delivery
// lifecycle and are created already read.
func (s *ThreadService) Receive(text string) (*entities.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, entities.ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, entities.ErrThreadClosed
	}

	msg := entities.Message{
		ID:     uuid.New(),
		Sender: entities.SenderTeacher,
		Text:   trimmed,
		SentAt: s.clock.Now(),
		Status: entities.MessageStatusRead,
	}
	s.messages = append(s.messages, msg)

	return &msg, nil
}

// View returns the full log, oldest first, plus the typing flag.
func (s *ThreadService) View() *ports.ThreadView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &ports.ThreadView{
		Messages: append([]entities.Message(nil), s.messages...),
		Typing:   s.typing,
	}
}

// Messages returns a copy of the log.
func (s *ThreadService) Messages() []entities.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Message(nil), s.messages...)
}

// Typing reports whether the typing indicator is currently up.
func (s *ThreadService) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// Close cancels every outstanding timer and freezes the thread. Timers that
// fire after Close are silent no-ops. Safe to call more than once.
func (s *ThreadService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, cancel := range s.timers {
		cancel()
	}
	s.timers = nil

	if s.typingCancel != nil {
		s.typingCancel()
		s.typingCancel = nil
	}
	s.typing = false

	return nil
}

// armLocked registers a one-shot timer under a fresh key and drops the
// cancel token once the timer fires, so the registry only ever holds
// outstanding timers. Caller holds the lock.
func (s *ThreadService) armLocked(d time.Duration, fn func()) {
	s.timerSeq++
	key := s.timerSeq
	s.timers[key] = s.scheduler.After(d, func() {
		fn()
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
	})
}

// escalate is the timer callback. It applies exactly one forward transition
// and never reorders a message's lifecycle: a read timer firing before the
// delivered timer finds no direct successor and does nothing.
func (s *ThreadService) escalate(id uuid.UUID, target entities.MessageStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	for i := range s.messages {
		if s.messages[i].ID != id {
			continue
		}
		if s.messages[i].Advance(target) {
			s.notifier.Notify("message_status", map[string]interface{}{
				"message_id": id,
				"status":     target,
			})
		}
		return
	}
}

// startTypingLocked raises the typing indicator and restarts its clear
// timer. Caller holds the lock.
func (s *ThreadService) startTypingLocked() {
	if s.typingCancel != nil {
		s.typingCancel()
	}
	s.typing = true
	s.typingCancel = s.scheduler.After(s.cfg.TypingDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.typing = false
	})
}
