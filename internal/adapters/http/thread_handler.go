package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolday/core/internal/application/services"
	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/ports"
)

// ThreadHandler handles the parent-teacher message thread
type ThreadHandler struct {
	threadService *services.ThreadService
	logger        *logger.Logger
}

// NewThreadHandler creates a new thread handler
func NewThreadHandler(threadService *services.ThreadService, logger *logger.Logger) *ThreadHandler {
	return &ThreadHandler{
		threadService: threadService,
		logger:        logger,
	}
}

// GetThread returns the message log, oldest first, plus the typing flag
func (h *ThreadHandler) GetThread(c echo.Context) error {
	return c.JSON(http.StatusOK, h.threadService.View())
}

// SendMessage appends a parent message. Empty or whitespace-only text is
// rejected without mutating the log.
func (h *ThreadHandler) SendMessage(c echo.Context) error {
	var req ports.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	msg, err := h.threadService.Send(req.Text)
	if err != nil {
		if errors.Is(err, entities.ErrEmptyMessage) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Message text cannot be empty")
		}
		h.logger.Error("Send message failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}

	return c.JSON(http.StatusCreated, msg)
}

// ReceiveMessage appends a teacher reply. Replies carry no delivery
// lifecycle and land in the log already read.
func (h *ThreadHandler) ReceiveMessage(c echo.Context) error {
	var req ports.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	msg, err := h.threadService.Receive(req.Text)
	if err != nil {
		if errors.Is(err, entities.ErrEmptyMessage) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Message text cannot be empty")
		}
		h.logger.Error("Post reply failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to post reply")
	}

	return c.JSON(http.StatusCreated, msg)
}
