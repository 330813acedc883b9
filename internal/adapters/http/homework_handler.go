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

// HomeworkHandler handles homework list and toggle requests
type HomeworkHandler struct {
	homeworkService *services.HomeworkService
	logger          *logger.Logger
}

// NewHomeworkHandler creates a new homework handler
func NewHomeworkHandler(homeworkService *services.HomeworkService, logger *logger.Logger) *HomeworkHandler {
	return &HomeworkHandler{
		homeworkService: homeworkService,
		logger:          logger,
	}
}

// List returns the filtered homework view. Filter query params are sticky:
// they replace the stored selection before the list is computed, and an
// omitted param leaves the previous selection in place.
func (h *HomeworkHandler) List(c echo.Context) error {
	if subject, ok := queryParamSet(c, "subject"); ok {
		if subject == "" || subject == "all" {
			h.homeworkService.SetSubjectFilter(nil)
		} else {
			h.homeworkService.SetSubjectFilter(&subject)
		}
	}

	if status, ok := queryParamSet(c, "status"); ok {
		if err := h.homeworkService.SetStatusFilter(ports.StatusFilter(status)); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status filter")
		}
	}

	items, err := h.homeworkService.VisibleItems(c.Request().Context())
	if err != nil {
		h.logger.Error("List homework failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve homework")
	}

	subject, status := h.homeworkService.Filters()

	return c.JSON(http.StatusOK, HomeworkListResponse{
		Items:         items,
		SubjectFilter: subject,
		StatusFilter:  status,
	})
}

// Subjects returns the distinct subject chips in first-seen order
func (h *HomeworkHandler) Subjects(c echo.Context) error {
	subjects, err := h.homeworkService.Subjects(c.Request().Context())
	if err != nil {
		h.logger.Error("List subjects failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve subjects")
	}

	return c.JSON(http.StatusOK, subjects)
}

// Toggle flips a homework item's completion state
func (h *HomeworkHandler) Toggle(c echo.Context) error {
	id := c.Param("id")

	item, err := h.homeworkService.Toggle(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrHomeworkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Homework not found")
		}
		h.logger.Error("Toggle homework failed", "error", err, "homework_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle homework")
	}

	return c.JSON(http.StatusOK, item)
}

// queryParamSet distinguishes an absent query param from an empty one.
func queryParamSet(c echo.Context, name string) (string, bool) {
	values, ok := c.QueryParams()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// HomeworkListResponse is the homework screen payload: the visible items
// plus the filter selection that produced them.
type HomeworkListResponse struct {
	Items         []ports.HomeworkItemView `json:"items"`
	SubjectFilter *string                  `json:"subject_filter"`
	StatusFilter  ports.StatusFilter       `json:"status_filter"`
}
