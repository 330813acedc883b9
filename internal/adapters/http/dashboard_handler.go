package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolday/core/internal/application/services"
	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/logger"
)

// DashboardHandler serves the home screen aggregate and the schedule view
type DashboardHandler struct {
	dashboardService *services.DashboardService
	scheduleService  *services.ScheduleService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, scheduleService *services.ScheduleService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		scheduleService:  scheduleService,
		logger:           logger,
	}
}

// Overview returns progress cards plus the classified schedule
func (h *DashboardHandler) Overview(c echo.Context) error {
	view, err := h.dashboardService.Overview(c.Request().Context())
	if err != nil {
		h.logger.Error("Dashboard overview failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build dashboard")
	}

	return c.JSON(http.StatusOK, view)
}

// Schedule returns the routine entries with their live status
func (h *DashboardHandler) Schedule(c echo.Context) error {
	entries, err := h.scheduleService.Snapshot(c.Request().Context())
	if err != nil {
		h.logger.Error("Schedule snapshot failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build schedule")
	}

	return c.JSON(http.StatusOK, entries)
}

// ThemeHandler resolves color palettes
type ThemeHandler struct {
	logger *logger.Logger
}

// NewThemeHandler creates a new theme handler
func NewThemeHandler(logger *logger.Logger) *ThemeHandler {
	return &ThemeHandler{logger: logger}
}

// Palette returns the full color record for the requested mode
func (h *ThemeHandler) Palette(c echo.Context) error {
	mode, err := entities.ParseThemeMode(c.Param("mode"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid theme mode")
	}

	return c.JSON(http.StatusOK, entities.Palette(mode))
}
