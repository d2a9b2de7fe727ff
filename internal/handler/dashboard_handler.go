package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard handles GET /api/v1/workspaces/:workspaceId/dashboard
// Returns the affordability summary and the with/without-rules comparison
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	workspaceID, err := parseWorkspaceID(c)
	if err != nil {
		return NewValidationError(c, "Invalid workspace ID", nil)
	}

	dashboard, err := h.dashboardService.GetDashboard(workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return NewNotFoundError(c, "Session not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to build dashboard")
		return NewInternalError(c, "Failed to build dashboard")
	}

	return c.JSON(http.StatusOK, dashboard)
}
