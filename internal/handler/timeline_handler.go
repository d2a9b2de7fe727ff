package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// TimelineHandler handles timeline projection HTTP requests
type TimelineHandler struct {
	sessionService *service.SessionService
}

// NewTimelineHandler creates a new TimelineHandler
func NewTimelineHandler(sessionService *service.SessionService) *TimelineHandler {
	return &TimelineHandler{sessionService: sessionService}
}

// GetTimeline handles GET /api/v1/workspaces/:workspaceId/timeline
// The timeline is recomputed from the stored snapshot on every call
func (h *TimelineHandler) GetTimeline(c echo.Context) error {
	workspaceID, err := parseWorkspaceID(c)
	if err != nil {
		return NewValidationError(c, "Invalid workspace ID", nil)
	}

	timeline, err := h.sessionService.GetTimeline(workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return NewNotFoundError(c, "Session not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to build timeline")
		return NewInternalError(c, "Failed to build timeline")
	}

	return c.JSON(http.StatusOK, timeline)
}

// PreviewTimeline handles POST /api/v1/timeline/preview
// Computes a timeline from the request body without touching stored state,
// for what-if edits the client has not committed yet
func (h *TimelineHandler) PreviewTimeline(c echo.Context) error {
	var session domain.Session
	if err := c.Bind(&session); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := session.Validate(); err != nil {
		if field, ok := sessionValidationField(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: field, Message: err.Error()},
			})
		}
		return NewValidationError(c, "Validation failed", nil)
	}

	timeline := service.BuildTimeline(&session)

	return c.JSON(http.StatusOK, timeline)
}
