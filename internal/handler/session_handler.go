package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionHandler handles session snapshot HTTP requests
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// parseWorkspaceID extracts and validates the workspace UUID path parameter
func parseWorkspaceID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("workspaceId"))
}

// GetSession handles GET /api/v1/workspaces/:workspaceId/session
func (h *SessionHandler) GetSession(c echo.Context) error {
	workspaceID, err := parseWorkspaceID(c)
	if err != nil {
		return NewValidationError(c, "Invalid workspace ID", nil)
	}

	session, err := h.sessionService.GetSession(workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return NewNotFoundError(c, "Session not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get session")
		return NewInternalError(c, "Failed to get session")
	}

	return c.JSON(http.StatusOK, session)
}

// PutSession handles PUT /api/v1/workspaces/:workspaceId/session
// The whole snapshot is replaced on every edit; there is no partial patch
func (h *SessionHandler) PutSession(c echo.Context) error {
	workspaceID, err := parseWorkspaceID(c)
	if err != nil {
		return NewValidationError(c, "Invalid workspace ID", nil)
	}

	var session domain.Session
	if err := c.Bind(&session); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.sessionService.PutSession(workspaceID, &session); err != nil {
		if field, ok := sessionValidationField(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: field, Message: err.Error()},
			})
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to store session")
		return NewInternalError(c, "Failed to store session")
	}

	log.Info().Str("workspace_id", workspaceID.String()).Msg("Session updated")

	return c.JSON(http.StatusOK, session)
}

// sessionValidationField maps a session validation error to the offending
// request field for the problem-details response
func sessionValidationField(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrHorizonInvalid):
		return "horizonYears", true
	case errors.Is(err, domain.ErrMemberNameEmpty), errors.Is(err, domain.ErrMemberIncomeNegative):
		return "members", true
	case errors.Is(err, domain.ErrBucketNameEmpty), errors.Is(err, domain.ErrBucketKindInvalid), errors.Is(err, domain.ErrBucketOwnerMissing):
		return "buckets", true
	case errors.Is(err, domain.ErrGoalNameEmpty), errors.Is(err, domain.ErrGoalTargetNegative):
		return "goals", true
	case errors.Is(err, domain.ErrDebtNameEmpty), errors.Is(err, domain.ErrDebtPlanMissing), errors.Is(err, domain.ErrDebtPlanInvalid):
		return "debts", true
	case errors.Is(err, domain.ErrTemplateNameEmpty), errors.Is(err, domain.ErrTemplateAmountNegative):
		return "templates", true
	case errors.Is(err, domain.ErrRuleSourceInvalid), errors.Is(err, domain.ErrRuleDestinationInvalid):
		return "rules", true
	case errors.Is(err, domain.ErrNameTooLong):
		return "name", true
	}
	return "", false
}
