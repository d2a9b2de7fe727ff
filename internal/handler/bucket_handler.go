package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BucketHandler handles investment bucket HTTP requests
type BucketHandler struct {
	sessionService *service.SessionService
}

// NewBucketHandler creates a new BucketHandler
func NewBucketHandler(sessionService *service.SessionService) *BucketHandler {
	return &BucketHandler{sessionService: sessionService}
}

// PreviewGrowthRequest represents the growth projection preview request body
type PreviewGrowthRequest struct {
	StartingBalance     domain.Cents       `json:"startingBalance"`
	MonthlyContribution domain.Cents       `json:"monthlyContribution"`
	AnnualReturn        domain.BasisPoints `json:"annualReturn"`
	Months              int                `json:"months"`
	StartOffset         int                `json:"startOffset"`
}

// PreviewGrowth handles POST /api/v1/buckets/preview
// Stateless compound-growth projection with the simple-interest baseline
func (h *BucketHandler) PreviewGrowth(c echo.Context) error {
	var req PreviewGrowthRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Months < 1 || req.Months > 1200 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "months", Message: "Months must be between 1 and 1200"},
		})
	}
	if req.StartOffset < 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "startOffset", Message: "Start offset must not be negative"},
		})
	}

	projection := service.ProjectInvestmentGrowth(
		req.StartingBalance,
		req.MonthlyContribution,
		req.AnnualReturn,
		req.Months,
		req.StartOffset,
	)

	return c.JSON(http.StatusOK, projection)
}

// GetMemberRoom handles GET /api/v1/workspaces/:workspaceId/members/:memberId/room
// Returns the member's contribution room tally per restricted account kind
func (h *BucketHandler) GetMemberRoom(c echo.Context) error {
	workspaceID, err := parseWorkspaceID(c)
	if err != nil {
		return NewValidationError(c, "Invalid workspace ID", nil)
	}

	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		return NewValidationError(c, "Invalid member ID", nil)
	}

	kind := domain.AccountKind(c.QueryParam("kind"))
	if !kind.Restricted() {
		return NewValidationError(c, "Invalid kind parameter", []ValidationError{
			{Field: "kind", Message: "Must be 'tax_free' or 'tax_deferred'"},
		})
	}

	session, err := h.sessionService.GetSession(workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return NewNotFoundError(c, "Session not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get session")
		return NewInternalError(c, "Failed to get session")
	}

	member := session.Member(int32(memberID))
	if member == nil {
		return NewNotFoundError(c, "Member not found")
	}

	usage := service.ComputeRoomUsage(member, session.Buckets, kind, session.CurrentMonth)

	return c.JSON(http.StatusOK, usage)
}
