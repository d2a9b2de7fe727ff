package handler

import (
	"net/http"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// GoalHandler handles goal fund projection and planning HTTP requests
type GoalHandler struct{}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// PreviewGoalRequest represents the goal projection preview request body
type PreviewGoalRequest struct {
	Goal         *domain.GoalFund `json:"goal"`
	CurrentMonth string           `json:"currentMonth"`
	Months       int              `json:"months"`
}

// PreviewGoal handles POST /api/v1/goals/preview
func (h *GoalHandler) PreviewGoal(c echo.Context) error {
	var req PreviewGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	goal, current, err := validateGoalRequest(c, req.Goal, req.CurrentMonth)
	if err != nil {
		return err
	}
	if req.Months < 1 || req.Months > 1200 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "months", Message: "Months must be between 1 and 1200"},
		})
	}

	projection := service.ProjectGoalFund(goal, current, req.Months)

	return c.JSON(http.StatusOK, projection)
}

// PlanGoalRequest represents the goal planner request body
type PlanGoalRequest struct {
	Goal         *domain.GoalFund `json:"goal"`
	CurrentMonth string           `json:"currentMonth"`
	// Solve selects the unknown: "monthly" derives the contribution from
	// the goal's target date, "targetDate" derives the date from the
	// goal's monthly contribution
	Solve string `json:"solve"`
}

// PlanGoalResponse represents the goal planner result
type PlanGoalResponse struct {
	Monthly    *domain.Cents `json:"monthly,omitempty"`
	TargetDate *string       `json:"targetDate,omitempty"`
	Reachable  bool          `json:"reachable"`
}

// PlanGoal handles POST /api/v1/goals/plan
// Solves the savings planner in either direction
func (h *GoalHandler) PlanGoal(c echo.Context) error {
	var req PlanGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	goal, current, err := validateGoalRequest(c, req.Goal, req.CurrentMonth)
	if err != nil {
		return err
	}

	switch req.Solve {
	case "monthly":
		monthly := service.GoalMonthlyForTargetDate(goal, current)
		return c.JSON(http.StatusOK, PlanGoalResponse{Monthly: &monthly, Reachable: true})
	case "targetDate":
		date, ok := service.GoalTargetDateForMonthly(goal, current)
		if !ok {
			return c.JSON(http.StatusOK, PlanGoalResponse{Reachable: false})
		}
		formatted := date.String()
		return c.JSON(http.StatusOK, PlanGoalResponse{TargetDate: &formatted, Reachable: true})
	default:
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "solve", Message: "Must be 'monthly' or 'targetDate'"},
		})
	}
}

func validateGoalRequest(c echo.Context, goal *domain.GoalFund, currentMonth string) (*domain.GoalFund, domain.YearMonth, error) {
	if goal == nil {
		return nil, domain.YearMonth{}, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "goal", Message: "Goal is required"},
		})
	}
	if err := goal.Validate(); err != nil {
		return nil, domain.YearMonth{}, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "goal", Message: err.Error()},
		})
	}
	current, err := domain.ParseYearMonth(currentMonth)
	if err != nil {
		return nil, domain.YearMonth{}, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currentMonth", Message: "Must be in YYYY-MM format"},
		})
	}
	return goal, current, nil
}
