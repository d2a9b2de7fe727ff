package handler

import (
	"net/http"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DebtHandler handles debt schedule preview HTTP requests
type DebtHandler struct{}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler() *DebtHandler {
	return &DebtHandler{}
}

// PreviewDebtRequest represents the debt schedule preview request body
type PreviewDebtRequest struct {
	Debt         *domain.DebtLoan `json:"debt"`
	CurrentMonth string           `json:"currentMonth"`
	HorizonYears int              `json:"horizonYears"`
	// Payments, when present, drives the schedule instead of the payoff plan
	Payments []domain.Cents `json:"payments,omitempty"`
}

// PreviewDebtResponse represents the debt schedule preview result
type PreviewDebtResponse struct {
	MonthlyPayment domain.Cents                   `json:"monthlyPayment"`
	Schedule       *service.DebtSchedule          `json:"schedule,omitempty"`
	PaymentDriven  *service.PaymentDrivenSchedule `json:"paymentDriven,omitempty"`
}

// PreviewDebt handles POST /api/v1/debts/preview
// Stateless: amortizes the posted debt without touching stored state
func (h *DebtHandler) PreviewDebt(c echo.Context) error {
	var req PreviewDebtRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Debt == nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "debt", Message: "Debt is required"},
		})
	}
	if err := req.Debt.Validate(); err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "debt", Message: err.Error()},
		})
	}

	current, err := domain.ParseYearMonth(req.CurrentMonth)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currentMonth", Message: "Must be in YYYY-MM format"},
		})
	}

	resp := PreviewDebtResponse{
		MonthlyPayment: service.MonthlyPaymentForDebt(req.Debt, current),
	}

	if len(req.Payments) > 0 {
		resp.PaymentDriven = service.BuildDebtScheduleFromPayments(req.Debt, current, req.Payments)
		return c.JSON(http.StatusOK, resp)
	}

	if req.HorizonYears < 1 || req.HorizonYears > 100 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "horizonYears", Message: "Horizon must be between 1 and 100 years"},
		})
	}

	resp.Schedule = service.BuildDebtSchedule(req.Debt, current, req.HorizonYears)
	return c.JSON(http.StatusOK, resp)
}
