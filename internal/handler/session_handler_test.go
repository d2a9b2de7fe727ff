package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/service"
	"github.com/dafibh/horizon/horizon-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func sessionTestContext(e *echo.Echo, method, body string, workspaceID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, "/api/v1/workspaces/"+workspaceID.String()+"/session", reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("workspaceId")
	c.SetParamValues(workspaceID.String())
	return c, rec
}

func TestGetSession_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockSessionRepository()
	handler := NewSessionHandler(service.NewSessionService(repo))

	workspaceID := uuid.New()
	repo.Sessions[workspaceID] = &domain.Session{
		Members:      []*domain.HouseholdMember{{ID: 1, Name: "Alex", AnnualIncome: 8_000_000}},
		HorizonYears: 10,
		CurrentMonth: domain.NewYearMonth(2025, time.January),
	}

	c, rec := sessionTestContext(e, http.MethodGet, "", workspaceID)

	if err := handler.GetSession(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response domain.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.HorizonYears != 10 {
		t.Errorf("Expected horizon 10, got %d", response.HorizonYears)
	}
	if response.CurrentMonth.String() != "2025-01" {
		t.Errorf("Expected current month 2025-01, got %s", response.CurrentMonth)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewSessionHandler(service.NewSessionService(testutil.NewMockSessionRepository()))

	c, rec := sessionTestContext(e, http.MethodGet, "", uuid.New())

	if err := handler.GetSession(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeNotFound {
		t.Errorf("Expected type %s, got %s", ErrorTypeNotFound, problem.Type)
	}
}

func TestPutSession_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockSessionRepository()
	handler := NewSessionHandler(service.NewSessionService(repo))

	workspaceID := uuid.New()
	body := `{
		"members": [{"id": 1, "name": "Alex", "annualIncome": 8000000}],
		"debts": [{"id": 1, "name": "Car", "balance": 500000, "annualRate": 599, "planKind": "fixed_payment", "payment": 20000}],
		"horizonYears": 10,
		"currentMonth": "2025-01"
	}`

	c, rec := sessionTestContext(e, http.MethodPut, body, workspaceID)

	if err := handler.PutSession(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	stored, ok := repo.Sessions[workspaceID]
	if !ok {
		t.Fatal("Expected session stored")
	}
	if len(stored.Debts) != 1 {
		t.Fatalf("Expected 1 debt, got %d", len(stored.Debts))
	}
	plan, ok := stored.Debts[0].Plan.(domain.FixedPaymentPlan)
	if !ok {
		t.Fatalf("Expected FixedPaymentPlan, got %T", stored.Debts[0].Plan)
	}
	if plan.Payment != 20_000 {
		t.Errorf("Expected payment 20000, got %d", plan.Payment)
	}
}

func TestPutSession_ValidationFailure(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockSessionRepository()
	handler := NewSessionHandler(service.NewSessionService(repo))

	body := `{"horizonYears": 0, "currentMonth": "2025-01"}`
	c, rec := sessionTestContext(e, http.MethodPut, body, uuid.New())

	if err := handler.PutSession(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if len(repo.Sessions) != 0 {
		t.Error("Invalid session must not be stored")
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(problem.Errors) == 0 || problem.Errors[0].Field != "horizonYears" {
		t.Errorf("Expected horizonYears field error, got %+v", problem.Errors)
	}
}

func TestPutSession_InvalidWorkspaceID(t *testing.T) {
	e := echo.New()
	handler := NewSessionHandler(service.NewSessionService(testutil.NewMockSessionRepository()))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/workspaces/not-a-uuid/session", strings.NewReader("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("workspaceId")
	c.SetParamValues("not-a-uuid")

	if err := handler.PutSession(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
