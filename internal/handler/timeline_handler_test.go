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

func TestGetTimeline_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockSessionRepository()
	handler := NewTimelineHandler(service.NewSessionService(repo))

	workspaceID := uuid.New()
	repo.Sessions[workspaceID] = &domain.Session{
		Goals:        []*domain.GoalFund{{ID: 1, Name: "Vacation", Target: 100_000, MonthlyContribution: 20_000}},
		HorizonYears: 1,
		CurrentMonth: domain.NewYearMonth(2025, time.January),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workspaces/"+workspaceID.String()+"/timeline", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("workspaceId")
	c.SetParamValues(workspaceID.String())

	if err := handler.GetTimeline(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var timeline domain.Timeline
	if err := json.Unmarshal(rec.Body.Bytes(), &timeline); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if timeline.Months != 12 {
		t.Errorf("Expected 12 months, got %d", timeline.Months)
	}
	if timeline.Goals[1][0] != 20_000 {
		t.Errorf("Expected first contribution 20000, got %d", timeline.Goals[1][0])
	}
}

func TestPreviewTimeline_StatelessComputation(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockSessionRepository()
	handler := NewTimelineHandler(service.NewSessionService(repo))

	body := `{
		"goals": [{"id": 1, "name": "Vacation", "target": 60000, "monthlyContribution": 25000}],
		"horizonYears": 1,
		"currentMonth": "2025-01"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeline/preview", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.PreviewTimeline(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if len(repo.Sessions) != 0 {
		t.Error("Preview must not touch stored state")
	}

	var timeline domain.Timeline
	if err := json.Unmarshal(rec.Body.Bytes(), &timeline); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	// Third month trims to the target
	if timeline.Goals[1][2] != 10_000 {
		t.Errorf("Expected trimmed contribution 10000, got %d", timeline.Goals[1][2])
	}
	if timeline.ReachedMonth[1] == nil || *timeline.ReachedMonth[1] != 2 {
		t.Errorf("Expected reached month 2, got %v", timeline.ReachedMonth[1])
	}
}

func TestPreviewTimeline_RejectsInvalidSession(t *testing.T) {
	e := echo.New()
	handler := NewTimelineHandler(service.NewSessionService(testutil.NewMockSessionRepository()))

	body := `{"horizonYears": 200, "currentMonth": "2025-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeline/preview", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.PreviewTimeline(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
