package service

import (
	"testing"
	"time"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSession() *domain.Session {
	return &domain.Session{
		Members:      []*domain.HouseholdMember{{ID: 1, Name: "Alex", AnnualIncome: 8_000_000}},
		Goals:        []*domain.GoalFund{{ID: 1, Name: "Vacation", Target: 100_000, MonthlyContribution: 20_000}},
		HorizonYears: 5,
		CurrentMonth: domain.NewYearMonth(2025, time.January),
	}
}

func TestPutSession_StoresAndPublishes(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	publisher := &testutil.MockEventPublisher{}
	svc := NewSessionService(repo)
	svc.SetEventPublisher(publisher)

	workspaceID := uuid.New()
	session := validSession()

	err := svc.PutSession(workspaceID, session)
	require.NoError(t, err)

	stored, err := svc.GetSession(workspaceID)
	require.NoError(t, err)
	assert.Equal(t, session, stored)

	// An edit invalidates the derived timeline, so both events go out
	assert.Equal(t, []string{"session.updated", "timeline.invalidated"}, publisher.EventTypes())
	assert.Equal(t, workspaceID, publisher.Events[0].WorkspaceID)
}

func TestPutSession_RejectsInvalid(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	publisher := &testutil.MockEventPublisher{}
	svc := NewSessionService(repo)
	svc.SetEventPublisher(publisher)

	workspaceID := uuid.New()
	session := validSession()
	session.HorizonYears = 0

	err := svc.PutSession(workspaceID, session)
	assert.ErrorIs(t, err, domain.ErrHorizonInvalid)
	assert.Empty(t, repo.Sessions)
	assert.Empty(t, publisher.Events)
}

func TestGetSession_NotFound(t *testing.T) {
	svc := NewSessionService(testutil.NewMockSessionRepository())

	_, err := svc.GetSession(uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGetTimeline_ComputesFromSnapshot(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	svc := NewSessionService(repo)

	workspaceID := uuid.New()
	repo.Sessions[workspaceID] = validSession()

	timeline, err := svc.GetTimeline(workspaceID)
	require.NoError(t, err)
	assert.Equal(t, 60, timeline.Months)
	assert.Equal(t, domain.Cents(20_000), timeline.Goals[1][0])
}

func TestPutSession_WorksWithoutPublisher(t *testing.T) {
	svc := NewSessionService(testutil.NewMockSessionRepository())

	err := svc.PutSession(uuid.New(), validSession())
	assert.NoError(t, err)
}
