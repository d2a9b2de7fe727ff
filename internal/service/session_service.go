package service

import (
	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/websocket"
	"github.com/google/uuid"
)

// SessionService handles session snapshot reads and writes
type SessionService struct {
	sessionRepo    domain.SessionRepository
	eventPublisher websocket.EventPublisher
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo domain.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *SessionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *SessionService) publishEvent(workspaceID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// GetSession retrieves the session snapshot for a workspace
func (s *SessionService) GetSession(workspaceID uuid.UUID) (*domain.Session, error) {
	return s.sessionRepo.Get(workspaceID)
}

// PutSession validates and stores the session snapshot for a workspace.
// Any edit invalidates the derived timeline, so both events go out together.
func (s *SessionService) PutSession(workspaceID uuid.UUID, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	if err := s.sessionRepo.Put(workspaceID, session); err != nil {
		return err
	}

	s.publishEvent(workspaceID, websocket.SessionUpdated(map[string]interface{}{
		"workspaceId": workspaceID.String(),
	}))
	s.publishEvent(workspaceID, websocket.TimelineInvalidated(map[string]interface{}{
		"workspaceId": workspaceID.String(),
	}))

	return nil
}

// GetTimeline loads the workspace session and computes its full timeline
func (s *SessionService) GetTimeline(workspaceID uuid.UUID) (*domain.Timeline, error) {
	session, err := s.sessionRepo.Get(workspaceID)
	if err != nil {
		return nil, err
	}
	return BuildTimeline(session), nil
}
