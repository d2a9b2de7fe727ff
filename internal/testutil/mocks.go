package testutil

import (
	"sync"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/dafibh/horizon/horizon-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockSessionRepository is a mock implementation of domain.SessionRepository
type MockSessionRepository struct {
	Sessions map[uuid.UUID]*domain.Session
	PutFn    func(workspaceID uuid.UUID, session *domain.Session) error
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[uuid.UUID]*domain.Session),
	}
}

// Get retrieves the session snapshot for a workspace
func (m *MockSessionRepository) Get(workspaceID uuid.UUID) (*domain.Session, error) {
	if session, ok := m.Sessions[workspaceID]; ok {
		return session, nil
	}
	return nil, domain.ErrSessionNotFound
}

// Put stores the session snapshot for a workspace
func (m *MockSessionRepository) Put(workspaceID uuid.UUID, session *domain.Session) error {
	if m.PutFn != nil {
		return m.PutFn(workspaceID, session)
	}
	m.Sessions[workspaceID] = session
	return nil
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent pairs an event with the workspace it went to
type PublishedEvent struct {
	WorkspaceID uuid.UUID
	Event       websocket.Event
}

// Publish records the event
func (m *MockEventPublisher) Publish(workspaceID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{WorkspaceID: workspaceID, Event: event})
}

// EventTypes returns the types of all published events in order
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}
