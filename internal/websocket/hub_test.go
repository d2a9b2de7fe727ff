package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id          string
	workspaceID uuid.UUID
	messages    [][]byte
	mu          sync.Mutex
	closed      bool
}

func newMockClient(id string, workspaceID uuid.UUID) *mockClient {
	return &mockClient{
		id:          id,
		workspaceID: workspaceID,
		messages:    make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) WorkspaceID() uuid.UUID {
	return m.workspaceID
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	workspaceA := uuid.New()
	workspaceB := uuid.New()

	client1 := newMockClient("client-1", workspaceA)
	client2 := newMockClient("client-2", workspaceA)
	client3 := newMockClient("client-3", workspaceB)

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	assert.Equal(t, 2, hub.ClientCount(workspaceA))
	assert.Equal(t, 1, hub.ClientCount(workspaceB))

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount(workspaceA))

	hub.Unregister(client2)
	assert.Equal(t, 0, hub.ClientCount(workspaceA))
}

func TestHub_BroadcastScopedToWorkspace(t *testing.T) {
	hub := NewHub()
	workspaceA := uuid.New()
	workspaceB := uuid.New()

	client1 := newMockClient("client-1", workspaceA)
	client2 := newMockClient("client-2", workspaceB)
	hub.Register(client1)
	hub.Register(client2)

	hub.Broadcast(workspaceA, TimelineInvalidated(map[string]string{"workspaceId": workspaceA.String()}))

	// Sends are asynchronous
	require.Eventually(t, func() bool {
		return len(client1.GetMessages()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Empty(t, client2.GetMessages())
	assert.Contains(t, string(client1.GetMessages()[0]), "timeline.invalidated")
}

func TestHub_BroadcastToEmptyWorkspace(t *testing.T) {
	hub := NewHub()

	// Must not panic or block
	hub.Broadcast(uuid.New(), SessionUpdated(nil))
}

func TestEventConstructors(t *testing.T) {
	updated := SessionUpdated(map[string]string{"workspaceId": "abc"})
	assert.Equal(t, "session.updated", updated.Type)
	assert.Equal(t, EntityTypeSession, updated.Entity)
	assert.False(t, updated.Timestamp.IsZero())

	invalidated := TimelineInvalidated(nil)
	assert.Equal(t, "timeline.invalidated", invalidated.Type)
	assert.Equal(t, EntityTypeTimeline, invalidated.Entity)
}
