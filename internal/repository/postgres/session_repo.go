package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository implements domain.SessionRepository using PostgreSQL.
// The session is stored whole as one JSONB snapshot per workspace; there
// is no per-entity table because the engine always reads and replaces the
// full snapshot.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Get retrieves the session snapshot for a workspace
func (r *SessionRepository) Get(workspaceID uuid.UUID) (*domain.Session, error) {
	ctx := context.Background()

	var snapshot []byte
	err := r.pool.QueryRow(ctx,
		`SELECT snapshot FROM sessions WHERE workspace_id = $1`,
		workspaceID,
	).Scan(&snapshot)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(snapshot, &session); err != nil {
		return nil, fmt.Errorf("corrupt session snapshot: %w", err)
	}
	return &session, nil
}

// Put stores the session snapshot for a workspace, replacing any previous one
func (r *SessionRepository) Put(workspaceID uuid.UUID, session *domain.Session) error {
	ctx := context.Background()

	snapshot, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO sessions (workspace_id, snapshot, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (workspace_id)
		 DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`,
		workspaceID, snapshot,
	)
	return err
}
