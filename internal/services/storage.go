package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/mit2nil/decorum/pkg/session"
)

// Storage defines the interface for session persistence
type Storage interface {
	// Ping tests the storage connection
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error

	// SaveSession saves a session keyed by its ID
	SaveSession(ctx context.Context, s *session.Session) error

	// LoadSession retrieves a session by ID.
	// Returns nil if the session doesn't exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)

	// DeleteSession removes a session by ID
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
