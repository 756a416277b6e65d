package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mit2nil/decorum/pkg/session"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	sessions  map[uuid.UUID]*session.Session
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[uuid.UUID]*session.Session),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.pingError = err
}

// SetSaveError configures the mock to fail on save with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveSession(ctx context.Context, s *session.Session) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	if m.saveError != nil {
		return m.saveError
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	return m.sessions[id], nil
}

func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	delete(m.sessions, id)
	return nil
}
