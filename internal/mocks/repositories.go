package mocks

import (
	"context"
	"sync"

	"github.com/seu-repo/sahayata-voice/internal/domain"
)

// MockSessionStore is a mock implementation of SessionStore. With no
// func fields set it behaves as a working in-memory store, which is what
// most dialogue tests want; individual funcs can be overridden to
// inject failures.
type MockSessionStore struct {
	GetFunc         func(ctx context.Context, userID string) (*domain.Session, error)
	GetOrCreateFunc func(ctx context.Context, userID string) (*domain.Session, error)
	SaveFunc        func(ctx context.Context, userID string, session *domain.Session) error
	ResetFunc       func(ctx context.Context, userID string) error

	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *MockSessionStore) Get(ctx context.Context, userID string) (*domain.Session, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (m *MockSessionStore) GetOrCreate(ctx context.Context, userID string) (*domain.Session, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = *domain.NewSession()
		m.sessions[userID] = s
	}
	cp := s
	return &cp, nil
}

func (m *MockSessionStore) Save(ctx context.Context, userID string, session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = *session
	return nil
}

func (m *MockSessionStore) Reset(ctx context.Context, userID string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = *domain.NewSession()
	return nil
}

func (m *MockSessionStore) Ping() error {
	return nil
}

func (m *MockSessionStore) Close() error {
	return nil
}
