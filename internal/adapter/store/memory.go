package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/sahayata-voice/internal/domain"
	"github.com/seu-repo/sahayata-voice/internal/ports"
)

type memoryEntry struct {
	session   domain.Session
	touchedAt time.Time
}

// MemoryStore keeps sessions in a mutex-protected map. Used as the
// default backend and as a fallback when Redis is unavailable.
//
// The mutex only protects the map itself; the GetOrCreate/Save pair is
// not atomic per user, matching the documented single-in-flight-request
// precondition.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
}

// NewMemoryStore creates an in-memory session store. ttl 0 keeps
// sessions forever; a positive ttl evicts sessions untouched for that
// long via a periodic sweep.
func NewMemoryStore(ttl, cleanupInterval time.Duration, log *zap.Logger) ports.SessionStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		log:      log,
		stopCh:   make(chan struct{}),
	}

	if ttl > 0 {
		if cleanupInterval <= 0 {
			cleanupInterval = time.Minute
		}
		go s.cleanupLoop(cleanupInterval)
	}

	log.Info("In-memory session store initialized", zap.Duration("ttl", ttl))
	return s
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	cp := entry.session
	return &cp, nil
}

func (s *MemoryStore) GetOrCreate(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[userID]
	if !ok {
		entry = memoryEntry{session: *domain.NewSession(), touchedAt: time.Now()}
		s.sessions[userID] = entry
		s.log.Debug("Session created", zap.String("user_id", userID))
	}
	cp := entry.session
	return &cp, nil
}

func (s *MemoryStore) Save(ctx context.Context, userID string, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = memoryEntry{session: *session, touchedAt: time.Now()}
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context, userID string) error {
	return s.Save(ctx, userID, domain.NewSession())
}

func (s *MemoryStore) Ping() error {
	return nil
}

func (s *MemoryStore) Close() error {
	close(s.stopCh)
	return nil
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	expired := 0
	for userID, entry := range s.sessions {
		if entry.touchedAt.Before(cutoff) {
			delete(s.sessions, userID)
			expired++
		}
	}

	if expired > 0 {
		s.log.Debug("Session cleanup completed", zap.Int("expired_sessions", expired))
	}
}
