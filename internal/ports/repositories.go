package ports

import (
	"context"

	"github.com/seu-repo/sahayata-voice/internal/domain"
)

// SessionStore owns all dialogue sessions, keyed by user identifier.
//
// GetOrCreate and Save are a read-modify-write pair with no per-user
// locking: the single-active-conversation-per-device use case makes one
// in-flight request per user a hard precondition. Two concurrent requests
// for the same user may both read the same step and the second Save wins.
type SessionStore interface {
	// Get returns the session for userID, or nil if none exists.
	Get(ctx context.Context, userID string) (*domain.Session, error)
	// GetOrCreate returns the existing session for userID or creates,
	// stores and returns a fresh idle one.
	GetOrCreate(ctx context.Context, userID string) (*domain.Session, error)
	// Save persists the session for userID.
	Save(ctx context.Context, userID string, session *domain.Session) error
	// Reset replaces the session for userID with a fresh idle one.
	Reset(ctx context.Context, userID string) error
	Ping() error
	Close() error
}
