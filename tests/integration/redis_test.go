package integration

import (
	"testing"
	"time"

	"github.com/seu-repo/sahayata-voice/internal/adapter/store"
	"github.com/seu-repo/sahayata-voice/internal/domain"
)

func TestRedisSessionStore_RoundTrip(t *testing.T) {
	// Arrange
	env := SetupTestEnvironment(t)
	defer TeardownTestEnvironment(t)
	FlushRedis(t, env.Redis)

	sessions := store.NewRedisStoreWithClient(env.Redis, 0, env.Logger)

	// Act: a fresh user gets a new idle session
	created, err := sessions.GetOrCreate(env.ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Assert
	if created.Step != domain.StepIdle {
		t.Fatalf("expected idle session, got %+v", created)
	}

	// Act: advance the dialogue and persist
	created.Step = domain.StepAwaitingOTP
	created.Recipient = "ramesh"
	created.Amount = "500"
	created.OTP = "123456"
	if err := sessions.Save(env.ctx, "user-1", created); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	// Assert: the state survives a reload
	loaded, err := sessions.Get(env.ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded.Step != domain.StepAwaitingOTP || loaded.OTP != "123456" || loaded.Recipient != "ramesh" {
		t.Errorf("unexpected reloaded session: %+v", loaded)
	}

	// Act: reset clears everything
	if err := sessions.Reset(env.ctx, "user-1"); err != nil {
		t.Fatalf("Failed to reset session: %v", err)
	}
	reset, _ := sessions.Get(env.ctx, "user-1")
	if reset.Step != domain.StepIdle || reset.OTP != "" {
		t.Errorf("expected cleared session, got %+v", reset)
	}
}

func TestRedisSessionStore_MissingUser(t *testing.T) {
	// Arrange
	env := SetupTestEnvironment(t)
	defer TeardownTestEnvironment(t)
	FlushRedis(t, env.Redis)

	sessions := store.NewRedisStoreWithClient(env.Redis, 0, env.Logger)

	// Act
	session, err := sessions.Get(env.ctx, "nobody")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session for unknown user, got %+v", session)
	}
}

func TestRedisSessionStore_TTL(t *testing.T) {
	// Arrange
	env := SetupTestEnvironment(t)
	defer TeardownTestEnvironment(t)
	FlushRedis(t, env.Redis)

	sessions := store.NewRedisStoreWithClient(env.Redis, time.Second, env.Logger)

	if err := sessions.Save(env.ctx, "user-2", &domain.Session{Step: domain.StepAwaitingAmount}); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	// Act: wait past the TTL
	deadline := time.Now().Add(5 * time.Second)
	for {
		session, err := sessions.Get(env.ctx, "user-2")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if session == nil {
			return
		}
		if time.Now().After(deadline) {
			// Assert
			t.Fatal("expected session to expire")
		}
		time.Sleep(200 * time.Millisecond)
	}
}
