package store

import (
	"context"
	"testing"
	"time"

	"github.com/eivindmo/vinlager/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected token to not be revoked initially")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected token to be revoked")
	}
}

func TestRevokeTokenIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiry := time.Now().Add(time.Hour)
	if err := RevokeToken(ctx, database, "jti-1", expiry); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if err := RevokeToken(ctx, database, "jti-1", expiry); err != nil {
		t.Errorf("expected revoking twice to succeed, got %v", err)
	}
}

func TestExpiredRevocationsCleanedUp(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// An already-expired revocation is removed on the next revoke.
	RevokeToken(ctx, database, "expired-jti", time.Now().Add(-time.Hour))
	RevokeToken(ctx, database, "fresh-jti", time.Now().Add(time.Hour))

	revoked, _ := IsTokenRevoked(ctx, database, "expired-jti")
	if revoked {
		t.Error("expected expired revocation to be cleaned up")
	}
}
