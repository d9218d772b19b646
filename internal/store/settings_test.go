package store

import (
	"context"
	"testing"

	"github.com/eivindmo/vinlager/internal/db"
)

func TestGetJWTSecretGeneratesOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if len(secret) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(secret))
	}

	// Subsequent calls return the same secret.
	again, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret (again): %v", err)
	}
	if again != secret {
		t.Error("expected stable secret across calls")
	}
}
