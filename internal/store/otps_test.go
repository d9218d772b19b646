package store

import (
	"context"
	"testing"
	"time"

	"github.com/eivindmo/vinlager/internal/db"
)

func TestCreateAndGetOTPChallenge(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(5 * time.Minute)
	err := CreateOTPChallenge(ctx, database, "challenge-1", "+4712345678", "hash-1", expiresAt)
	if err != nil {
		t.Fatalf("CreateOTPChallenge: %v", err)
	}

	c, err := GetLatestOTPChallenge(ctx, database, "+4712345678")
	if err != nil {
		t.Fatalf("GetLatestOTPChallenge: %v", err)
	}
	if c == nil {
		t.Fatal("expected a challenge")
	}
	if c.ID != "challenge-1" || c.CodeHash != "hash-1" {
		t.Errorf("unexpected challenge: %+v", c)
	}
	if c.Attempts != 0 {
		t.Errorf("expected 0 attempts, got %d", c.Attempts)
	}
	if c.ConsumedAt != nil {
		t.Error("expected nil consumed_at")
	}
}

func TestGetLatestOTPChallengeNone(t *testing.T) {
	database := db.NewTestDB(t)

	c, err := GetLatestOTPChallenge(context.Background(), database, "+4799999999")
	if err != nil {
		t.Fatalf("GetLatestOTPChallenge: %v", err)
	}
	if c != nil {
		t.Errorf("expected nil for unknown phone, got %+v", c)
	}
}

func TestGetLatestOTPChallengePicksNewest(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(5 * time.Minute)
	CreateOTPChallenge(ctx, database, "old", "+4712345678", "hash-old", expiresAt)
	CreateOTPChallenge(ctx, database, "new", "+4712345678", "hash-new", expiresAt)

	c, err := GetLatestOTPChallenge(ctx, database, "+4712345678")
	if err != nil {
		t.Fatalf("GetLatestOTPChallenge: %v", err)
	}
	if c == nil || c.ID != "new" {
		t.Errorf("expected newest challenge 'new', got %+v", c)
	}
}

func TestIncrementOTPAttempts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(5 * time.Minute)
	CreateOTPChallenge(ctx, database, "challenge-1", "+4712345678", "hash", expiresAt)

	for i := 0; i < 3; i++ {
		if err := IncrementOTPAttempts(ctx, database, "challenge-1"); err != nil {
			t.Fatalf("IncrementOTPAttempts: %v", err)
		}
	}

	c, _ := GetLatestOTPChallenge(ctx, database, "+4712345678")
	if c.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", c.Attempts)
	}
}

func TestConsumeOTPChallenge(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(5 * time.Minute)
	CreateOTPChallenge(ctx, database, "challenge-1", "+4712345678", "hash", expiresAt)

	if err := ConsumeOTPChallenge(ctx, database, "challenge-1"); err != nil {
		t.Fatalf("ConsumeOTPChallenge: %v", err)
	}

	// A consumed challenge no longer counts as pending.
	c, _ := GetLatestOTPChallenge(ctx, database, "+4712345678")
	if c != nil {
		t.Errorf("expected no pending challenge after consume, got %+v", c)
	}

	// Consuming twice fails.
	if err := ConsumeOTPChallenge(ctx, database, "challenge-1"); err == nil {
		t.Error("expected error consuming an already consumed challenge")
	}
}
