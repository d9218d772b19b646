package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// OTPChallenge is one issued login code awaiting verification.
type OTPChallenge struct {
	ID         string
	Phone      string
	CodeHash   string
	Attempts   int
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// CreateOTPChallenge stores a new challenge for a phone number.
func CreateOTPChallenge(ctx context.Context, db *sql.DB, id, phone, codeHash string, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO otp_codes (id, phone, code_hash, expires_at) VALUES (?, ?, ?, ?)`,
		id, phone, codeHash, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("creating otp challenge: %w", err)
	}

	// Opportunistically clean up expired challenges.
	_, _ = db.ExecContext(ctx,
		`DELETE FROM otp_codes WHERE expires_at < ?`, time.Now().Add(-24*time.Hour),
	)

	return nil
}

// GetLatestOTPChallenge returns the most recent unconsumed challenge
// for a phone number, or nil if none exists.
func GetLatestOTPChallenge(ctx context.Context, db *sql.DB, phone string) (*OTPChallenge, error) {
	c := &OTPChallenge{}
	err := db.QueryRowContext(ctx,
		`SELECT id, phone, code_hash, attempts, expires_at, consumed_at, created_at
		 FROM otp_codes WHERE phone = ? AND consumed_at IS NULL
		 ORDER BY created_at DESC, id DESC LIMIT 1`, phone,
	).Scan(&c.ID, &c.Phone, &c.CodeHash, &c.Attempts, &c.ExpiresAt, &c.ConsumedAt, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting otp challenge: %w", err)
	}
	return c, nil
}

// IncrementOTPAttempts records one failed verification attempt.
func IncrementOTPAttempts(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE otp_codes SET attempts = attempts + 1 WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("incrementing otp attempts: %w", err)
	}
	return nil
}

// ConsumeOTPChallenge marks a challenge as used so the same code cannot
// authenticate twice.
func ConsumeOTPChallenge(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE otp_codes SET consumed_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND consumed_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("consuming otp challenge: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("consuming otp challenge: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("otp challenge already consumed")
	}
	return nil
}
