// Package otp implements phone-based one-time-password login: issuing
// 6-digit codes delivered over SMS and verifying them against bcrypt
// hashes stored in the database.
package otp

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eivindmo/vinlager/internal/sms"
	"github.com/eivindmo/vinlager/internal/store"
)

const (
	// CodeLength is the number of digits in a login code.
	CodeLength = 6

	// CodeExpiry is how long a code stays valid after issue.
	CodeExpiry = 5 * time.Minute

	// MaxAttempts is the number of wrong codes allowed before a
	// challenge is burned.
	MaxAttempts = 5

	// ResendCooldown is the minimum wait between codes for the same
	// phone number.
	ResendCooldown = 60 * time.Second
)

// ErrInvalidCode is returned for any verification failure the caller
// should not be able to distinguish: wrong code, expired code, no
// pending challenge, or too many attempts.
var ErrInvalidCode = errors.New("invalid or expired code")

// ErrCooldown is returned when a code was requested again too soon.
var ErrCooldown = errors.New("a code was sent recently, wait before requesting another")

// Service issues and verifies login codes.
type Service struct {
	DB     *sql.DB
	Sender sms.Sender
}

// RequestCode generates a login code for a phone number, stores its
// hash, and delivers it via SMS. The phone number must already be
// normalized (see NormalizePhone).
func (s *Service) RequestCode(ctx context.Context, phone string) error {
	// Enforce the resend cooldown against the newest pending challenge.
	prev, err := store.GetLatestOTPChallenge(ctx, s.DB, phone)
	if err != nil {
		return err
	}
	if prev != nil && time.Since(prev.CreatedAt) < ResendCooldown {
		return ErrCooldown
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing code: %w", err)
	}

	id := uuid.NewString()
	expiresAt := time.Now().Add(CodeExpiry)
	if err := store.CreateOTPChallenge(ctx, s.DB, id, phone, string(hash), expiresAt); err != nil {
		return err
	}

	message := fmt.Sprintf("Din Vinlager-kode er %s. Koden er gyldig i %d minutter.",
		code, int(CodeExpiry.Minutes()))
	if err := s.Sender.Send(ctx, phone, message); err != nil {
		return fmt.Errorf("sending code: %w", err)
	}

	slog.Info("login code issued", "phone", phone, "challenge", id)
	return nil
}

// VerifyCode checks a submitted code against the newest pending
// challenge for the phone number. On success the challenge is consumed
// and the authenticated phone number is returned. All failure modes
// map to ErrInvalidCode.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) error {
	challenge, err := store.GetLatestOTPChallenge(ctx, s.DB, phone)
	if err != nil {
		return err
	}
	if challenge == nil {
		return ErrInvalidCode
	}
	if time.Now().After(challenge.ExpiresAt) {
		return ErrInvalidCode
	}
	if challenge.Attempts >= MaxAttempts {
		return ErrInvalidCode
	}

	if err := bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(code)); err != nil {
		if err := store.IncrementOTPAttempts(ctx, s.DB, challenge.ID); err != nil {
			slog.Error("failed to record otp attempt", "error", err)
		}
		slog.Warn("login code rejected", "phone", phone, "attempts", challenge.Attempts+1)
		return ErrInvalidCode
	}

	if err := store.ConsumeOTPChallenge(ctx, s.DB, challenge.ID); err != nil {
		// Lost a race with a concurrent verification of the same code.
		return ErrInvalidCode
	}

	return nil
}

// generateCode produces a random numeric code of CodeLength digits.
func generateCode() (string, error) {
	digits := make([]byte, CodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
