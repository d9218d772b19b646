package model

import "time"

// User represents an account identified by a phone number. Users are
// created implicitly on first successful OTP verification.
type User struct {
	ID        int64      `json:"id"`
	Phone     string     `json:"phone"`
	FullName  string     `json:"full_name,omitempty"`
	Email     string     `json:"email,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
