package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "+4712345678", "+4712345678", false},
		{"with spaces", "+47 123 45 678", "+4712345678", false},
		{"with hyphens", "+47-123-45-678", "+4712345678", false},
		{"surrounding whitespace", "  +4712345678  ", "+4712345678", false},
		{"long international", "+123456789012345", "+123456789012345", false},
		{"missing country code", "12345678", "", true},
		{"too short", "+4712", "", true},
		{"too long", "+1234567890123456", "", true},
		{"letters", "+47abc45678", "", true},
		{"empty", "", "", true},
		{"plus only", "+", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
