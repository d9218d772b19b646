package otp

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eivindmo/vinlager/internal/db"
)

var codePattern = regexp.MustCompile(`\d{6}`)

// captureSender records sent messages instead of delivering them.
type captureSender struct {
	phones   []string
	messages []string
}

func (c *captureSender) Send(_ context.Context, phone, message string) error {
	c.phones = append(c.phones, phone)
	c.messages = append(c.messages, message)
	return nil
}

// lastCode extracts the login code from the most recent message.
func (c *captureSender) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, c.messages, "no messages sent")
	code := codePattern.FindString(c.messages[len(c.messages)-1])
	require.Len(t, code, CodeLength)
	return code
}

func newTestService(t *testing.T) (*Service, *captureSender) {
	t.Helper()
	sender := &captureSender{}
	return &Service{DB: db.NewTestDB(t), Sender: sender}, sender
}

func TestRequestAndVerifyCode(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	err := service.RequestCode(ctx, "+4712345678")
	require.NoError(t, err)
	require.Len(t, sender.phones, 1)
	assert.Equal(t, "+4712345678", sender.phones[0])

	code := sender.lastCode(t)
	err = service.VerifyCode(ctx, "+4712345678", code)
	assert.NoError(t, err)
}

func TestVerifyWrongCode(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.RequestCode(ctx, "+4712345678"))

	code := sender.lastCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}

	err := service.VerifyCode(ctx, "+4712345678", wrong)
	assert.ErrorIs(t, err, ErrInvalidCode)

	// Correct code still works after one failure.
	err = service.VerifyCode(ctx, "+4712345678", code)
	assert.NoError(t, err)
}

func TestVerifyWithoutRequest(t *testing.T) {
	service, _ := newTestService(t)

	err := service.VerifyCode(context.Background(), "+4712345678", "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestCodeSingleUse(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.RequestCode(ctx, "+4712345678"))
	code := sender.lastCode(t)

	require.NoError(t, service.VerifyCode(ctx, "+4712345678", code))

	// The same code cannot authenticate twice.
	err := service.VerifyCode(ctx, "+4712345678", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestMaxAttemptsBurnsChallenge(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.RequestCode(ctx, "+4712345678"))
	code := sender.lastCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}

	for i := 0; i < MaxAttempts; i++ {
		err := service.VerifyCode(ctx, "+4712345678", wrong)
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	// Even the correct code is rejected now.
	err := service.VerifyCode(ctx, "+4712345678", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestExpiredCodeRejected(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.RequestCode(ctx, "+4712345678"))
	code := sender.lastCode(t)

	// Age the challenge past its expiry.
	_, err := service.DB.ExecContext(ctx,
		`UPDATE otp_codes SET expires_at = ?`, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	err = service.VerifyCode(ctx, "+4712345678", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestResendCooldown(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.RequestCode(ctx, "+4712345678"))

	err := service.RequestCode(ctx, "+4712345678")
	assert.ErrorIs(t, err, ErrCooldown)
	assert.Len(t, sender.messages, 1, "no second message during cooldown")

	// A different phone number is not affected.
	err = service.RequestCode(ctx, "+4799999999")
	assert.NoError(t, err)
}

func TestResendAfterCooldown(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.RequestCode(ctx, "+4712345678"))

	// Age the first challenge past the cooldown window.
	_, err := service.DB.ExecContext(ctx,
		`UPDATE otp_codes SET created_at = ?`, time.Now().Add(-2*ResendCooldown).UTC())
	require.NoError(t, err)

	require.NoError(t, service.RequestCode(ctx, "+4712345678"))
	require.Len(t, sender.messages, 2)

	// Only the newest code verifies.
	code := sender.lastCode(t)
	assert.NoError(t, service.VerifyCode(ctx, "+4712345678", code))
}

func TestGenerateCodeFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}
