package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// OTPStore handles short-lived verification codes in Redis
type OTPStore struct {
	ttl time.Duration
}

var (
	setOTPValue = Set
	getOTPValue = Get
	delOTPValue = Del
)

// NewOTPStore creates a new OTP store. Codes expire after ttl.
func NewOTPStore(ttl time.Duration) (*OTPStore, error) {
	if ttl <= 0 {
		return nil, errors.New("otp ttl must be positive")
	}
	return &OTPStore{ttl: ttl}, nil
}

// Store saves a verification code for a user, replacing any previous one
func (s *OTPStore) Store(ctx context.Context, userID uuid.UUID, code string) error {
	return setOTPValue(ctx, otpKey(userID), code, s.ttl)
}

// Verify checks a submitted code against the stored one. A successful
// verification consumes the code so it cannot be replayed.
func (s *OTPStore) Verify(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	stored, err := getOTPValue(ctx, otpKey(userID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	if err := delOTPValue(ctx, otpKey(userID)); err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate removes any pending code for a user
func (s *OTPStore) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return delOTPValue(ctx, otpKey(userID))
}

func otpKey(userID uuid.UUID) string {
	return "otp:" + userID.String()
}
