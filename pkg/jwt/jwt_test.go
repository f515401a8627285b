package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService("test-secret", time.Hour, 10*time.Minute)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "a@b.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, PurposeAccess, claims.Purpose)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := newTestService().GenerateAccessToken(uuid.New(), "a@b.com", "user")
	require.NoError(t, err)

	other := NewJWTService("other-secret", time.Hour, time.Minute)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, time.Minute)
	token, err := svc.GenerateAccessToken(uuid.New(), "a@b.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestService().ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsUnexpectedSigningMethod(t *testing.T) {
	// Token signed with none algorithm must not validate
	claims := &Claims{UserID: uuid.New(), Purpose: PurposeAccess}
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims)
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenForPurpose(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	resetToken, err := svc.GeneratePasswordResetToken(userID, "a@b.com")
	require.NoError(t, err)

	claims, err := svc.ValidateTokenForPurpose(resetToken, PurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	// A reset token is not a session token and vice versa
	_, err = svc.ValidateTokenForPurpose(resetToken, PurposeAccess)
	assert.ErrorIs(t, err, ErrWrongPurpose)

	accessToken, err := svc.GenerateAccessToken(userID, "a@b.com", "user")
	require.NoError(t, err)
	_, err = svc.ValidateTokenForPurpose(accessToken, PurposePasswordReset)
	assert.ErrorIs(t, err, ErrWrongPurpose)
}

func TestGenerateToken_SignError(t *testing.T) {
	orig := signJWTToken
	defer func() { signJWTToken = orig }()
	signJWTToken = func(token *gojwt.Token, secret []byte) (string, error) {
		return "", errors.New("sign failed")
	}

	_, err := newTestService().GenerateAccessToken(uuid.New(), "a@b.com", "user")
	assert.Error(t, err)
}
