package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)

// TokenPurpose distinguishes session tokens from short-lived reset tokens
type TokenPurpose string

const (
	PurposeAccess        TokenPurpose = "access"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// Claims represents JWT claims
type Claims struct {
	UserID  uuid.UUID    `json:"userId"`
	Email   string       `json:"email"`
	Role    string       `json:"role"`
	Purpose TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// JWTService handles JWT operations
type JWTService struct {
	secret       []byte
	accessExpiry time.Duration
	resetExpiry  time.Duration
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string, accessExpiry, resetExpiry time.Duration) *JWTService {
	return &JWTService{
		secret:       []byte(secret),
		accessExpiry: accessExpiry,
		resetExpiry:  resetExpiry,
	}
}

// GenerateAccessToken generates a session token carrying identity and role
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	return s.generateToken(userID, email, role, PurposeAccess, s.accessExpiry)
}

// GeneratePasswordResetToken generates a short-lived token for password reset links
func (s *JWTService) GeneratePasswordResetToken(userID uuid.UUID, email string) (string, error) {
	return s.generateToken(userID, email, "", PurposePasswordReset, s.resetExpiry)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateTokenForPurpose validates a token and rejects it when issued for another purpose
func (s *JWTService) ValidateTokenForPurpose(tokenString string, purpose TokenPurpose) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

func (s *JWTService) generateToken(userID uuid.UUID, email, role string, purpose TokenPurpose, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signJWTToken(token, s.secret)
}
