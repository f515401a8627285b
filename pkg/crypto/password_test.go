package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPasswordWithCost("s3cret-password", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword("s3cret-password", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("s3cret-password", "not-a-hash"))
}

func TestHashPasswordWithCost_ClampsOutOfRangeCost(t *testing.T) {
	orig := bcryptGenerateFromPassword
	defer func() { bcryptGenerateFromPassword = orig }()

	var gotCost int
	bcryptGenerateFromPassword = func(password []byte, cost int) ([]byte, error) {
		gotCost = cost
		return []byte("hashed"), nil
	}

	_, err := HashPasswordWithCost("pw", 99)
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, gotCost)

	_, err = HashPasswordWithCost("pw", -1)
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, gotCost)
}

func TestHashPassword_Error(t *testing.T) {
	orig := bcryptGenerateFromPassword
	defer func() { bcryptGenerateFromPassword = orig }()

	bcryptGenerateFromPassword = func(password []byte, cost int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	_, err := HashPassword("pw")
	assert.Error(t, err)
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, OTPLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q has non-digit", code)
		}
		seen[code] = true
	}
	// 50 draws from a million values should not all collide
	assert.Greater(t, len(seen), 1)
}
