package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16-bytes"

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer(testSecret, time.Hour)

	token, expires, err := iss.Issue(42, "ana@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	userID, claims, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "jti should be set")
}

func TestTokenIDsAreUnique(t *testing.T) {
	iss := NewIssuer(testSecret, time.Hour)
	a, _, err := iss.Issue(1, "")
	require.NoError(t, err)
	b, _, err := iss.Issue(1, "")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseRejects(t *testing.T) {
	iss := NewIssuer(testSecret, time.Hour)
	good, _, err := iss.Issue(7, "")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, _, err := iss.Parse("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(good, ".")
		require.Len(t, parts, 3)
		forged, _, err := NewIssuer(testSecret, time.Hour).Issue(8, "")
		require.NoError(t, err)
		parts[1] = strings.Split(forged, ".")[1]
		// Signature from token 7 over the payload of token 8.
		_, _, err = iss.Parse(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewIssuer("another-secret-of-16-bytes", time.Hour)
		_, _, err := other.Parse(good)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewIssuer(testSecret, time.Minute)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		expired, _, err := old.Issue(7, "")
		require.NoError(t, err)
		_, _, err = iss.Parse(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    issuerName,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, _, err = iss.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("bad subject", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "abc",
			Issuer:    issuerName,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, _, err = iss.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
