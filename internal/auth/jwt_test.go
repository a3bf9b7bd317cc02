package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() JWT {
	return JWT{Secret: []byte("test-secret"), Issuer: "stock-journal", TokenTTL: time.Hour}
}

func TestJWT_SignVerify(t *testing.T) {
	j := testJWT()

	token, expiresAt, err := j.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "stock-journal", claims.Issuer)
}

func TestJWT_VerifyRejects(t *testing.T) {
	j := testJWT()

	t.Run("wrong secret", func(t *testing.T) {
		other := JWT{Secret: []byte("other"), Issuer: j.Issuer, TokenTTL: time.Hour}
		token, _, err := other.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
		require.NoError(t, err)
		_, err = j.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := j.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}})
		require.NoError(t, err)
		_, err = j.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, _, err := j.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "someone-else"}})
		require.NoError(t, err)
		_, err = j.Verify(token)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, _, err := j.Sign(Claims{})
		require.NoError(t, err)
		_, err = j.Verify(token)
		assert.Error(t, err)
	})

	t.Run("other signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: j.Issuer},
		}).SignedString(j.Secret)
		require.NoError(t, err)
		_, err = j.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := j.Verify("not-a-token")
		assert.Error(t, err)
	})
}

func TestJWT_Issue(t *testing.T) {
	j := testJWT()

	token, _, err := j.Issue("user-1")
	require.NoError(t, err)
	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())

	_, _, err = j.Issue("")
	assert.Error(t, err)
}
