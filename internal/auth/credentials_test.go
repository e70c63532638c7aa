package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCredentials() *Credentials {
	return NewCredentials("test-secret", 168*time.Hour, bcrypt.MinCost)
}

func TestCredentials_HashAndVerify(t *testing.T) {
	creds := newTestCredentials()

	first, err := creds.Hash("secret1")
	require.NoError(t, err)
	second, err := creds.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", first)
	assert.NotEqual(t, first, second, "each hash gets its own salt")
	assert.True(t, creds.Verify("secret1", first))
	assert.False(t, creds.Verify("wrong", first))
	assert.False(t, creds.Verify("secret1", "not-a-hash"))
}

func TestCredentials_TokenRoundTrip(t *testing.T) {
	creds := newTestCredentials()

	token, err := creds.IssueToken(42, "a@example.com", "admin")
	require.NoError(t, err)

	claims, err := creds.ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(168*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestCredentials_ParseToken_Rejects(t *testing.T) {
	creds := newTestCredentials()

	valid, err := creds.IssueToken(1, "a@example.com", "user")
	require.NoError(t, err)

	otherSecret := NewCredentials("other-secret", time.Hour, bcrypt.MinCost)
	forged, err := otherSecret.IssueToken(1, "a@example.com", "admin")
	require.NoError(t, err)

	expiredCreds := newTestCredentials()
	expiredCreds.now = func() time.Time { return time.Now().Add(-200 * time.Hour) }
	expired, err := expiredCreds.IssueToken(1, "a@example.com", "user")
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered", valid + "x"},
		{"wrong secret", forged},
		{"expired", expired},
		{"no expiry", noExp},
		{"other algorithm", hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := creds.ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestCredentials_VerifyNobody(t *testing.T) {
	creds := newTestCredentials()

	hash := creds.nobodyHash()
	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost, "same work factor as real hashes")
	assert.Equal(t, hash, creds.nobodyHash(), "computed once")

	for _, password := range []string{"", "secret1", "\x00unmatchable\x00x"} {
		assert.False(t, creds.Verify(password, string(hash)))
	}
	assert.NotPanics(t, func() { creds.VerifyNobody("secret1") })
}
