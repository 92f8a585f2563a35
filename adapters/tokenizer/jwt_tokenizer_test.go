package tokenizer

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirdevent/gatekeeper/core"
)

var testSecret = []byte("test-session-secret")

func testSession(ttl time.Duration) *core.Session {
	now := time.Now()
	return &core.Session{
		TokenID:       "jti-1",
		UserID:        "user-1",
		WalletAddress: "0xaaa1111111111111111111111111111111111111",
		IssuedAt:      now,
		ExpiresAt:     now.Add(ttl),
	}
}

func TestJWTTokenizer_RoundTrip(t *testing.T) {
	tk := NewJWTTokenizer(testSecret)

	session := testSession(24 * time.Hour)
	token, err := tk.SessionToToken(session)
	require.NoError(t, err)

	parsed, err := tk.TokenToSession(token)
	require.NoError(t, err)
	assert.Equal(t, session.TokenID, parsed.TokenID)
	assert.Equal(t, session.UserID, parsed.UserID)
	assert.Equal(t, session.WalletAddress, parsed.WalletAddress)
	assert.WithinDuration(t, session.ExpiresAt, parsed.ExpiresAt, time.Second)

	// Parsing is idempotent: same token, same result.
	again, err := tk.TokenToSession(token)
	require.NoError(t, err)
	assert.Equal(t, parsed, again)
}

func TestJWTTokenizer_TwoSessionsAreIndependent(t *testing.T) {
	tk := NewJWTTokenizer(testSecret)

	s1 := testSession(time.Hour)
	s2 := testSession(time.Hour)
	s2.TokenID = "jti-2"

	t1, err := tk.SessionToToken(s1)
	require.NoError(t, err)
	t2, err := tk.SessionToToken(s2)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	_, err = tk.TokenToSession(t1)
	assert.NoError(t, err)
	_, err = tk.TokenToSession(t2)
	assert.NoError(t, err)
}

func TestJWTTokenizer_Expired(t *testing.T) {
	tk := NewJWTTokenizer(testSecret)

	session := testSession(-time.Minute)
	token, err := tk.SessionToToken(session)
	require.NoError(t, err)

	_, err = tk.TokenToSession(token)
	assert.ErrorIs(t, err, core.ErrSessionExpired)
}

func TestJWTTokenizer_Invalid(t *testing.T) {
	tk := NewJWTTokenizer(testSecret)

	_, err := tk.TokenToSession("not-a-jwt")
	assert.ErrorIs(t, err, core.ErrSessionInvalid)

	// Token signed with a different secret is invalid, not expired.
	other := NewJWTTokenizer([]byte("other-secret"))
	token, err := other.SessionToToken(testSession(time.Hour))
	require.NoError(t, err)
	_, err = tk.TokenToSession(token)
	assert.ErrorIs(t, err, core.ErrSessionInvalid)

	// Wrong audience is rejected even with the right secret.
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Audience:  jwt.ClaimStrings{"anon"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = tk.TokenToSession(raw)
	assert.ErrorIs(t, err, core.ErrSessionInvalid)
}
