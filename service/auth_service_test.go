package service

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirdevent/gatekeeper/adapters/store"
	"github.com/thirdevent/gatekeeper/adapters/tokenizer"
	"github.com/thirdevent/gatekeeper/core"
)

type wallet struct {
	address   string
	signature func(message string) string
}

func newWallet(t *testing.T) *wallet {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	return &wallet{
		address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		signature: func(message string) string {
			sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
			require.NoError(t, err)
			sig[64] += 27
			return hexutil.Encode(sig)
		},
	}
}

func newAuthService() (*AuthService, *store.MemoryStore, *store.MemoryRevocations, *FakeEventPublisher) {
	records := store.NewMemoryStore()
	revocations := store.NewMemoryRevocations()
	events := &FakeEventPublisher{}
	svc := NewAuthService(records, tokenizer.NewJWTTokenizer([]byte("test-secret")), revocations, events)
	return svc, records, revocations, events
}

func TestVerifyWallet(t *testing.T) {
	svc, _, _, _ := newAuthService()
	w := newWallet(t)
	message := "Sign at timestamp 1000"
	sig := w.signature(message)

	tests := []struct {
		name      string
		address   string
		message   string
		signature string
		wantErr   error
	}{
		{"valid signature", w.address, message, sig, nil},
		{"missing address", "", message, sig, core.ErrMissingCredential},
		{"missing message", w.address, "", sig, core.ErrMissingCredential},
		{"missing signature", w.address, message, "", core.ErrMissingCredential},
		{"undecodable signature", w.address, message, "0x01", core.ErrSignatureMismatch},
		{"wrong message", w.address, "Sign at timestamp 1001", sig, core.ErrSignatureMismatch},
		{"wrong address", newWallet(t).address, message, sig, core.ErrSignatureMismatch},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := svc.VerifyWallet(test.address, test.message, test.signature)
			if test.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}

func TestLogin_CreatesIdentityOnFirstUse(t *testing.T) {
	svc, records, _, events := newAuthService()
	w := newWallet(t)
	message := "Sign at timestamp 1000"

	identity, session, token, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, core.NormalizeAddress(w.address), identity.WalletAddress)
	assert.Equal(t, core.DefaultName(w.address), identity.Name)
	assert.NotEmpty(t, token)
	assert.Equal(t, identity.ID, session.UserID)
	assert.WithinDuration(t, session.IssuedAt.Add(DefaultSessionTTL), session.ExpiresAt, time.Second)
	assert.Len(t, events.Logins, 1)

	// Second login reuses the identity.
	identity2, _, _, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	require.NoError(t, err)
	assert.Equal(t, identity.ID, identity2.ID)

	stored, err := records.GetIdentityByAddress(context.Background(), w.address)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, stored.ID)
}

func TestLogin_IssuesIndependentSessions(t *testing.T) {
	svc, _, _, _ := newAuthService()
	w := newWallet(t)
	message := "Sign at timestamp 1000"

	_, _, token1, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	require.NoError(t, err)
	_, _, token2, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
	_, err = svc.ValidateSession(context.Background(), token1)
	assert.NoError(t, err)
	_, err = svc.ValidateSession(context.Background(), token2)
	assert.NoError(t, err)
}

func TestLogin_StoreFailureSurfaces(t *testing.T) {
	events := &FakeEventPublisher{}
	svc := NewAuthService(&FailingStore{Err: assert.AnError}, tokenizer.NewJWTTokenizer([]byte("test-secret")), store.NewMemoryRevocations(), events)
	w := newWallet(t)
	message := "Sign at timestamp 1000"

	_, _, _, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	assert.ErrorIs(t, err, core.ErrIdentityLookup)
}

func TestValidateSession(t *testing.T) {
	svc, _, _, _ := newAuthService()
	w := newWallet(t)
	message := "Sign at timestamp 1000"

	_, session, token, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	require.NoError(t, err)

	// Valid, and idempotent.
	for i := 0; i < 2; i++ {
		got, err := svc.ValidateSession(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, session.TokenID, got.TokenID)
	}

	_, err = svc.ValidateSession(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrSessionInvalid)

	_, err = svc.ValidateSession(context.Background(), "garbage")
	assert.ErrorIs(t, err, core.ErrSessionInvalid)
}

func TestValidateSession_Expired(t *testing.T) {
	svc, _, _, _ := newAuthService()
	w := newWallet(t)
	message := "Sign at timestamp 1000"

	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	_, _, token, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrSessionExpired)
}

func TestSignOut(t *testing.T) {
	svc, _, _, events := newAuthService()
	w := newWallet(t)
	message := "Sign at timestamp 1000"

	_, _, token, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), token))
	assert.Len(t, events.Logouts, 1)

	_, err = svc.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrSessionRevoked)

	// Idempotent, and safe on junk input.
	assert.NoError(t, svc.SignOut(context.Background(), token))
	assert.NoError(t, svc.SignOut(context.Background(), ""))
	assert.NoError(t, svc.SignOut(context.Background(), "garbage"))
}

func TestCurrentUser(t *testing.T) {
	svc, _, _, _ := newAuthService()
	w := newWallet(t)
	message := "Sign at timestamp 1000"

	identity, session, _, err := svc.Login(context.Background(), w.address, message, w.signature(message))
	require.NoError(t, err)

	got, err := svc.CurrentUser(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, got.ID)

	_, err = svc.CurrentUser(context.Background(), &core.Session{UserID: "nope"})
	assert.ErrorIs(t, err, core.ErrIdentityLookup)
}
