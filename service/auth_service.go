package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thirdevent/gatekeeper/core"
	"github.com/thirdevent/gatekeeper/internal/eth"
	"github.com/thirdevent/gatekeeper/ports"
)

// DefaultSessionTTL is how long an issued session stays valid.
const DefaultSessionTTL = 24 * time.Hour

// minRevocationTTL keeps a revocation record alive even for tokens that are
// already expired, so clock skew cannot resurrect them.
const minRevocationTTL = time.Hour

// AuthService handles wallet authentication and session lifecycle.
type AuthService struct {
	store       ports.RecordStore
	tokenizer   ports.Tokenizer
	revocations ports.RevocationStore
	eventPub    ports.EventPublisher

	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store ports.RecordStore,
	tokenizer ports.Tokenizer,
	revocations ports.RevocationStore,
	eventPub ports.EventPublisher,
) *AuthService {
	return &AuthService{
		store:       store,
		tokenizer:   tokenizer,
		revocations: revocations,
		eventPub:    eventPub,
		sessionTTL:  DefaultSessionTTL,
		now:         time.Now,
	}
}

// SetSessionTTL overrides the default session lifetime.
func (s *AuthService) SetSessionTTL(ttl time.Duration) {
	if ttl > 0 {
		s.sessionTTL = ttl
	}
}

// VerifyWallet checks that signature over message was produced by the
// claimed address. Pure; applied as the boundary guard in front of every
// authorization-path endpoint.
func (s *AuthService) VerifyWallet(address, message, signatureHex string) error {
	if address == "" || message == "" || signatureHex == "" {
		return core.ErrMissingCredential
	}

	sig, err := eth.DecodeSignature(signatureHex)
	if err != nil {
		return fmt.Errorf("%v: %w", err, core.ErrSignatureMismatch)
	}

	ok, err := eth.VerifyPersonalSignature(address, message, sig)
	if err != nil {
		return fmt.Errorf("%v: %w", err, core.ErrSignatureMismatch)
	}
	if !ok {
		return core.ErrSignatureMismatch
	}

	return nil
}

// Login authenticates a wallet holder and issues a session. The identity is
// created on first login; the returned token is the signed session artifact,
// its expiry and user id travel as the plaintext cookie markers.
func (s *AuthService) Login(ctx context.Context, address, message, signatureHex string) (*core.Identity, *core.Session, string, error) {
	if err := s.VerifyWallet(address, message, signatureHex); err != nil {
		return nil, nil, "", err
	}

	addr := core.NormalizeAddress(address)

	identity, err := s.store.GetIdentityByAddress(ctx, addr)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%v: %w", err, core.ErrIdentityLookup)
	}

	if identity == nil {
		identity = &core.Identity{
			ID:            uuid.New().String(),
			WalletAddress: addr,
			Name:          core.DefaultName(addr),
		}
		if err := s.store.CreateIdentity(ctx, identity); err != nil {
			return nil, nil, "", fmt.Errorf("%v: %w", err, core.ErrIdentityLookup)
		}
	}

	now := s.now()
	session := &core.Session{
		TokenID:       uuid.New().String(),
		UserID:        identity.ID,
		WalletAddress: addr,
		IssuedAt:      now,
		ExpiresAt:     now.Add(s.sessionTTL),
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	if err := s.eventPub.PublishLogin(ctx, addr, identity.ID); err != nil {
		// The session is already issued; a dropped event is not fatal.
		log.Printf("warning: failed to publish login event: %v", err)
	}

	return identity, session, token, nil
}

// ValidateSession checks a session token against the server clock and the
// revocation store. The client-side expiry cookie is never consulted here.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrSessionInvalid
	}

	session, err := s.tokenizer.TokenToSession(token)
	if err != nil {
		return nil, err
	}

	if s.now().After(session.ExpiresAt) {
		return nil, core.ErrSessionExpired
	}

	revoked, err := s.revocations.IsSessionRevoked(ctx, session.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, core.ErrSessionRevoked
	}

	return session, nil
}

// SignOut revokes a session server-side. Always safe to call: an absent,
// expired or malformed token still counts as signed out.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	session, err := s.tokenizer.TokenToSession(token)
	if err != nil {
		// Nothing to revoke; clearing cookies is the transport's job.
		return nil
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}

	if err := s.revocations.RevokeSession(ctx, session.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if err := s.eventPub.PublishLogout(ctx, session.WalletAddress, session.TokenID); err != nil {
		log.Printf("warning: failed to publish logout event: %v", err)
	}

	return nil
}

// CurrentUser resolves the identity behind a validated session.
func (s *AuthService) CurrentUser(ctx context.Context, session *core.Session) (*core.Identity, error) {
	identity, err := s.store.GetIdentityByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, core.ErrIdentityLookup)
	}
	if identity == nil {
		return nil, core.ErrIdentityLookup
	}
	return identity, nil
}
