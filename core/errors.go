package core

import "errors"

var (
	// ErrMissingCredential is returned when a signature header is absent or empty
	ErrMissingCredential = errors.New("missing credential")

	// ErrSignatureMismatch is returned when the recovered address does not match the claimed one
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrIdentityLookup is returned when the record store fails during identity lookup or creation
	ErrIdentityLookup = errors.New("identity lookup failed")

	// ErrRuleNotFound is returned when a gated resource has no rule record
	ErrRuleNotFound = errors.New("mint rule not found")

	// ErrRuleDenied is returned when a rule evaluates to deny
	ErrRuleDenied = errors.New("mint rule denied")

	// ErrIndexerUnavailable is returned when the NFT ownership query fails.
	// The only retryable condition on the authorization path; never treated as pass.
	ErrIndexerUnavailable = errors.New("nft indexer unavailable")

	// ErrClaimNotFound is returned when no claim window exists for the given id
	ErrClaimNotFound = errors.New("claim not found")

	// ErrClaimExpired is returned when a redemption attempt falls after the claim end date
	ErrClaimExpired = errors.New("claim window expired")

	// ErrSessionExpired is returned when a session token's expiry is in the past
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionInvalid is returned when a session token is absent, malformed or badly signed
	ErrSessionInvalid = errors.New("session invalid")

	// ErrSessionRevoked is returned when a session was signed out server-side
	ErrSessionRevoked = errors.New("session revoked")
)
