package ports

import (
	"context"
	"time"
)

// RevocationStore tracks signed-out session token ids and keeps an audit
// trail of issued authorization digests. Entries expire with the artifact
// they shadow.
type RevocationStore interface {
	RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)

	// RecordAuthorization notes that a signature was issued for a scope
	// digest. Duplicate issuance is allowed (a failed transaction may be
	// retried); the record exists so it is observable.
	RecordAuthorization(ctx context.Context, digest string, ttl time.Duration) error
}
