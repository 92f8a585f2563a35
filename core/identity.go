package core

import (
	"fmt"
	"strings"
	"time"
)

// Identity is a wallet-holder account. Created on first successful login,
// looked up by address afterwards, never deleted here.
type Identity struct {
	ID            string
	WalletAddress string // always stored lower-cased
	Name          string
	Thumbnail     string
}

// Session is an authenticated identity with a bounded lifetime. It is
// materialized as a signed token plus two plaintext cookie markers; the
// signed token is the only artifact trusted for authorization.
type Session struct {
	TokenID       string // jti of the signed token, revocation key
	UserID        string
	WalletAddress string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// NormalizeAddress lower-cases a hex address so membership checks and
// identity lookups are case-insensitive.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// DefaultName is the display name given to an identity created on first login.
func DefaultName(address string) string {
	addr := NormalizeAddress(address)
	if len(addr) > 5 {
		addr = addr[:5]
	}
	return fmt.Sprintf("NONAME%s", addr)
}
