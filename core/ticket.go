package core

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is the resource a mint rule gates. Owned by the admin flow; this
// core only reads it to learn whether a signature gate applies.
type Ticket struct {
	EventID          string
	TicketIndex      uint64
	Name             string
	Fee              decimal.Decimal
	RequireSignature bool
}

// Claim is a time-bounded permission to redeem a ticket proof.
// EndDate is compared against the server clock, never client time.
type Claim struct {
	ID      string
	EventID string
	EndDate time.Time
}

// Expired reports whether now falls outside the claim window.
// The boundary is inclusive: a redemption at exactly EndDate is still valid.
func (c *Claim) Expired(now time.Time) bool {
	return now.After(c.EndDate)
}

// MintScope is the tuple an authorization signature binds to. The external
// contract re-derives the same tuple on redemption, so field order and types
// must match its encoding exactly.
type MintScope struct {
	ContractAddress string
	ClaimantAddress string
	TokenID         *big.Int // ticket index on the mint path, token id on the claim path
}
