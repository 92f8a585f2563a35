package ports

import (
	"context"

	"github.com/thirdevent/gatekeeper/core"
)

// RecordStore is the read-mostly relational collaborator holding identities,
// tickets, mint rules and claim windows. Lookups return (nil, nil) when no
// row exists; errors mean the store itself failed.
type RecordStore interface {
	GetIdentityByAddress(ctx context.Context, address string) (*core.Identity, error)
	GetIdentityByID(ctx context.Context, id string) (*core.Identity, error)
	CreateIdentity(ctx context.Context, identity *core.Identity) error

	GetTicket(ctx context.Context, eventID string, ticketIndex uint64) (*core.Ticket, error)
	GetMintRule(ctx context.Context, eventID string, ticketIndex uint64) (*core.MintRule, error)
	GetClaim(ctx context.Context, claimID, eventID string) (*core.Claim, error)
}
