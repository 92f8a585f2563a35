package ports

import (
	"context"
	"math/big"
)

// Indexer answers NFT-ownership questions via an external indexing service.
// A failed query must surface as an error, never as an empty answer: the
// rule engine fails closed on it.
type Indexer interface {
	// OwnersOf returns the current owner addresses of a single token.
	OwnersOf(ctx context.Context, contractAddress string, tokenID *big.Int) ([]string, error)

	// OwnsAny reports whether the owner holds at least one token from any
	// of the given contracts.
	OwnsAny(ctx context.Context, owner string, contracts []string) (bool, error)
}
