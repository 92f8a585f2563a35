package service

import (
	"context"
	"math/big"
	"sync"

	"github.com/thirdevent/gatekeeper/core"
)

// FakeIndexer is a canned-answer Indexer for tests.
type FakeIndexer struct {
	Owners map[string][]string // tokenID string -> owners
	Owned  bool
	Err    error
}

func (f *FakeIndexer) OwnersOf(ctx context.Context, contractAddress string, tokenID *big.Int) ([]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Owners[tokenID.String()], nil
}

func (f *FakeIndexer) OwnsAny(ctx context.Context, owner string, contracts []string) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	return f.Owned, nil
}

// FakeEventPublisher records published events.
type FakeEventPublisher struct {
	mu             sync.Mutex
	Logins         []string
	Logouts        []string
	Authorizations []string
	Err            error
}

func (f *FakeEventPublisher) PublishLogin(ctx context.Context, address, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Logins = append(f.Logins, address)
	return f.Err
}

func (f *FakeEventPublisher) PublishLogout(ctx context.Context, address, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Logouts = append(f.Logouts, tokenID)
	return f.Err
}

func (f *FakeEventPublisher) PublishAuthorization(ctx context.Context, address, digest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Authorizations = append(f.Authorizations, digest)
	return f.Err
}

// FailingStore wraps a RecordStore and fails every call, for the
// store-error paths.
type FailingStore struct{ Err error }

func (f *FailingStore) GetIdentityByAddress(ctx context.Context, address string) (*core.Identity, error) {
	return nil, f.Err
}
func (f *FailingStore) GetIdentityByID(ctx context.Context, id string) (*core.Identity, error) {
	return nil, f.Err
}
func (f *FailingStore) CreateIdentity(ctx context.Context, identity *core.Identity) error {
	return f.Err
}
func (f *FailingStore) GetTicket(ctx context.Context, eventID string, ticketIndex uint64) (*core.Ticket, error) {
	return nil, f.Err
}
func (f *FailingStore) GetMintRule(ctx context.Context, eventID string, ticketIndex uint64) (*core.MintRule, error) {
	return nil, f.Err
}
func (f *FailingStore) GetClaim(ctx context.Context, claimID, eventID string) (*core.Claim, error) {
	return nil, f.Err
}
