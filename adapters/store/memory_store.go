package store

import (
	"context"
	"sync"

	"github.com/thirdevent/gatekeeper/core"
	"github.com/thirdevent/gatekeeper/ports"
)

type ticketKey struct {
	eventID     string
	ticketIndex uint64
}

// MemoryStore is an in-memory implementation of the RecordStore interface,
// used in tests and local development.
type MemoryStore struct {
	mu         sync.RWMutex
	identities map[string]*core.Identity // keyed by lower-cased address
	tickets    map[ticketKey]*core.Ticket
	rules      map[ticketKey]*core.MintRule
	claims     map[string]*core.Claim // keyed by claim id
}

// NewMemoryStore creates a new in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identities: make(map[string]*core.Identity),
		tickets:    make(map[ticketKey]*core.Ticket),
		rules:      make(map[ticketKey]*core.MintRule),
		claims:     make(map[string]*core.Claim),
	}
}

var _ ports.RecordStore = (*MemoryStore)(nil)

func (s *MemoryStore) GetIdentityByAddress(ctx context.Context, address string) (*core.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.identities[core.NormalizeAddress(address)]
	if !ok {
		return nil, nil
	}
	cp := *identity
	return &cp, nil
}

func (s *MemoryStore) GetIdentityByID(ctx context.Context, id string) (*core.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, identity := range s.identities {
		if identity.ID == id {
			cp := *identity
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateIdentity(ctx context.Context, identity *core.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *identity
	cp.WalletAddress = core.NormalizeAddress(identity.WalletAddress)
	s.identities[cp.WalletAddress] = &cp
	return nil
}

func (s *MemoryStore) GetTicket(ctx context.Context, eventID string, ticketIndex uint64) (*core.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[ticketKey{eventID, ticketIndex}]
	if !ok {
		return nil, nil
	}
	cp := *ticket
	return &cp, nil
}

func (s *MemoryStore) GetMintRule(ctx context.Context, eventID string, ticketIndex uint64) (*core.MintRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rule, ok := s.rules[ticketKey{eventID, ticketIndex}]
	if !ok {
		return nil, nil
	}
	cp := *rule
	return &cp, nil
}

func (s *MemoryStore) GetClaim(ctx context.Context, claimID, eventID string) (*core.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[claimID]
	if !ok || claim.EventID != eventID {
		return nil, nil
	}
	cp := *claim
	return &cp, nil
}

// PutTicket seeds a ticket row.
func (s *MemoryStore) PutTicket(ticket *core.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ticket
	s.tickets[ticketKey{ticket.EventID, ticket.TicketIndex}] = &cp
}

// PutMintRule seeds a rule row.
func (s *MemoryStore) PutMintRule(rule *core.MintRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rule
	s.rules[ticketKey{rule.EventID, rule.TicketIndex}] = &cp
}

// PutClaim seeds a claim row.
func (s *MemoryStore) PutClaim(claim *core.Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *claim
	s.claims[claim.ID] = &cp
}
