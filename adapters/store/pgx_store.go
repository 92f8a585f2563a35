package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/thirdevent/gatekeeper/core"
	"github.com/thirdevent/gatekeeper/ports"
)

// PgxStore implements the RecordStore interface over the product's Postgres
// tables (users, tickets, mint_rules, claims). It only reads, except for the
// first-login identity insert.
type PgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore creates a new Postgres-backed record store.
func NewPgxStore(pool *pgxpool.Pool) ports.RecordStore {
	return &PgxStore{pool: pool}
}

func (s *PgxStore) GetIdentityByAddress(ctx context.Context, address string) (*core.Identity, error) {
	query := `SELECT id, wallet_address, COALESCE(name, ''), COALESCE(thumbnail, '')
	          FROM public.users WHERE wallet_address = $1`

	identity := &core.Identity{}
	err := s.pool.QueryRow(ctx, query, core.NormalizeAddress(address)).Scan(
		&identity.ID, &identity.WalletAddress, &identity.Name, &identity.Thumbnail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return identity, nil
}

func (s *PgxStore) GetIdentityByID(ctx context.Context, id string) (*core.Identity, error) {
	query := `SELECT id, wallet_address, COALESCE(name, ''), COALESCE(thumbnail, '')
	          FROM public.users WHERE id = $1`

	identity := &core.Identity{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&identity.ID, &identity.WalletAddress, &identity.Name, &identity.Thumbnail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return identity, nil
}

func (s *PgxStore) CreateIdentity(ctx context.Context, identity *core.Identity) error {
	query := `INSERT INTO public.users (id, wallet_address, name)
	          VALUES ($1, $2, $3)`

	_, err := s.pool.Exec(ctx, query, identity.ID, core.NormalizeAddress(identity.WalletAddress), identity.Name)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (s *PgxStore) GetTicket(ctx context.Context, eventID string, ticketIndex uint64) (*core.Ticket, error) {
	query := `SELECT event_id, ticket_index, COALESCE(name, ''), COALESCE(fee, 0)::text, require_signature
	          FROM public.tickets WHERE event_id = $1 AND ticket_index = $2`

	ticket := &core.Ticket{}
	var fee string
	err := s.pool.QueryRow(ctx, query, eventID, ticketIndex).Scan(
		&ticket.EventID, &ticket.TicketIndex, &ticket.Name, &fee, &ticket.RequireSignature,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query ticket: %w", err)
	}

	ticket.Fee, err = decimal.NewFromString(fee)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ticket fee: %w", err)
	}

	return ticket, nil
}

func (s *PgxStore) GetMintRule(ctx context.Context, eventID string, ticketIndex uint64) (*core.MintRule, error) {
	query := `SELECT rule_type, rule_value
	          FROM public.mint_rules WHERE event_id = $1 AND ticket_index = $2`

	var ruleType string
	var ruleValue []byte
	err := s.pool.QueryRow(ctx, query, eventID, ticketIndex).Scan(&ruleType, &ruleValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query mint rule: %w", err)
	}

	return decodeRule(eventID, ticketIndex, ruleType, ruleValue)
}

func (s *PgxStore) GetClaim(ctx context.Context, claimID, eventID string) (*core.Claim, error) {
	query := `SELECT id, event_id, claim_end_date
	          FROM public.claims WHERE id = $1 AND event_id = $2`

	claim := &core.Claim{}
	err := s.pool.QueryRow(ctx, query, claimID, eventID).Scan(&claim.ID, &claim.EventID, &claim.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query claim: %w", err)
	}

	return claim, nil
}

// decodeRule turns the stored (rule_type, rule_value) pair into the typed
// rule variant. rule_value is JSON: an address array for allowlist and nft,
// a string for code.
func decodeRule(eventID string, ticketIndex uint64, ruleType string, ruleValue []byte) (*core.MintRule, error) {
	rule := &core.MintRule{
		EventID:     eventID,
		TicketIndex: ticketIndex,
		Kind:        core.RuleKind(ruleType),
	}

	switch rule.Kind {
	case core.RuleAllowlist:
		if err := json.Unmarshal(ruleValue, &rule.Addresses); err != nil {
			return nil, fmt.Errorf("failed to decode allowlist rule value: %w", err)
		}
	case core.RuleCode:
		if err := json.Unmarshal(ruleValue, &rule.Secret); err != nil {
			return nil, fmt.Errorf("failed to decode code rule value: %w", err)
		}
	case core.RuleNFT:
		if err := json.Unmarshal(ruleValue, &rule.Contracts); err != nil {
			return nil, fmt.Errorf("failed to decode nft rule value: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown rule type %q: %w", ruleType, core.ErrRuleNotFound)
	}

	return rule, nil
}
