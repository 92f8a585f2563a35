package service

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/thirdevent/gatekeeper/core"
	"github.com/thirdevent/gatekeeper/internal/eth"
	"github.com/thirdevent/gatekeeper/ports"
)

// authorizationRecordTTL bounds how long an issued-authorization audit entry
// lives when no claim window caps it.
const authorizationRecordTTL = 24 * time.Hour

// MintService evaluates eligibility rules and issues mint/claim
// authorization signatures with the operator key.
type MintService struct {
	store       ports.RecordStore
	indexer     ports.Indexer
	signer      *eth.Signer
	revocations ports.RevocationStore
	eventPub    ports.EventPublisher

	now func() time.Time
}

// NewMintService creates a new mint-authorization service.
func NewMintService(
	store ports.RecordStore,
	indexer ports.Indexer,
	signer *eth.Signer,
	revocations ports.RevocationStore,
	eventPub ports.EventPublisher,
) *MintService {
	return &MintService{
		store:       store,
		indexer:     indexer,
		signer:      signer,
		revocations: revocations,
		eventPub:    eventPub,
		now:         time.Now,
	}
}

// EvaluateRule runs one rule variant against a claimant. The switch is
// exhaustive over RuleKind; an unknown kind is a rejection, never a pass.
func (s *MintService) EvaluateRule(ctx context.Context, rule *core.MintRule, claimant, suppliedSecret string) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	switch rule.Kind {
	case core.RuleAllowlist:
		if !rule.AllowsAddress(claimant) {
			return core.ErrRuleDenied
		}
	case core.RuleCode:
		if !rule.MatchesCode(suppliedSecret) {
			return core.ErrRuleDenied
		}
	case core.RuleNFT:
		owns, err := s.indexer.OwnsAny(ctx, claimant, rule.Contracts)
		if err != nil {
			return fmt.Errorf("ownership query failed: %w", err)
		}
		if !owns {
			return core.ErrRuleDenied
		}
	default:
		return fmt.Errorf("unknown rule kind %q: %w", rule.Kind, core.ErrRuleNotFound)
	}

	return nil
}

// AuthorizeMint checks the claimant against the ticket's eligibility gate
// and, on pass, signs the (contract, claimant, ticketIndex) scope.
func (s *MintService) AuthorizeMint(ctx context.Context, claimant, contractAddress, eventID string, ticketIndex uint64, suppliedSecret string) (string, error) {
	ticket, err := s.store.GetTicket(ctx, eventID, ticketIndex)
	if err != nil {
		return "", fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return "", core.ErrRuleNotFound
	}

	if ticket.RequireSignature {
		rule, err := s.store.GetMintRule(ctx, eventID, ticketIndex)
		if err != nil {
			return "", fmt.Errorf("failed to load mint rule: %w", err)
		}
		if rule == nil {
			// Gated ticket without a rule row is a data-integrity error.
			return "", core.ErrRuleNotFound
		}

		if err := s.EvaluateRule(ctx, rule, claimant, suppliedSecret); err != nil {
			return "", err
		}
	}

	scope := core.MintScope{
		ContractAddress: contractAddress,
		ClaimantAddress: claimant,
		TokenID:         new(big.Int).SetUint64(ticketIndex),
	}

	return s.authorize(ctx, scope, authorizationRecordTTL)
}

// AuthorizeClaim checks the claim window and token ownership and, on pass,
// signs the (contract, claimant, tokenID) scope. The window guard runs
// strictly before any signing.
func (s *MintService) AuthorizeClaim(ctx context.Context, claimant, contractAddress, eventID, claimID string, tokenID *big.Int) (string, error) {
	claim, err := s.store.GetClaim(ctx, claimID, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to load claim: %w", err)
	}
	if claim == nil {
		return "", core.ErrClaimNotFound
	}

	if claim.Expired(s.now()) {
		return "", core.ErrClaimExpired
	}

	owners, err := s.indexer.OwnersOf(ctx, contractAddress, tokenID)
	if err != nil {
		return "", fmt.Errorf("ownership query failed: %w", err)
	}

	want := core.NormalizeAddress(claimant)
	owned := false
	for _, owner := range owners {
		if core.NormalizeAddress(owner) == want {
			owned = true
			break
		}
	}
	if !owned {
		return "", core.ErrRuleDenied
	}

	ttl := time.Until(claim.EndDate)
	if ttl <= 0 || ttl > authorizationRecordTTL {
		ttl = authorizationRecordTTL
	}

	scope := core.MintScope{
		ContractAddress: contractAddress,
		ClaimantAddress: claimant,
		TokenID:         tokenID,
	}

	return s.authorize(ctx, scope, ttl)
}

// authorize hashes and signs the scope tuple. The digest and signature are
// recorded and published for observability; replay prevention at redemption
// remains the contract's job.
func (s *MintService) authorize(ctx context.Context, scope core.MintScope, recordTTL time.Duration) (string, error) {
	digest := eth.MintDigest(
		common.HexToAddress(scope.ContractAddress),
		common.HexToAddress(scope.ClaimantAddress),
		scope.TokenID,
	)

	signature, err := s.signer.SignPersonal(digest)
	if err != nil {
		return "", fmt.Errorf("failed to sign authorization: %w", err)
	}

	digestHex := hexutil.Encode(digest)
	if err := s.revocations.RecordAuthorization(ctx, digestHex, recordTTL); err != nil {
		log.Printf("warning: failed to record authorization %s: %v", digestHex, err)
	}
	if err := s.eventPub.PublishAuthorization(ctx, core.NormalizeAddress(scope.ClaimantAddress), digestHex); err != nil {
		log.Printf("warning: failed to publish authorization event: %v", err)
	}

	return signature, nil
}
