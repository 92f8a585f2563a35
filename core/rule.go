package core

import "fmt"

// RuleKind is the closed set of eligibility-gate variants. Adding a kind
// means extending every switch that consumes it; there is no default-allow.
type RuleKind string

const (
	RuleAllowlist RuleKind = "allowlist"
	RuleCode      RuleKind = "code"
	RuleNFT       RuleKind = "nft"
)

// MintRule gates minting of one ticket of one event. Exactly one of the
// value fields is meaningful, selected by Kind. Immutable once created.
type MintRule struct {
	EventID     string
	TicketIndex uint64
	Kind        RuleKind

	Addresses []string // allowlist: member addresses, any case
	Secret    string   // code: shared secret, compared byte-exact
	Contracts []string // nft: contract addresses to query ownership against
}

// Validate rejects malformed rule rows before evaluation.
func (r *MintRule) Validate() error {
	switch r.Kind {
	case RuleAllowlist:
		if len(r.Addresses) == 0 {
			return fmt.Errorf("allowlist rule with no addresses: %w", ErrRuleNotFound)
		}
	case RuleCode:
		if r.Secret == "" {
			return fmt.Errorf("code rule with no secret: %w", ErrRuleNotFound)
		}
	case RuleNFT:
		if len(r.Contracts) == 0 {
			return fmt.Errorf("nft rule with no contracts: %w", ErrRuleNotFound)
		}
	default:
		return fmt.Errorf("unknown rule kind %q: %w", r.Kind, ErrRuleNotFound)
	}
	return nil
}

// AllowsAddress reports allowlist membership, case-insensitively.
// Only meaningful for allowlist rules.
func (r *MintRule) AllowsAddress(claimant string) bool {
	want := NormalizeAddress(claimant)
	for _, a := range r.Addresses {
		if NormalizeAddress(a) == want {
			return true
		}
	}
	return false
}

// MatchesCode compares the supplied secret against the rule secret.
// Exact byte match: codes are copy-pasted, so no trimming or case-folding.
func (r *MintRule) MatchesCode(supplied string) bool {
	return r.Secret != "" && supplied == r.Secret
}
