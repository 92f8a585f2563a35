package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/thirdevent/gatekeeper/core"
	"github.com/thirdevent/gatekeeper/ports"
)

// DefaultTimeout bounds every indexer call; the indexer is the only network
// hop on the authorization path and must not stall a request.
const DefaultTimeout = 10 * time.Second

// AlchemyClient implements the Indexer interface against the Alchemy NFT
// API. Any transport or decoding failure surfaces as ErrIndexerUnavailable
// so callers fail closed instead of granting access on a broken query.
type AlchemyClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAlchemyClient creates an indexer client for the given network base URL,
// e.g. "https://polygon-mumbai.g.alchemy.com".
func NewAlchemyClient(baseURL, apiKey string) ports.Indexer {
	return &AlchemyClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

type ownersResponse struct {
	Owners []string `json:"owners"`
}

type ownedNFTsResponse struct {
	TotalCount int `json:"totalCount"`
}

// OwnersOf returns the current owners of one token.
func (c *AlchemyClient) OwnersOf(ctx context.Context, contractAddress string, tokenID *big.Int) ([]string, error) {
	q := url.Values{}
	q.Set("contractAddress", contractAddress)
	q.Set("tokenId", tokenID.String())

	var resp ownersResponse
	if err := c.get(ctx, "getOwnersForNFT", q, &resp); err != nil {
		return nil, err
	}

	return resp.Owners, nil
}

// OwnsAny reports whether owner holds at least one token from any of the
// given contracts.
func (c *AlchemyClient) OwnsAny(ctx context.Context, owner string, contracts []string) (bool, error) {
	q := url.Values{}
	q.Set("owner", owner)
	q.Set("withMetadata", "false")
	for _, contract := range contracts {
		q.Add("contractAddresses[]", contract)
	}

	var resp ownedNFTsResponse
	if err := c.get(ctx, "getNFTsForOwner", q, &resp); err != nil {
		return false, err
	}

	return resp.TotalCount > 0, nil
}

func (c *AlchemyClient) get(ctx context.Context, method string, q url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/nft/v3/%s/%s?%s", c.baseURL, c.apiKey, method, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build indexer request: %w", core.ErrIndexerUnavailable)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("indexer request failed: %w", core.ErrIndexerUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("indexer returned status %d: %w", resp.StatusCode, core.ErrIndexerUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode indexer response: %w", core.ErrIndexerUnavailable)
	}

	return nil
}
