package eth

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer holds the operator private key and produces personal-message
// signatures over digests. The key never leaves this type.
type Signer struct {
	key *ecdsa.PrivateKey
}

// NewSigner parses a hex-encoded private key, with or without 0x prefix.
func NewSigner(privateKeyHex string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse operator key: %w", err)
	}
	return &Signer{key: key}, nil
}

// NewSignerFromKey wraps an already-parsed key, for tests.
func NewSignerFromKey(key *ecdsa.PrivateKey) *Signer {
	return &Signer{key: key}
}

// Address returns the operator's public address.
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// SignPersonal signs data under the personal-message scheme and returns the
// 0x-prefixed r || s || v signature with v in 27/28 form, matching what the
// contract's ecrecover path expects.
func (s *Signer) SignPersonal(data []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(data), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign: %w", err)
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}
