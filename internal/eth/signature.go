package eth

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the canonical r || s || v signature size.
const SignatureLength = 65

// DecodeSignature decodes a 0x-prefixed hex signature and checks its length.
func DecodeSignature(signatureHex string) ([]byte, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	return sig, nil
}

// RecoverPersonalSigner recovers the address that produced signature over
// message under the EIP-191 personal-message scheme (the scheme wallet
// signMessage uses, so a login signature cannot double as a transaction).
func RecoverPersonalSigner(message string, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(signature))
	}

	// Wallets emit v as 27/28; secp256k1 recovery wants 0/1.
	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// VerifyPersonalSignature reports whether signature over message was produced
// by the claimed address. The comparison is case-insensitive on the hex form.
func VerifyPersonalSignature(claimedAddress, message string, signature []byte) (bool, error) {
	recovered, err := RecoverPersonalSigner(message, signature)
	if err != nil {
		return false, err
	}
	return recovered == common.HexToAddress(claimedAddress), nil
}

// MintDigest hashes the packed (contract, claimant, tokenID) tuple exactly
// the way the contract re-derives it on redemption:
// keccak256(abi.encodePacked(address, address, uint256)).
func MintDigest(contract, claimant common.Address, tokenID *big.Int) []byte {
	return crypto.Keccak256(
		contract.Bytes(),
		claimant.Bytes(),
		common.LeftPadBytes(tokenID.Bytes(), 32),
	)
}
