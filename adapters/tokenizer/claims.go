package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims combines standard claims with the product-specific ones the
// rest of the application reads off the session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	WalletAddress string `json:"wallet_address"`
	Role          string `json:"role"`
}
