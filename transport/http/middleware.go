package http

import (
	"github.com/gin-gonic/gin"
	"github.com/thirdevent/gatekeeper/core"
	"github.com/thirdevent/gatekeeper/service"
)

// Signature headers set by the client on every authorization-path call.
const (
	HeaderAddress   = "X-ADDRESS"
	HeaderMessage   = "X-MESSAGE"
	HeaderSignature = "X-SIGNATURE"
)

// Context keys set by the guards.
const (
	ctxWalletAddress = "walletAddress"
	ctxSession       = "session"
)

// SignatureGuard rejects any request whose signature headers are absent or
// do not recover to the claimed address. It runs before handler logic and
// before any store access; on pass it stores the normalized address.
func SignatureGuard(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetHeader(HeaderAddress)
		message := c.GetHeader(HeaderMessage)
		signature := c.GetHeader(HeaderSignature)

		if err := auth.VerifyWallet(address, message, signature); err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ctxWalletAddress, core.NormalizeAddress(address))
		c.Next()
	}
}

// SessionGuard rejects requests without a valid session cookie. The signed
// token is re-validated on every call; the client's plaintext expiry cookie
// is a UI hint and never consulted here.
func SessionGuard(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieAccessToken)
		if err != nil {
			abortWithError(c, core.ErrSessionInvalid)
			return
		}

		session, err := auth.ValidateSession(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ctxSession, session)
		c.Next()
	}
}
