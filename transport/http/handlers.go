package http

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thirdevent/gatekeeper/core"
	"github.com/thirdevent/gatekeeper/service"
)

// Session cookie names. The access token is the only artifact trusted for
// authorization; the other two are client-readable UI hints.
const (
	CookieAccessToken     = "thirdevent-access_token"
	CookieTokenExpiration = "thirdevent-token_expiration"
	CookieUserID          = "thirdevent-user_id"
)

// AuthHandlers contains the HTTP handlers for the auth and authorization
// endpoints.
type AuthHandlers struct {
	auth          *service.AuthService
	mint          *service.MintService
	secureCookies bool
}

// NewAuthHandlers creates new auth handlers. secureCookies should be false
// only in local development.
func NewAuthHandlers(auth *service.AuthService, mint *service.MintService, secureCookies bool) *AuthHandlers {
	return &AuthHandlers{
		auth:          auth,
		mint:          mint,
		secureCookies: secureCookies,
	}
}

type userResponse struct {
	ID            string `json:"id"`
	WalletAddress string `json:"walletAddress"`
	Name          string `json:"name"`
	Thumbnail     string `json:"thumbnail,omitempty"`
}

func toUserResponse(identity *core.Identity) userResponse {
	return userResponse{
		ID:            identity.ID,
		WalletAddress: identity.WalletAddress,
		Name:          identity.Name,
		Thumbnail:     identity.Thumbnail,
	}
}

// Login authenticates the wallet signature carried in the request headers,
// creates the identity on first use and sets the three session cookies.
func (h *AuthHandlers) Login(c *gin.Context) {
	address := c.GetHeader(HeaderAddress)
	message := c.GetHeader(HeaderMessage)
	signature := c.GetHeader(HeaderSignature)

	identity, session, token, err := h.auth.Login(c.Request.Context(), address, message, signature)
	if err != nil {
		abortWithError(c, err)
		return
	}

	maxAge := int(session.ExpiresAt.Sub(session.IssuedAt) / time.Second)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieAccessToken, token, maxAge, "/", "", h.secureCookies, true)
	c.SetCookie(CookieTokenExpiration, strconv.FormatInt(session.ExpiresAt.Unix(), 10), maxAge, "/", "", h.secureCookies, false)
	c.SetCookie(CookieUserID, session.UserID, maxAge, "/", "", h.secureCookies, false)

	c.JSON(http.StatusOK, gin.H{
		"message": "User authenticated",
		"user":    toUserResponse(identity),
	})
}

// Logout revokes the session server-side and clears all three cookies.
// Idempotent: logging out without a session is still a 200.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, _ := c.Cookie(CookieAccessToken)

	if err := h.auth.SignOut(c.Request.Context(), token); err != nil {
		abortWithError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieAccessToken, "", -1, "/", "", h.secureCookies, true)
	c.SetCookie(CookieTokenExpiration, "", -1, "/", "", h.secureCookies, false)
	c.SetCookie(CookieUserID, "", -1, "/", "", h.secureCookies, false)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the identity behind the validated session cookie.
func (h *AuthHandlers) Me(c *gin.Context) {
	session := c.MustGet(ctxSession).(*core.Session)

	identity, err := h.auth.CurrentUser(c.Request.Context(), session)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(identity)})
}

// CurrentTime exposes the trusted server clock for client-side claim
// countdowns. Informational only; every real window check re-reads the
// clock server-side.
func (h *AuthHandlers) CurrentTime(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currentTime": time.Now().UTC().Format(time.RFC3339)})
}

// GetSignatureToMint evaluates the ticket's eligibility gate for the caller
// and returns an operator signature over the mint scope on pass.
func (h *AuthHandlers) GetSignatureToMint(c *gin.Context) {
	var req struct {
		ContractAddress string `json:"contractAddress" binding:"required"`
		EventID         string `json:"eventId" binding:"required"`
		TicketIndex     uint64 `json:"ticketIndex"`
		Code            string `json:"code"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{"bad_request", "You cannot mint."})
		return
	}

	claimant := c.MustGet(ctxWalletAddress).(string)

	signature, err := h.mint.AuthorizeMint(c.Request.Context(), claimant, req.ContractAddress, req.EventID, req.TicketIndex, req.Code)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"signature": signature})
}

// GetSignatureToClaim checks the claim window and token ownership and
// returns an operator signature over the claim scope on pass.
func (h *AuthHandlers) GetSignatureToClaim(c *gin.Context) {
	var req struct {
		ContractAddress string `json:"contractAddress" binding:"required"`
		EventID         string `json:"eventId" binding:"required"`
		ClaimID         string `json:"claimId" binding:"required"`
		TokenID         uint64 `json:"tokenId"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{"bad_request", "You cannot mint."})
		return
	}

	claimant := c.MustGet(ctxWalletAddress).(string)

	signature, err := h.mint.AuthorizeClaim(c.Request.Context(), claimant, req.ContractAddress, req.EventID, req.ClaimID, new(big.Int).SetUint64(req.TokenID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"signature": signature})
}
