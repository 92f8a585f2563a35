package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thirdevent/gatekeeper/core"
)

// errorBody is the wire shape of every rejection: a stable machine reason
// plus a human string. Known failures never escape as 500s.
type errorBody struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

var errorBodies = []struct {
	err  error
	body errorBody
}{
	{core.ErrMissingCredential, errorBody{"missing_credential", "Wrong signature."}},
	{core.ErrSignatureMismatch, errorBody{"signature_mismatch", "Wrong signature."}},
	{core.ErrIdentityLookup, errorBody{"identity_lookup_failed", "Failed to login"}},
	{core.ErrRuleNotFound, errorBody{"rule_not_found", "You cannot mint."}},
	{core.ErrRuleDenied, errorBody{"rule_denied", "You cannot mint."}},
	{core.ErrIndexerUnavailable, errorBody{"indexer_unavailable", "You cannot mint."}},
	{core.ErrClaimNotFound, errorBody{"claim_not_found", "Claim not found."}},
	{core.ErrClaimExpired, errorBody{"claim_expired", "Claim expired."}},
	{core.ErrSessionExpired, errorBody{"session_expired", "Token expired."}},
	{core.ErrSessionRevoked, errorBody{"session_revoked", "Invalid token."}},
	{core.ErrSessionInvalid, errorBody{"session_invalid", "Invalid token."}},
}

// rejection maps a service error onto its wire body. Unknown errors become a
// generic 400 and are logged server-side; the caller never sees internals.
func rejection(err error) errorBody {
	for _, e := range errorBodies {
		if errors.Is(err, e.err) {
			return e.body
		}
	}
	log.Printf("unexpected error on auth path: %v", err)
	return errorBody{"internal", "Bad request."}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, rejection(err))
}
