package ports

import "github.com/thirdevent/gatekeeper/core"

// Tokenizer converts between sessions and their signed token form.
type Tokenizer interface {
	SessionToToken(session *core.Session) (string, error)

	// TokenToSession parses and signature-checks a token against a trusted
	// clock. It returns core.ErrSessionExpired for a well-formed token past
	// its expiry and core.ErrSessionInvalid for anything malformed or badly
	// signed.
	TokenToSession(token string) (*core.Session, error)
}
