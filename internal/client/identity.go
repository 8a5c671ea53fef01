package client

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-save-keeper/internal/config"
)

// ErrInvalidIdentity is returned by Run when the session collaborator did
// not hand over a usable player.
var ErrInvalidIdentity = errors.New("no valid player identity")

// Identity is what the session collaborator tells the runtime about the
// player. The runtime trusts it and does not authenticate on its own.
type Identity struct {
	UserID string
	Token  string
	Valid  bool
}

// IdentityFromConfig builds the identity from configuration. It is valid
// when a player id is set and the token, if any, has not expired. The token
// signature is the server's concern and is not checked here.
func IdentityFromConfig(cfg config.ClientIdentity, now time.Time) Identity {
	id := Identity{UserID: cfg.UserID, Token: cfg.Token, Valid: cfg.UserID != ""}
	if !id.Valid || cfg.Token == "" {
		return id
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(cfg.Token, &claims); err != nil {
		id.Valid = false
		return id
	}
	if claims.Subject != "" && claims.Subject != cfg.UserID {
		id.Valid = false
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(now) {
		id.Valid = false
	}
	return id
}
