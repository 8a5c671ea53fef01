// Package utils holds small helpers shared by the client and the server:
// context keys, HMAC body hashing, JSON responses, the resty client wrapper,
// JWT handling and id generation.
package utils

import (
	"context"
)

// contextKey keeps this package's context keys from colliding with
// string keys set elsewhere.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated player id.
//
//	ctx = utils.WithUserID(ctx, "U")
var UserIDCtxKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext returns the player id stored by WithUserID. ok is
// false when the value is missing, has another type or is empty.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}
