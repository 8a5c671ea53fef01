package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-keeper/internal/utils"
)

func TestAuth_Middleware_TableTest(t *testing.T) {
	expired, err := utils.GenerateJWTToken(testIssuer, testUser, -time.Minute, testSignKey)
	require.NoError(t, err)
	foreignIssuer, err := utils.GenerateJWTToken("someone-else", testUser, time.Hour, testSignKey)
	require.NoError(t, err)
	foreignKey, err := utils.GenerateJWTToken(testIssuer, testUser, time.Hour, "other-key")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
		wantUserID string
	}{
		{
			name:       "valid token",
			authHeader: bearer(t, testUser),
			wantStatus: http.StatusOK,
			wantUserID: testUser,
		},
		{
			name:       "empty Authorization header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:       "not a bearer token",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:       "bearer without token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + expired.SignedString,
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrTokenIsExpired.Error(),
		},
		{
			name:       "token of another issuer",
			authHeader: "Bearer " + foreignIssuer.SignedString,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with another key",
			authHeader: "Bearer " + foreignKey.SignedString,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler(t)

			var gotUserID string
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = utils.GetUserIDFromContext(r.Context())
			})

			rr := serve(t, th.auth(next), http.MethodGet, "/test", tt.authHeader, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, nextCalled)
			assert.Equal(t, tt.wantUserID, gotUserID)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}
