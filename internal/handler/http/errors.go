// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors reported by the auth middleware in the 401 response body.
var (
	// ErrEmptyAuthorizationHeader means the request has no "Authorization"
	// header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader means the header is not of the
	// "Bearer <token>" form.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrTokenIsExpired = errors.New("token is expired")

	// ErrIntegrityCheckFailed means the body hash does not match the payload.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
)
