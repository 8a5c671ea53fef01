package service

import "errors"

var (
	ErrNoTiersConfigured     = errors.New("no storage tiers configured")
	ErrAllTiersRejected      = errors.New("no tier accepted the write")
	ErrOrchestratorClosed    = errors.New("save orchestrator is closed")
	ErrUserMismatch          = errors.New("snapshot belongs to another user")
	ErrFlushIncomplete       = errors.New("flush to device tier incomplete")
	ErrEmergencyBackupFailed = errors.New("emergency backup signature mismatch")

	ErrRemoteNotConfigured = errors.New("remote store is not configured")
	ErrPushFailed          = errors.New("push to remote store failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrEmptyDelta            = errors.New("delta has no operations")
)
