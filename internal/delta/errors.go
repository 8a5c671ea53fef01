package delta

import "errors"

var (
	ErrUserMismatch     = errors.New("snapshots belong to different users")
	ErrInvalidPointer   = errors.New("invalid json pointer")
	ErrPathNotFound     = errors.New("path not found")
	ErrIndexOutOfRange  = errors.New("array index out of range")
	ErrUnknownOperation = errors.New("unknown patch operation")
	ErrTestFailed       = errors.New("test operation failed")
	ErrEncodingSnapshot = errors.New("error encoding snapshot")
	ErrDecodingSnapshot = errors.New("error decoding snapshot")
	ErrBrokenChain      = errors.New("delta history does not reach requested version")
)
