package crypto

import "errors"

var (
	// ErrEmptySecret is returned when a key source is empty.
	ErrEmptySecret = errors.New("empty secret")
	// ErrEmptyUserID is returned when a payload is bound to no user.
	ErrEmptyUserID = errors.New("empty user id")
	// ErrDecrypt covers every failure to open a blob.
	ErrDecrypt = errors.New("decryption failed")
)
