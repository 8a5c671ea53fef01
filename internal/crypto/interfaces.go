package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Encryptor protects snapshot payloads at rest. Every user gets an own key
// derived from the process secret, so a blob of one user never decrypts
// under another user id.
//
// Схема:
//
//	master = Argon2id(secret, salt)                 (один раз при старте)
//	key    = HKDF-SHA256(master, info=userID)       (на пользователя, кэшируется)
//	blob   = base64(nonce || AES-GCM(key, payload, aad=userID))
type Encryptor interface {
	// Encrypt seals payload for userID and returns a base64 blob.
	Encrypt(payload []byte, userID string) (string, error)

	// Decrypt opens a blob produced by Encrypt for the same userID. Any
	// tampering, truncation or user mismatch yields ErrDecrypt.
	Decrypt(blob string, userID string) ([]byte, error)
}

// Signer produces and checks detached payload signatures.
type Signer interface {
	// Sign returns the hex HMAC-SHA256 of payload.
	Sign(payload []byte) string

	// Verify reports whether signature matches payload. Comparison is
	// constant-time.
	Verify(payload []byte, signature string) bool
}
