package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

type hmacSigner struct {
	key []byte
}

// NewSigner returns an HMAC-SHA256 [Signer] keyed by key.
func NewSigner(key string) (Signer, error) {
	if key == "" {
		return nil, ErrEmptySecret
	}
	return &hmacSigner{key: []byte(key)}, nil
}

func (s *hmacSigner) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *hmacSigner) Verify(payload []byte, signature string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), want)
}
