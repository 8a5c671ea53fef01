package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool holds keyed HMAC-SHA256 instances. InitHasherPool must run
// before Hash or HashHex.
var hasherPool sync.Pool

// InitHasherPool (re)creates the pool with hashKey. Both the client adapter
// and the server hashing middleware call it with the shared body hash key.
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash returns the HMAC-SHA256 of data using a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashHex is Hash encoded as lowercase hex, the form sent in request
// bodies and headers.
func HashHex(data []byte) string {
	return hex.EncodeToString(Hash(data))
}

// HashString computes a one-off HMAC-SHA256 of data with hashKey without
// touching the pool.
//
//	signature := utils.HashString("payload", "secret")
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
