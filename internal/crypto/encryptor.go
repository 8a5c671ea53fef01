// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// masterSalt domain-separates the master key of this application from any
// other use of the same secret.
var masterSalt = []byte("go-save-keeper/device-tier/v1")

// aesEncryptor is the private implementation of [Encryptor].
type aesEncryptor struct {
	master []byte

	// derived per-user keys
	keys sync.Map
}

// argonParams are the Argon2id parameters recommended by OWASP (2024):
// 1 iteration, 64 MiB, 4 threads, 32-byte key.
type argonParams struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

var defaultArgon = argonParams{time: 1, memory: 64 * 1024, threads: 4, keyLen: 32}

// NewEncryptor derives the master key from secret with Argon2id. The
// derivation runs once; per-user keys are cheap HKDF expansions of it.
func NewEncryptor(secret string) (Encryptor, error) {
	return newEncryptor(secret, defaultArgon)
}

func newEncryptor(secret string, p argonParams) (*aesEncryptor, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &aesEncryptor{
		master: argon2.IDKey([]byte(secret), masterSalt, p.time, p.memory, p.threads, p.keyLen),
	}, nil
}

func (e *aesEncryptor) userKey(userID string) ([]byte, error) {
	if k, ok := e.keys.Load(userID); ok {
		return k.([]byte), nil
	}

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, e.master, nil, []byte("progress:"+userID))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive user key: %w", err)
	}

	actual, _ := e.keys.LoadOrStore(userID, key)
	return actual.([]byte), nil
}

func (e *aesEncryptor) gcm(userID string) (cipher.AEAD, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	key, err := e.userKey(userID)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Encrypt implements [Encryptor]. The output is base64 (standard encoding)
// of nonce (12 bytes) ‖ ciphertext, with userID as additional data.
func (e *aesEncryptor) Encrypt(payload []byte, userID string) (string, error) {
	gcm, err := e.gcm(userID)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := gcm.Seal(nonce, nonce, payload, []byte(userID))
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Encryptor].
func (e *aesEncryptor) Decrypt(encoded string, userID string) ([]byte, error) {
	gcm, err := e.gcm(userID)
	if err != nil {
		return nil, err
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrDecrypt, err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	// wrong user or a flipped bit both fail the tag check
	plaintext, err := gcm.Open(nil, nonce, ciphertext, []byte(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	return plaintext, nil
}
