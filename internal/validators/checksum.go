package validators

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-save-keeper/models"
)

// ChecksumCritical returns the hex SHA-256 of the JSON encoding of c.
// Field order is fixed by the struct definition, so the encoding is stable.
// Fails when c holds NaN or infinite values, which JSON cannot encode.
func ChecksumCritical(c models.CriticalState) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode critical section: %w", err)
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Seal recomputes the integrity hash of s in place. It is a no-op when the
// critical section cannot be encoded.
func Seal(s *models.Snapshot) {
	if sum, err := ChecksumCritical(s.Critical); err == nil {
		s.IntegrityHash = sum
	}
}

// VerifyChecksum reports whether the stored hash of s matches its critical
// section. A snapshot without a hash is reported as matching.
func VerifyChecksum(s models.Snapshot) bool {
	if s.IntegrityHash == "" {
		return true
	}
	sum, err := ChecksumCritical(s.Critical)
	if err != nil {
		return false
	}
	return sum == s.IntegrityHash
}
