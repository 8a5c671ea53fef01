package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/utils"
	"github.com/MKhiriev/go-save-keeper/models"
)

// hashedPayload decodes a request body and returns the payload the client
// hashed together with the hash it sent.
type hashedPayload func(body []byte) (payload any, hash string, err error)

func (h *Handler) snapshotHashing(next http.Handler) http.Handler {
	return h.bodyHashing(next, "*Handler.snapshotHashing", func(body []byte) (any, string, error) {
		var req models.SaveProgressRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, "", err
		}
		return req.Snapshot, req.Hash, nil
	})
}

func (h *Handler) deltaHashing(next http.Handler) http.Handler {
	return h.bodyHashing(next, "*Handler.deltaHashing", func(body []byte) (any, string, error) {
		var req models.SaveDeltaRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, "", err
		}
		return req.Delta, req.Hash, nil
	})
}

// bodyHashing recomputes the HMAC of the JSON-encoded payload and compares
// it with the hash from the body. The body is restored for next.
func (h *Handler) bodyHashing(next http.Handler, fn string, decode hashedPayload) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		payload, hash, err := decode(body)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("failed to decode JSON")
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("failed to marshal payload")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		hashedBody := utils.HashHex(payloadBytes)
		if hashedBody != hash {
			log.Error().Str("func", fn).
				Str("hash from request", hash).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			http.Error(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
