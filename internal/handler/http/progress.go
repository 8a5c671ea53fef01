package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/utils"
	"github.com/MKhiriev/go-save-keeper/models"
)

func (h *Handler) saveProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.saveProgress").Msg("no user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.SaveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.saveProgress").Msg("invalid JSON body")
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	meta, err := h.services.ProgressService.SaveProgress(r.Context(), userID, req.Snapshot)
	if err != nil {
		log.Err(err).Str("func", "*Handler.saveProgress").Str("user_id", userID).Msg("progress was not saved")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, meta, http.StatusOK)
}

func (h *Handler) saveDelta(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.saveDelta").Msg("no user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.SaveDeltaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.saveDelta").Msg("invalid JSON body")
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	meta, err := h.services.ProgressService.SaveDelta(r.Context(), userID, req.Delta)
	if err != nil {
		log.Err(err).Str("func", "*Handler.saveDelta").
			Str("user_id", userID).
			Int64("base_version", req.Delta.BaseVersion).
			Msg("delta was not applied")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, meta, http.StatusOK)
}

func (h *Handler) loadProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	snapshot, err := h.services.ProgressService.LoadProgress(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.loadProgress").Str("user_id", userID).Send()
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, snapshot, http.StatusOK)
}

func (h *Handler) loadMeta(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	meta, err := h.services.ProgressService.LoadMeta(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.loadMeta").Str("user_id", userID).Send()
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, meta, http.StatusOK)
}

func (h *Handler) deleteProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.ProgressService.DeleteProgress(r.Context(), userID); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteProgress").Str("user_id", userID).Send()
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
