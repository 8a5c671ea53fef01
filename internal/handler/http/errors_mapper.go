package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/service"
	"github.com/MKhiriev/go-save-keeper/internal/utils"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

// errorStatuses is checked in order: a wrapped error may match several
// sentinels and the first one wins.
var errorStatuses = []struct {
	target error
	status int
}{
	{service.ErrUserMismatch, http.StatusForbidden},
	{models.ErrEmptyUserID, http.StatusBadRequest},
	{service.ErrEmptyDelta, http.StatusBadRequest},
	{models.ErrValidation, http.StatusBadRequest},
	{validators.ErrInvalidDelta, http.StatusBadRequest},
	{delta.ErrTestFailed, http.StatusConflict},
	{delta.ErrInvalidPointer, http.StatusBadRequest},
	{delta.ErrPathNotFound, http.StatusBadRequest},
	{delta.ErrIndexOutOfRange, http.StatusBadRequest},
	{delta.ErrUnknownOperation, http.StatusBadRequest},
	{models.ErrIntegrityMismatch, http.StatusBadRequest},
	{models.ErrNotFound, http.StatusNotFound},
	{models.ErrVersionConflict, http.StatusConflict},
	{models.ErrTimeout, http.StatusGatewayTimeout},
	{models.ErrTierUnavailable, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status of err and an [models.ErrorResponse].
// Internal errors are not echoed to the caller.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	resp := models.ErrorResponse{Error: err.Error(), Kind: models.KindOf(err)}
	if status == http.StatusInternalServerError {
		resp = models.ErrorResponse{Error: http.StatusText(status), Kind: models.KindInternal}
	}

	utils.WriteJSON(w, resp, status)
}
