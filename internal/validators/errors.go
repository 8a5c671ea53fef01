package validators

import (
	"errors"

	"github.com/MKhiriev/go-save-keeper/models"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUserID         = models.ErrEmptyUserID
	ErrMissingSection      = errors.New("section is missing")
	ErrNotFinite           = errors.New("value is NaN or infinite")
	ErrNegative            = errors.New("value is negative")
	ErrBelowMinimum        = errors.New("value is below minimum")
	ErrOutOfRange          = errors.New("value is out of range")
	ErrFillExceedsCapacity = errors.New("fill exceeds capacity")
	ErrEmptyItemID         = errors.New("item id is empty")
	ErrInvalidVersion      = errors.New("invalid version")

	ErrInvalidDelta       = errors.New("invalid delta")
	ErrDeltaVersionStep   = errors.New("delta new version must be base version + 1")
	ErrUnknownOperation   = errors.New("unknown patch operation")
	ErrInvalidPointer     = errors.New("invalid json pointer")
	ErrMissingFromPointer = errors.New("move/copy operation without source path")
)

// FieldError ties a validation failure to the dotted path of the field.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
