package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-save-keeper/models"
)

func (v *SnapshotValidator) validateDelta(d models.Delta) error {
	var errs []error

	if d.UserID == "" {
		errs = append(errs, &FieldError{Path: "userId", Err: ErrEmptyUserID})
	}
	if d.BaseVersion < 0 {
		errs = append(errs, &FieldError{Path: "baseVersion", Err: ErrInvalidVersion})
	}
	if d.NewVersion != d.BaseVersion+1 {
		errs = append(errs, &FieldError{Path: "newVersion", Err: ErrDeltaVersionStep})
	}

	for i, op := range d.Operations {
		path := fmt.Sprintf("operations[%d]", i)

		switch op.Op {
		case models.OpAdd, models.OpRemove, models.OpReplace, models.OpTest:
		case models.OpMove, models.OpCopy:
			if !isPointer(op.From) {
				errs = append(errs, &FieldError{Path: path + ".from", Err: ErrMissingFromPointer})
			}
		default:
			errs = append(errs, &FieldError{Path: path + ".op", Err: ErrUnknownOperation})
		}

		if !isPointer(op.Path) {
			errs = append(errs, &FieldError{Path: path + ".path", Err: ErrInvalidPointer})
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidDelta, errors.Join(errs...))
}

// isPointer accepts non-root RFC 6901 pointers.
func isPointer(p string) bool {
	return len(p) > 1 && strings.HasPrefix(p, "/")
}
