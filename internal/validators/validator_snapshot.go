package validators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-save-keeper/models"
)

// Section names accepted by Validate and Check.
const (
	SectionCritical = "critical"
	SectionRegular  = "regular"
	SectionExtended = "extended"
)

var allSections = []string{SectionCritical, SectionRegular, SectionExtended}

// Report is the outcome of Check.
type Report struct {
	Valid    bool
	Errors   []error
	Warnings []string
}

// Err folds the report into a single error wrapping [models.ErrValidation]
// and every field error. Returns nil for a valid report.
func (r Report) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %w", models.ErrValidation, errors.Join(r.Errors...))
}

// SnapshotValidator implements both [Validator] and [Integrity].
type SnapshotValidator struct {
	now func() time.Time
}

// NewSnapshotValidator returns a validator stamping repairs with time.Now.
func NewSnapshotValidator() *SnapshotValidator {
	return &SnapshotValidator{now: time.Now}
}

// WithClock replaces the clock used for RepairedAt. Intended for tests.
func (v *SnapshotValidator) WithClock(now func() time.Time) *SnapshotValidator {
	v.now = now
	return v
}

// Validate implements [Validator]. Snapshots are checked section by section,
// deltas structurally.
func (v *SnapshotValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Snapshot:
		return v.validateSnapshot(value, fields...)
	case *models.Snapshot:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateSnapshot(*value, fields...)

	case models.Delta:
		return v.validateDelta(value)
	case *models.Delta:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateDelta(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *SnapshotValidator) validateSnapshot(s models.Snapshot, sections ...string) error {
	for _, section := range sections {
		if !isKnownSection(section) {
			return fmt.Errorf("%w: %s", ErrUnknownField, section)
		}
	}

	return v.Check(s, sections...).Err()
}

// Check implements [Integrity]. With no sections given every section and the
// envelope (user, version, hash) are checked.
func (v *SnapshotValidator) Check(s models.Snapshot, sections ...string) Report {
	if len(sections) == 0 {
		sections = allSections
	}

	c := &checker{}
	if s.UserID == "" {
		c.fail("userId", ErrEmptyUserID)
	}
	if s.Version < 0 {
		c.fail("version", ErrInvalidVersion)
	}
	if s.LastModified <= 0 {
		c.warn("lastModified", "timestamp is not set")
	}

	for _, section := range sections {
		switch section {
		case SectionCritical:
			c.critical(s.Critical)
			c.integrity(s)
		case SectionRegular:
			c.regular(s.Regular)
		case SectionExtended:
			c.extended(s.Extended)
		}
	}

	return Report{Valid: len(c.errs) == 0, Errors: c.errs, Warnings: c.warns}
}

// Repair implements [Integrity].
func (v *SnapshotValidator) Repair(s models.Snapshot) (models.Snapshot, []string) {
	out := s.Clone()
	r := &repairer{}

	r.critical(&out.Critical)
	criticalRepaired := len(r.fields) > 0

	r.regular(&out.Regular)
	r.extended(&out.Extended)

	if out.Version < 0 {
		out.Version = 0
		r.mark("version")
	}

	// the hash follows the repaired critical section; a snapshot that never
	// had a hash keeps none unless its critical section changed
	if sum, err := ChecksumCritical(out.Critical); err == nil && sum != out.IntegrityHash {
		if criticalRepaired || out.IntegrityHash != "" {
			out.IntegrityHash = sum
			r.mark("integrityHash")
		}
	}

	if len(r.fields) == 0 {
		return s, nil
	}

	out.WasRepaired = true
	out.RepairedAt = v.now().UnixMilli()
	out.RepairedFields = r.fields

	return out, r.fields
}

func isKnownSection(section string) bool {
	for _, s := range allSections {
		if s == section {
			return true
		}
	}
	return false
}
