package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

// ProgressValidationService rejects malformed snapshots and deltas before
// they reach the wrapped service.
type ProgressValidationService struct {
	inner     ServerProgressService
	validator validators.Validator
}

func NewProgressValidationService() ServerProgressServiceWrapper {
	return &ProgressValidationService{
		validator: validators.NewSnapshotValidator(),
	}
}

func (v *ProgressValidationService) SaveProgress(ctx context.Context, userID string, snapshot models.Snapshot) (models.RemoteMeta, error) {
	if snapshot.UserID == "" {
		snapshot.UserID = userID
	}
	if snapshot.Version == 0 {
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", models.ErrValidation, validators.ErrInvalidVersion)
	}
	// the snapshot was sealed by the client: a broken checksum is rejected
	// here, not repaired
	if err := v.validator.Validate(ctx, snapshot); err != nil {
		return models.RemoteMeta{}, fmt.Errorf("error during snapshot validation before saving: %w", err)
	}

	return v.inner.SaveProgress(ctx, userID, snapshot)
}

func (v *ProgressValidationService) SaveDelta(ctx context.Context, userID string, d models.Delta) (models.RemoteMeta, error) {
	if len(d.Operations) == 0 {
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", models.ErrValidation, ErrEmptyDelta)
	}
	if d.UserID == "" {
		d.UserID = userID
	}
	if err := v.validator.Validate(ctx, d); err != nil {
		return models.RemoteMeta{}, fmt.Errorf("%w: error during delta validation before saving: %w", models.ErrValidation, err)
	}

	return v.inner.SaveDelta(ctx, userID, d)
}

func (v *ProgressValidationService) LoadProgress(ctx context.Context, userID string) (models.Snapshot, error) {
	return v.inner.LoadProgress(ctx, userID)
}

func (v *ProgressValidationService) LoadMeta(ctx context.Context, userID string) (models.RemoteMeta, error) {
	return v.inner.LoadMeta(ctx, userID)
}

func (v *ProgressValidationService) DeleteProgress(ctx context.Context, userID string) error {
	return v.inner.DeleteProgress(ctx, userID)
}

func (v *ProgressValidationService) Wrap(wrapper ServerProgressService) ServerProgressService {
	v.inner = wrapper
	return v
}
