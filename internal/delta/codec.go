package delta

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/MKhiriev/go-save-keeper/internal/utils"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

// EfficiencyThreshold is the largest delta/full size ratio at which sending a
// delta is preferred over sending the whole snapshot.
const EfficiencyThreshold = 0.7

// arrayDiffRatio bounds the relative length difference up to which two
// arrays are diffed element by element rather than replaced.
const arrayDiffRatio = 0.5

// excludedPaths never take part in a diff. Apply sets version, lastModified
// and integrityHash itself.
var excludedPaths = map[string]struct{}{
	"/userId":         {},
	"/version":        {},
	"/lastModified":   {},
	"/integrityHash":  {},
	"/wasRepaired":    {},
	"/repairedAt":     {},
	"/repairedFields": {},
	"/extended/logs":  {},
}

// Codec creates and applies snapshot deltas.
type Codec struct {
	now   func() time.Time
	idGen *utils.UUIDGenerator
}

// NewCodec returns a Codec stamping deltas with time.Now.
func NewCodec() *Codec {
	return &Codec{now: time.Now, idGen: utils.NewUUIDGenerator()}
}

// WithClock replaces the clock used for CreatedAt and LastModified.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Create diffs base against target. It returns nil and no error when the two
// snapshots differ in excluded fields only. The delta advances base.Version
// by one.
func (c *Codec) Create(base, target models.Snapshot, clientID string) (*models.Delta, error) {
	if base.UserID != target.UserID {
		return nil, fmt.Errorf("%w: %q vs %q", ErrUserMismatch, base.UserID, target.UserID)
	}

	a, err := toTree(base)
	if err != nil {
		return nil, err
	}
	b, err := toTree(target)
	if err != nil {
		return nil, err
	}

	var ops []models.Operation
	if err = diff("", a, b, &ops); err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return nil, nil
	}

	return &models.Delta{
		ID:          c.idGen.Generate(),
		UserID:      base.UserID,
		BaseVersion: base.Version,
		NewVersion:  base.Version + 1,
		CreatedAt:   c.now().UnixMilli(),
		ClientID:    clientID,
		ChangeCount: len(ops),
		Operations:  ops,
	}, nil
}

func diff(path string, a, b any, ops *[]models.Operation) error {
	if _, skip := excludedPaths[path]; skip {
		return nil
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok {
			return appendOp(ops, models.OpReplace, path, b)
		}
		return diffObjects(path, av, bv, ops)

	case []any:
		bv, ok := b.([]any)
		if !ok || !comparableLengths(len(av), len(bv)) {
			if reflect.DeepEqual(a, b) {
				return nil
			}
			return appendOp(ops, models.OpReplace, path, b)
		}
		return diffArrays(path, av, bv, ops)
	}

	if reflect.DeepEqual(a, b) {
		return nil
	}
	return appendOp(ops, models.OpReplace, path, b)
}

func diffObjects(path string, a, b map[string]any, ops *[]models.Operation) error {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		child := joinPointer(path, k)
		if _, skip := excludedPaths[child]; skip {
			continue
		}

		av, inA := a[k]
		bv, inB := b[k]

		var err error
		switch {
		case inA && !inB:
			*ops = append(*ops, models.Operation{Op: models.OpRemove, Path: child})
		case !inA && inB:
			err = appendOp(ops, models.OpAdd, child, bv)
		default:
			err = diff(child, av, bv, ops)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func diffArrays(path string, a, b []any, ops *[]models.Operation) error {
	common := min(len(a), len(b))
	for i := 0; i < common; i++ {
		if err := diff(joinPointer(path, fmt.Sprint(i)), a[i], b[i], ops); err != nil {
			return err
		}
	}

	for i := common; i < len(b); i++ {
		if err := appendOp(ops, models.OpAdd, joinPointer(path, fmt.Sprint(i)), b[i]); err != nil {
			return err
		}
	}

	// trailing removals go back to front so every index stays valid
	for i := len(a) - 1; i >= common; i-- {
		*ops = append(*ops, models.Operation{Op: models.OpRemove, Path: joinPointer(path, fmt.Sprint(i))})
	}
	return nil
}

func comparableLengths(a, b int) bool {
	longest := max(a, b)
	if longest == 0 {
		return true
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return float64(d) < arrayDiffRatio*float64(longest)
}

func appendOp(ops *[]models.Operation, op models.OperationType, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncodingSnapshot, path, err)
	}
	*ops = append(*ops, models.Operation{Op: op, Path: path, Value: raw})
	return nil
}

// Apply replays d onto base and returns the resulting snapshot with Version
// set to d.NewVersion, LastModified refreshed and the integrity hash
// recomputed. base itself is not modified.
func (c *Codec) Apply(base models.Snapshot, d models.Delta) (models.Snapshot, error) {
	if base.Version != d.BaseVersion {
		return models.Snapshot{}, fmt.Errorf("%w: snapshot is at version %d, delta expects %d",
			models.ErrVersionConflict, base.Version, d.BaseVersion)
	}
	if d.UserID != "" && d.UserID != base.UserID {
		return models.Snapshot{}, fmt.Errorf("%w: %q vs %q", ErrUserMismatch, base.UserID, d.UserID)
	}

	doc, err := json.Marshal(base)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrEncodingSnapshot, err)
	}

	patched, err := applyPatch(doc, d.Operations)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("apply delta: %w", err)
	}

	var out models.Snapshot
	if err = json.Unmarshal(patched, &out); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrDecodingSnapshot, err)
	}

	out.Version = d.NewVersion
	out.LastModified = c.now().UnixMilli()
	validators.Seal(&out)

	return out, nil
}

// ApplyAll replays a chain of deltas in order.
func (c *Codec) ApplyAll(base models.Snapshot, deltas []models.Delta) (models.Snapshot, error) {
	cur := base
	for _, d := range deltas {
		next, err := c.Apply(cur, d)
		if err != nil {
			return models.Snapshot{}, err
		}
		cur = next
	}
	return cur, nil
}

// applyOptions forgive a remove whose target is already gone, so a retried
// delta does not fail halfway. Negative indices are not part of RFC 6901.
func applyOptions() *jsonpatch.ApplyOptions {
	opts := jsonpatch.NewApplyOptions()
	opts.AllowMissingPathOnRemove = true
	opts.SupportNegativeIndices = false
	return opts
}

func applyPatch(doc []byte, ops []models.Operation) ([]byte, error) {
	if len(ops) == 0 {
		return doc, nil
	}

	for i, op := range ops {
		if err := checkOperation(op); err != nil {
			return nil, fmt.Errorf("operation %d (%s %s): %w", i, op.Op, op.Path, err)
		}
	}

	raw, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingSnapshot, err)
	}
	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingSnapshot, err)
	}

	out, err := patch.ApplyWithOptions(doc, applyOptions())
	if err != nil {
		return nil, patchError(err)
	}
	return out, nil
}

// checkOperation rejects what the patch library would accept but a delta
// must not carry: unknown kinds, the root pointer and values that are not
// JSON.
func checkOperation(op models.Operation) error {
	if _, err := parsePointer(op.Path); err != nil {
		return err
	}

	switch op.Op {
	case models.OpAdd, models.OpReplace, models.OpTest:
		if !json.Valid(op.Value) {
			return fmt.Errorf("%w: value is not json", ErrDecodingSnapshot)
		}
	case models.OpMove, models.OpCopy:
		if _, err := parsePointer(op.From); err != nil {
			return fmt.Errorf("source: %w", err)
		}
	case models.OpRemove:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op.Op)
	}
	return nil
}

func patchError(err error) error {
	switch {
	case errors.Is(err, jsonpatch.ErrTestFailed):
		return fmt.Errorf("%w: %w", ErrTestFailed, err)
	case errors.Is(err, jsonpatch.ErrInvalidIndex):
		return fmt.Errorf("%w: %w", ErrIndexOutOfRange, err)
	default:
		return fmt.Errorf("%w: %w", ErrPathNotFound, err)
	}
}

// IsEfficient reports whether sending d is cheaper than sending full: the
// encoded delta must be smaller than EfficiencyThreshold of the encoded
// snapshot.
func IsEfficient(full models.Snapshot, d models.Delta) bool {
	fullSize, err := encodedSize(full)
	if err != nil || fullSize == 0 {
		return false
	}
	deltaSize, err := encodedSize(d)
	if err != nil {
		return false
	}
	return float64(deltaSize) < EfficiencyThreshold*float64(fullSize)
}

func encodedSize(v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}
