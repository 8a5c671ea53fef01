package store

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-save-keeper/internal/mock"
	"github.com/MKhiriev/go-save-keeper/models"
)

// reverseEncryptor is a reversible stand-in for the device encryptor that
// still binds the blob to the user.
type reverseEncryptor struct{}

func (reverseEncryptor) Encrypt(payload []byte, userID string) (string, error) {
	out := make([]byte, len(payload))
	for i, b := range payload {
		out[len(payload)-1-i] = b ^ 0x5a
	}
	return userID + ":" + base64.StdEncoding.EncodeToString(out), nil
}

func (reverseEncryptor) Decrypt(blob string, userID string) ([]byte, error) {
	prefix := userID + ":"
	if !strings.HasPrefix(blob, prefix) {
		return nil, errors.New("wrong user")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(blob, prefix))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	for i, b := range raw {
		out[len(raw)-1-i] = b ^ 0x5a
	}
	return out, nil
}

func TestDeviceTier_SaveLoadEncrypted(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()

	tier, err := NewDeviceTier(dir, reverseEncryptor{}, 2, nopLogger())
	require.NoError(t, err)
	assert.Equal(t, models.TierDevice, tier.Name())

	for v := int64(1); v <= 4; v++ {
		res := tier.Save(ctx, "player/1", snapshotAt("player/1", v, float64(v*10)), models.SaveOptions{})
		require.True(t, res.Success, res.Message)
	}

	loaded := tier.Load(ctx, "player/1", models.LoadOptions{})
	require.True(t, loaded.Success, loaded.Message)
	assert.Equal(t, int64(4), loaded.Snapshot.Version)
	assert.Equal(t, 40.0, loaded.Snapshot.Critical.Coins)

	backup := tier.Load(ctx, "player/1", models.LoadOptions{Backup: 2})
	require.True(t, backup.Success)
	assert.Equal(t, int64(2), backup.Snapshot.Version)
	assert.False(t, tier.Load(ctx, "player/1", models.LoadOptions{Backup: 3}).Success)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")

	raw, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "containerCapacity")
	assert.Contains(t, string(raw), `"userId":"player/1"`)
}

func TestDeviceTier_EmergencySlot(t *testing.T) {
	ctx := testContext()
	tier, err := NewDeviceTier(t.TempDir(), reverseEncryptor{}, 3, nopLogger())
	require.NoError(t, err)

	require.True(t, tier.Save(ctx, "u1", snapshotAt("u1", 3, 3), models.SaveOptions{Emergency: true}).Success)

	assert.False(t, tier.Exists(ctx, "u1"), "emergency slot is not a canonical record")
	res := tier.Load(ctx, "u1", models.LoadOptions{Emergency: true})
	require.True(t, res.Success)
	assert.Equal(t, int64(3), res.Snapshot.Version)
}

func TestDeviceTier_DecryptFailure(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	enc := mock.NewMockEncryptor(ctrl)

	dir := t.TempDir()
	tier, err := NewDeviceTier(dir, enc, 3, nopLogger())
	require.NoError(t, err)

	enc.EXPECT().Encrypt(gomock.Any(), "u1").Return("blob", nil)
	require.True(t, tier.Save(ctx, "u1", snapshotAt("u1", 1, 1), models.SaveOptions{}).Success)

	enc.EXPECT().Decrypt("blob", "u1").Return(nil, errors.New("bad tag"))
	res := tier.Load(ctx, "u1", models.LoadOptions{})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrDecodingRecord)
}

func TestDeviceTier_EncryptFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	enc := mock.NewMockEncryptor(ctrl)
	tier, err := NewDeviceTier(t.TempDir(), enc, 3, nopLogger())
	require.NoError(t, err)

	enc.EXPECT().Encrypt(gomock.Any(), "u1").Return("", errors.New("no key"))

	res := tier.Save(testContext(), "u1", snapshotAt("u1", 1, 1), models.SaveOptions{})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, models.ErrTierUnavailable)
}

func TestFileTier_CorruptFileIsReplacedOnSave(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	tier, err := NewDeviceTier(dir, reverseEncryptor{}, 3, nopLogger())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(tier.path("u1"), []byte("{not json"), 0o600))

	assert.False(t, tier.Load(ctx, "u1", models.LoadOptions{}).Success)
	require.True(t, tier.Save(ctx, "u1", snapshotAt("u1", 1, 1), models.SaveOptions{}).Success)
	assert.True(t, tier.Load(ctx, "u1", models.LoadOptions{}).Success)
}

func TestFileTier_DeleteClear(t *testing.T) {
	ctx := testContext()
	tier, err := NewDeviceTier(t.TempDir(), reverseEncryptor{}, 3, nopLogger())
	require.NoError(t, err)

	require.True(t, tier.Save(ctx, "u1", snapshotAt("u1", 1, 1), models.SaveOptions{}).Success)
	require.True(t, tier.Save(ctx, "u2", snapshotAt("u2", 1, 1), models.SaveOptions{}).Success)

	assert.True(t, tier.Delete(ctx, "u1"))
	assert.True(t, tier.Delete(ctx, "u1"), "deleting twice is not a failure")
	assert.False(t, tier.Exists(ctx, "u1"))
	assert.True(t, tier.Exists(ctx, "u2"))

	assert.True(t, tier.Clear(ctx))
	assert.False(t, tier.Exists(ctx, "u2"))
}

func TestSessionTier_TempDirRemovedOnClose(t *testing.T) {
	ctx := testContext()
	tier, err := NewSessionTier("", 3, nopLogger())
	require.NoError(t, err)
	assert.Equal(t, models.TierSession, tier.Name())

	require.True(t, tier.Save(ctx, "u1", snapshotAt("u1", 1, 1), models.SaveOptions{}).Success)
	res := tier.Load(ctx, "u1", models.LoadOptions{})
	require.True(t, res.Success)

	dir := tier.Dir()
	require.NoError(t, tier.Close())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestSessionTier_ConfiguredDirIsKept(t *testing.T) {
	ctx := testContext()
	dir := filepath.Join(t.TempDir(), "session")
	tier, err := NewSessionTier(dir, 3, nopLogger())
	require.NoError(t, err)

	require.True(t, tier.Save(ctx, "u1", snapshotAt("u1", 1, 1), models.SaveOptions{}).Success)
	require.NoError(t, tier.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
