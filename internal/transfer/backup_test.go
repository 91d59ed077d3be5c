package transfer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/spendwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupManager(t *testing.T, at time.Time) *BackupManager {
	t.Helper()
	bm, err := NewBackupManager(filepath.Join(t.TempDir(), "backups"))
	require.NoError(t, err)
	bm.now = func() time.Time { return at }
	return bm
}

func TestBackupManager_CreateAndRestore(t *testing.T) {
	ctx := context.Background()
	bm := newBackupManager(t, now)
	src := populated(t)

	meta, err := bm.Create(ctx, src, "")
	require.NoError(t, err)
	assert.Equal(t, "expense-tracker-backup-2024-06-15", meta.ID)
	assert.Equal(t, 2, meta.Expenses)
	assert.Positive(t, meta.FileSize)

	path, err := bm.Path(meta.ID)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(bm.Dir(), meta.ID+".meta.json"))

	dst := newLedger(t)
	res, err := bm.Restore(ctx, dst, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Expenses)
	assert.Equal(t, src.Snapshot().Expenses, dst.Snapshot().Expenses)
	assert.Equal(t, model.CurrencyUSD, dst.Settings().Currency)
}

func TestBackupManager_CreateExisting(t *testing.T) {
	ctx := context.Background()
	bm := newBackupManager(t, now)
	src := newLedger(t)

	_, err := bm.Create(ctx, src, "")
	require.NoError(t, err)
	_, err = bm.Create(ctx, src, "")
	assert.ErrorIs(t, err, ErrBackupExists)
}

func TestBackupManager_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	bm := newBackupManager(t, now)
	src := newLedger(t)

	for i, name := range []string{"first", "second", "third"} {
		bm.now = func() time.Time { return now.Add(time.Duration(i) * time.Hour) }
		_, err := bm.Create(ctx, src, name)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(bm.Dir(), "broken.meta.json"), []byte("{"), 0600))

	backups, err := bm.List(ctx)
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, "third", backups[0].ID)
	assert.Equal(t, "first", backups[2].ID)
}

func TestBackupManager_InvalidNames(t *testing.T) {
	ctx := context.Background()
	bm := newBackupManager(t, now)
	src := newLedger(t)

	for _, name := range []string{"../escape", "a/b", `a\b`, ".."} {
		_, err := bm.Create(ctx, src, name)
		assert.ErrorIs(t, err, ErrInvalidBackupName, name)
		_, err = bm.Restore(ctx, src, name)
		assert.ErrorIs(t, err, ErrInvalidBackupName, name)
	}
}

func TestBackupManager_RestoreMissing(t *testing.T) {
	bm := newBackupManager(t, now)
	_, err := bm.Restore(context.Background(), newLedger(t), "nope")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestBackupManager_Delete(t *testing.T) {
	ctx := context.Background()
	bm := newBackupManager(t, now)

	meta, err := bm.Create(ctx, newLedger(t), "")
	require.NoError(t, err)
	require.NoError(t, bm.Delete(ctx, meta.ID))

	backups, err := bm.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, backups)
	assert.ErrorIs(t, bm.Delete(ctx, meta.ID), ErrBackupNotFound)
}
