package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nitiprint/nitiprint-api/pkg/config"
)

func newTestStore(t *testing.T) *ArtifactStore {
	t.Helper()
	base := t.TempDir()
	store, err := NewArtifactStore(config.StorageConfig{
		TempDir:   filepath.Join(base, "temp_uploads"),
		OrdersDir: filepath.Join(base, "orders"),
		ProofsDir: filepath.Join(base, "proofs"),
	}, nil)
	require.NoError(t, err)
	return store
}

func TestStageAndPromote(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	handle, err := store.Stage([]byte("pdf-bytes"), "abc-doc.pdf", now)
	require.NoError(t, err)
	require.Equal(t, "2025-03-10/abc-doc.pdf", handle)

	staged := filepath.Join(store.TempDir(), "2025-03-10", "abc-doc.pdf")
	require.FileExists(t, staged)

	final, err := store.Promote(handle, "ORDER-1", "doc.pdf", now)
	require.NoError(t, err)
	require.FileExists(t, final)
	require.Equal(t, "ORDER-1-doc.pdf", filepath.Base(final))

	// Promotion moves the file, it never copies.
	require.NoFileExists(t, staged)

	content, err := os.ReadFile(final)
	require.NoError(t, err)
	require.Equal(t, "pdf-bytes", string(content))
}

func TestPromoteMissingStagedFile(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	_, err := store.Promote("2025-01-01/ghost.pdf", "ORDER-2", "ghost.pdf", now)
	require.ErrorIs(t, err, ErrStagedMissing)
}

func TestPromoteSecondAttemptFails(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	handle, err := store.Stage([]byte("x"), "u-once.pdf", now)
	require.NoError(t, err)

	_, err = store.Promote(handle, "ORDER-3", "once.pdf", now)
	require.NoError(t, err)

	_, err = store.Promote(handle, "ORDER-3", "once.pdf", now)
	require.ErrorIs(t, err, ErrStagedMissing)
}

func TestResolveTempRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Promote("../outside.pdf", "ORDER-4", "outside.pdf", time.Now())
	require.ErrorIs(t, err, ErrOutsideRoot)

	deleted, errs := store.DeleteStaged([]string{"../../etc/passwd"})
	require.Zero(t, deleted)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "access denied")
}

func TestStoreProof(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	rel, err := store.StoreProof([]byte("img"), ".png", "ORDER-5", now)
	require.NoError(t, err)
	require.Equal(t, "2025-03-10/ORDER-5-proof.png", rel)

	// Extension without a leading dot is normalized.
	rel, err = store.StoreProof([]byte("img"), "jpg", "ORDER-6", now)
	require.NoError(t, err)
	require.Equal(t, "2025-03-10/ORDER-6-proof.jpg", rel)
}

func TestDeleteOrderFiles(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	handle, err := store.Stage([]byte("doc"), "d.pdf", now)
	require.NoError(t, err)
	final, err := store.Promote(handle, "ORDER-7", "d.pdf", now)
	require.NoError(t, err)
	proof, err := store.StoreProof([]byte("img"), ".jpg", "ORDER-7", now)
	require.NoError(t, err)

	failed := store.DeleteOrderFiles(final, proof)
	require.Zero(t, failed)
	require.NoFileExists(t, final)

	// Already-deleted files do not count as failures.
	failed = store.DeleteOrderFiles(final, proof)
	require.Zero(t, failed)
}

func TestListStaged(t *testing.T) {
	store := newTestStore(t)

	older := time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	oldHandle, err := store.Stage([]byte("a"), "old.pdf", older)
	require.NoError(t, err)
	newHandle, err := store.Stage([]byte("bb"), "new.pdf", newer)
	require.NoError(t, err)

	oldPath := filepath.Join(store.TempDir(), filepath.FromSlash(oldHandle))
	require.NoError(t, os.Chtimes(oldPath, older, older))
	newPath := filepath.Join(store.TempDir(), filepath.FromSlash(newHandle))
	require.NoError(t, os.Chtimes(newPath, newer, newer))

	files, err := store.ListStaged()
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "new.pdf", files[0].Name)
	require.Equal(t, "old.pdf", files[1].Name)
	require.Equal(t, int64(2), files[0].SizeBytes)
}

func TestDeleteStaged(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	handle, err := store.Stage([]byte("x"), "del.pdf", now)
	require.NoError(t, err)

	deleted, errs := store.DeleteStaged([]string{handle, "2020-01-01/nope.pdf"})
	require.Equal(t, 1, deleted)
	require.Len(t, errs, 1)
}

func TestSweepReclaimsExpired(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	ttl := 30 * 24 * time.Hour

	expired := now.Add(-31 * 24 * time.Hour)
	fresh := now.Add(-29 * 24 * time.Hour)

	expiredHandle, err := store.Stage([]byte("old"), "expired.pdf", expired)
	require.NoError(t, err)
	freshHandle, err := store.Stage([]byte("new"), "fresh.pdf", fresh)
	require.NoError(t, err)

	expiredPath := filepath.Join(store.TempDir(), filepath.FromSlash(expiredHandle))
	require.NoError(t, os.Chtimes(expiredPath, expired, expired))
	freshPath := filepath.Join(store.TempDir(), filepath.FromSlash(freshHandle))
	require.NoError(t, os.Chtimes(freshPath, fresh, fresh))

	removed, err := store.Sweep(now, ttl)
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.NoFileExists(t, expiredPath)
	require.FileExists(t, freshPath)

	// The emptied date partition is pruned, the populated one survives.
	require.NoDirExists(t, filepath.Join(store.TempDir(), DateBucket(expired)))
	require.DirExists(t, filepath.Join(store.TempDir(), DateBucket(fresh)))

	// A second pass with nothing newly expired is a no-op.
	removed, err = store.Sweep(now, ttl)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestSweepMissingRoot(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.RemoveAll(store.TempDir()))

	removed, err := store.Sweep(time.Now(), time.Hour)
	require.NoError(t, err)
	require.Zero(t, removed)

	files, err := store.ListStaged()
	require.NoError(t, err)
	require.Empty(t, files)
}
