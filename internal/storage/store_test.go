package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"picto-go/internal/apperr"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewStore(t.TempDir(), logger)
}

func TestSave_UserContent(t *testing.T) {
	store := newTestStore(t)

	rel, err := store.Save(7, false, FolderPictograms, "a.png", []byte("data"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("user_content", "7", FolderPictograms, "a.png"), rel)

	content, err := os.ReadFile(store.Abs(rel))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), content)
}

func TestSave_StaffPreloaded(t *testing.T) {
	store := newTestStore(t)

	rel, err := store.Save(1, true, FolderSounds, "b.mp3", []byte("audio"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("preloaded", FolderSounds, "b.mp3"), rel)
}

func TestRename_SameDirectory(t *testing.T) {
	store := newTestStore(t)

	rel, err := store.Save(7, false, FolderPictograms, "old.png", []byte("data"))
	require.NoError(t, err)

	newRel, err := store.Rename(rel, "new.png")
	require.NoError(t, err)

	assert.Equal(t, filepath.Dir(rel), filepath.Dir(newRel))
	assert.False(t, store.Exists(rel))
	assert.True(t, store.Exists(newRel))

	content, err := store.ReadFile(newRel)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), content)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	rel, err := store.Save(7, false, FolderPictograms, "a.png", []byte("data"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(rel))
	assert.False(t, store.Exists(rel))
}

func TestRemove_MissingFile(t *testing.T) {
	store := newTestStore(t)

	err := store.Remove(filepath.Join("user_content", "7", FolderPictograms, "missing.png"))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestRemoveUserTree(t *testing.T) {
	store := newTestStore(t)

	rel1, err := store.Save(7, false, FolderPictograms, "a.png", []byte("data"))
	require.NoError(t, err)
	rel2, err := store.Save(7, false, FolderRoutines, "r.json", []byte("{}"))
	require.NoError(t, err)

	// 其他用户的文件不受影响
	other, err := store.Save(8, false, FolderPictograms, "b.png", []byte("data"))
	require.NoError(t, err)

	require.NoError(t, store.RemoveUserTree(7))

	assert.False(t, store.Exists(rel1))
	assert.False(t, store.Exists(rel2))
	assert.True(t, store.Exists(other))
}
