package storage

import (
	"errors"
	"testing"

	"picto-go/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsedStorage_Empty(t *testing.T) {
	store := newTestStore(t)

	used, err := store.UsedStorage(7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), used)
}

func TestUsedStorage_SumsAllFolders(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(7, false, FolderPictograms, "a.png", make([]byte, 300))
	require.NoError(t, err)
	_, err = store.Save(7, false, FolderRoutines, "r.json", make([]byte, 200))
	require.NoError(t, err)

	used, err := store.UsedStorage(7)
	require.NoError(t, err)
	assert.Equal(t, int64(500), used)
}

func TestCheckQuota(t *testing.T) {
	store := newTestStore(t)

	// 空目录,剩余 1024
	require.NoError(t, store.CheckQuota(7, 1024, 500))

	err := store.CheckQuota(7, 1024, 2048)
	assert.True(t, errors.Is(err, apperr.ErrQuotaExceeded))

	// 已用 500,剩余 524:等于剩余空间的文件也被拒绝
	_, err = store.Save(7, false, FolderPictograms, "a.png", make([]byte, 500))
	require.NoError(t, err)

	require.NoError(t, store.CheckQuota(7, 1024, 523))
	err = store.CheckQuota(7, 1024, 524)
	assert.True(t, errors.Is(err, apperr.ErrQuotaExceeded))
}

func TestCheckQuota_LimitBelowUsage(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(7, false, FolderPictograms, "a.png", make([]byte, 500))
	require.NoError(t, err)

	// 配额被调低到已用量以下,剩余按0处理
	err = store.CheckQuota(7, 100, 1)
	assert.True(t, errors.Is(err, apperr.ErrQuotaExceeded))
}
