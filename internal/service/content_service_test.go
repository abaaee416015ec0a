package service

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"picto-go/internal/apperr"
	"picto-go/internal/config"
	"picto-go/internal/models"
	"picto-go/internal/repository"
	"picto-go/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// --- 测试辅助 ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{
			DefaultLimit: 20 << 20,
			MaxFileSize:  1 << 20,
		},
	}
}

func newContentService(t *testing.T) (*ContentService, *gorm.DB, *storage.Store) {
	t.Helper()
	db := newTestDB(t)
	logger := newTestLogger()
	store := storage.NewStore(t.TempDir(), logger)

	svc := NewContentService(
		repository.NewPictogramRepository(db),
		repository.NewAudioRepository(db),
		repository.NewUserRepository(db),
		store,
		newTestConfig(),
		logger,
	)
	return svc, db, store
}

func createTestUser(t *testing.T, db *gorm.DB, email string, staff bool) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "测试用户",
		Email:        email,
		PasswordHash: "hash",
		IsActive:     true,
		IsStaff:      staff,
		StorageLimit: 20 << 20,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func pngUpload(data []byte) *Upload {
	return &Upload{
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        int64(len(data)),
		Data:        data,
	}
}

// --- 创建 ---

func TestCreatePictogram(t *testing.T) {
	svc, db, store := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	rec, err := svc.CreatePictogram(user.ID, "mi gato", pngUpload([]byte("img")))
	require.NoError(t, err)

	assert.Equal(t, "mi gato", rec.Name)
	assert.False(t, rec.IsPreloaded)
	assert.Equal(t, user.ID, rec.AuthorID)
	assert.True(t, strings.HasPrefix(rec.Path, "user_content"))
	assert.True(t, store.Exists(rec.Path))
}

func TestCreatePictogram_StaffPreloaded(t *testing.T) {
	svc, db, store := newContentService(t)
	staff := createTestUser(t, db, "staff@example.com", true)

	rec, err := svc.CreatePictogram(staff.ID, "gato", pngUpload([]byte("img")))
	require.NoError(t, err)

	assert.True(t, rec.IsPreloaded)
	assert.True(t, strings.HasPrefix(rec.Path, "preloaded"))
	assert.True(t, store.Exists(rec.Path))
}

func TestCreatePictogram_InvalidContentType(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	up := &Upload{Filename: "a.gif", ContentType: "image/gif", Size: 3, Data: []byte("img")}
	_, err := svc.CreatePictogram(user.ID, "gato", up)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestCreatePictogram_InvalidName(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	_, err := svc.CreatePictogram(user.ID, "mal<nombre>", pngUpload([]byte("img")))
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestCreatePictogram_FileTooLarge(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	up := &Upload{Filename: "a.png", ContentType: "image/png", Size: 2 << 20, Data: []byte("img")}
	_, err := svc.CreatePictogram(user.ID, "gato", up)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestCreatePictogram_QuotaExceeded(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)
	require.NoError(t, db.Model(user).Update("storage_limit", 100).Error)

	_, err := svc.CreatePictogram(user.ID, "gato", pngUpload(make([]byte, 200)))
	assert.True(t, errors.Is(err, apperr.ErrQuotaExceeded))
}

func TestCreatePictogram_InactiveUser(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err := svc.CreatePictogram(user.ID, "gato", pngUpload([]byte("img")))
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
}

func TestCreateAudio_InvalidContentType(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	up := &Upload{Filename: "a.ogg", ContentType: "audio/ogg", Size: 3, Data: []byte("aud")}
	_, err := svc.CreateAudio(user.ID, "sonido", up)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

// --- 更新 ---

func TestUpdatePictogram_NoChange(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	rec, err := svc.CreatePictogram(user.ID, "gato", pngUpload([]byte("img")))
	require.NoError(t, err)

	// 空名称和空文件表示保持不变
	updated, changed, err := svc.UpdatePictogram(user.ID, rec.ID, "", nil)
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, rec.Path, updated.Path)
	assert.Equal(t, rec.Name, updated.Name)
}

func TestUpdatePictogram_SameNameNoChange(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	rec, err := svc.CreatePictogram(user.ID, "gato", pngUpload([]byte("img")))
	require.NoError(t, err)

	_, changed, err := svc.UpdatePictogram(user.ID, rec.ID, "gato", nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpdatePictogram_NameOnly(t *testing.T) {
	svc, db, store := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	rec, err := svc.CreatePictogram(user.ID, "gato", pngUpload([]byte("img")))
	require.NoError(t, err)
	oldPath := rec.Path

	updated, changed, err := svc.UpdatePictogram(user.ID, rec.ID, "perro", nil)
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "perro", updated.Name)
	assert.NotEqual(t, oldPath, updated.Path)
	assert.Contains(t, filepath.Base(updated.Path), "perro")
	assert.False(t, store.Exists(oldPath))
	assert.True(t, store.Exists(updated.Path))

	// 文件内容不变
	content, err := store.ReadFile(updated.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), content)
}

func TestUpdatePictogram_FileOnly(t *testing.T) {
	svc, db, store := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	rec, err := svc.CreatePictogram(user.ID, "gato", pngUpload([]byte("old")))
	require.NoError(t, err)
	oldPath := rec.Path

	updated, changed, err := svc.UpdatePictogram(user.ID, rec.ID, "", pngUpload([]byte("new")))
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "gato", updated.Name)
	assert.False(t, store.Exists(oldPath))

	content, err := store.ReadFile(updated.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), content)
}

func TestUpdatePictogram_NameAndFile(t *testing.T) {
	svc, db, store := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	rec, err := svc.CreatePictogram(user.ID, "gato", pngUpload([]byte("old")))
	require.NoError(t, err)
	oldPath := rec.Path

	updated, changed, err := svc.UpdatePictogram(user.ID, rec.ID, "perro", pngUpload([]byte("new")))
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "perro", updated.Name)
	assert.Contains(t, filepath.Base(updated.Path), "perro")
	assert.False(t, store.Exists(oldPath))

	content, err := store.ReadFile(updated.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), content)
}

// --- 删除 ---

func TestDeletePictogram(t *testing.T) {
	svc, db, store := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	rec, err := svc.CreatePictogram(user.ID, "gato", pngUpload([]byte("img")))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePictogram(user.ID, rec.ID))

	assert.False(t, store.Exists(rec.Path))
	_, err = svc.GetPictogram(user.ID, rec.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeletePictogram_MissingFileKeepsRecord(t *testing.T) {
	svc, db, store := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)

	rec, err := svc.CreatePictogram(user.ID, "gato", pngUpload([]byte("img")))
	require.NoError(t, err)

	// 磁盘文件丢失时删除失败,记录保留
	require.NoError(t, store.Remove(rec.Path))

	err = svc.DeletePictogram(user.ID, rec.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	kept, err := svc.GetPictogram(user.ID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, kept.ID)
}

// --- 可见范围 ---

func TestListPictograms_Visibility(t *testing.T) {
	svc, db, _ := newContentService(t)
	staff := createTestUser(t, db, "staff@example.com", true)
	userA := createTestUser(t, db, "a@example.com", false)
	userB := createTestUser(t, db, "b@example.com", false)

	preloaded, err := svc.CreatePictogram(staff.ID, "comun", pngUpload([]byte("img")))
	require.NoError(t, err)
	own, err := svc.CreatePictogram(userA.ID, "mio", pngUpload([]byte("img")))
	require.NoError(t, err)
	_, err = svc.CreatePictogram(userB.ID, "ajeno", pngUpload([]byte("img")))
	require.NoError(t, err)

	// 普通用户:预载内容加自己的内容
	items, err := svc.ListPictograms(userA.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	ids := []uint{items[0].ID, items[1].ID}
	assert.Contains(t, ids, preloaded.ID)
	assert.Contains(t, ids, own.ID)

	// staff 只看预载内容
	items, err = svc.ListPictograms(staff.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, preloaded.ID, items[0].ID)
}

func TestGetPictogram_OtherUsersContentHidden(t *testing.T) {
	svc, db, _ := newContentService(t)
	userA := createTestUser(t, db, "a@example.com", false)
	userB := createTestUser(t, db, "b@example.com", false)

	rec, err := svc.CreatePictogram(userB.ID, "ajeno", pngUpload([]byte("img")))
	require.NoError(t, err)

	_, err = svc.GetPictogram(userA.ID, rec.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

// --- 存储占用 ---

func TestStorageInfo(t *testing.T) {
	svc, db, _ := newContentService(t)
	user := createTestUser(t, db, "user@example.com", false)
	require.NoError(t, db.Model(user).Update("storage_limit", 1024).Error)

	_, err := svc.CreatePictogram(user.ID, "gato", pngUpload(make([]byte, 300)))
	require.NoError(t, err)

	info, err := svc.StorageInfo(user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1024), info.StorageLimit)
	assert.Equal(t, int64(300), info.UsedStorage)
	assert.Equal(t, int64(724), info.RemainingStorage)
}
