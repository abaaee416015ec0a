package service

import (
	"testing"
	"time"

	"picto-go/internal/models"
	"picto-go/internal/repository"
	"picto-go/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCleanupHarness(t *testing.T) (*CleanupService, *ContentService, *gorm.DB, *storage.Store) {
	t.Helper()
	db := newTestDB(t)
	logger := newTestLogger()
	store := storage.NewStore(t.TempDir(), logger)
	cfg := newTestConfig()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewActivationTokenRepository(db)
	pictoRepo := repository.NewPictogramRepository(db)
	audioRepo := repository.NewAudioRepository(db)
	routineRepo := repository.NewRoutineRepository(db)

	mailService := NewMailService(cfg, logger)
	userService := NewUserService(userRepo, pictoRepo, audioRepo, routineRepo, tokenRepo, store, mailService, logger)
	contentService := NewContentService(pictoRepo, audioRepo, userRepo, store, cfg, logger)

	return NewCleanupService(userRepo, userService, logger), contentService, db, store
}

func daysAgo(n int) time.Time {
	return time.Now().Add(-time.Duration(n) * 24 * time.Hour)
}

func TestCleanup_DeactivatedOver30Days(t *testing.T) {
	svc, _, db, _ := newCleanupHarness(t)

	user := createTestUser(t, db, "old@example.com", false)
	since := daysAgo(40)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"is_active":      false,
		"inactive_since": since,
	}).Error)

	removed, err := svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCleanup_NeverActivatedOver30Days(t *testing.T) {
	svc, _, db, _ := newCleanupHarness(t)

	user := createTestUser(t, db, "stale@example.com", false)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"is_active":  false,
		"created_at": daysAgo(40),
	}).Error)

	removed, err := svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestCleanup_NoLoginOver100Days(t *testing.T) {
	svc, _, db, _ := newCleanupHarness(t)

	user := createTestUser(t, db, "gone@example.com", false)
	last := daysAgo(150)
	require.NoError(t, db.Model(user).Update("last_login", last).Error)

	removed, err := svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestCleanup_KeepsRecentUsers(t *testing.T) {
	svc, _, db, _ := newCleanupHarness(t)

	active := createTestUser(t, db, "active@example.com", false)
	last := time.Now()
	require.NoError(t, db.Model(active).Update("last_login", last).Error)

	recent := createTestUser(t, db, "recent@example.com", false)
	require.NoError(t, db.Model(recent).Updates(map[string]interface{}{
		"is_active":      false,
		"inactive_since": daysAgo(5),
	}).Error)

	removed, err := svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCleanup_SkipsStaff(t *testing.T) {
	svc, _, db, _ := newCleanupHarness(t)

	staff := createTestUser(t, db, "admin@example.com", true)
	require.NoError(t, db.Model(staff).Update("last_login", daysAgo(200)).Error)

	removed, err := svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestCleanup_PurgesContentAndFiles(t *testing.T) {
	svc, contentService, db, store := newCleanupHarness(t)

	user := createTestUser(t, db, "old@example.com", false)
	rec, err := contentService.CreatePictogram(user.ID, "gato", pngUpload([]byte("img")))
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"is_active":      false,
		"inactive_since": daysAgo(40),
	}).Error)

	removed, err := svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// 内容记录和存储目录一并清除
	assert.False(t, store.Exists(rec.Path))
	var count int64
	require.NoError(t, db.Model(&models.Pictogram{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
