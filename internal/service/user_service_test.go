package service

import (
	"errors"
	"testing"

	"picto-go/internal/apperr"
	"picto-go/internal/dto"
	"picto-go/internal/models"
	"picto-go/internal/repository"
	"picto-go/internal/storage"
	"picto-go/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB, *storage.Store) {
	t.Helper()
	db := newTestDB(t)
	logger := newTestLogger()
	store := storage.NewStore(t.TempDir(), logger)
	mailService := NewMailService(newTestConfig(), logger)

	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewPictogramRepository(db),
		repository.NewAudioRepository(db),
		repository.NewRoutineRepository(db),
		repository.NewActivationTokenRepository(db),
		store,
		mailService,
		logger,
	)
	return svc, db, store
}

func TestUserUpdate_Self(t *testing.T) {
	svc, db, _ := newUserService(t)
	user := createTestUser(t, db, "user@example.com", false)

	info, err := svc.Update(user.ID, false, user.ID, &dto.UpdateUserRequest{Name: "Nuevo Nombre"})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo Nombre", info.Name)
}

func TestUserUpdate_OtherUserForbidden(t *testing.T) {
	svc, db, _ := newUserService(t)
	userA := createTestUser(t, db, "a@example.com", false)
	userB := createTestUser(t, db, "b@example.com", false)

	_, err := svc.Update(userA.ID, false, userB.ID, &dto.UpdateUserRequest{Name: "Intruso"})
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
}

func TestUserUpdate_StaffCanManageOthers(t *testing.T) {
	svc, db, _ := newUserService(t)
	staff := createTestUser(t, db, "staff@example.com", true)
	user := createTestUser(t, db, "user@example.com", false)

	info, err := svc.Update(staff.ID, true, user.ID, &dto.UpdateUserRequest{Name: "Corregido"})
	require.NoError(t, err)
	assert.Equal(t, "Corregido", info.Name)
}

func TestUserUpdate_EmailConflict(t *testing.T) {
	svc, db, _ := newUserService(t)
	createTestUser(t, db, "taken@example.com", false)
	user := createTestUser(t, db, "user@example.com", false)

	_, err := svc.Update(user.ID, false, user.ID, &dto.UpdateUserRequest{Email: "taken@example.com"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestUserUpdate_PasswordRehashed(t *testing.T) {
	svc, db, _ := newUserService(t)
	user := createTestUser(t, db, "user@example.com", false)

	_, err := svc.Update(user.ID, false, user.ID, &dto.UpdateUserRequest{Password: "NuevaClave1!"})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NoError(t, utils.CheckPassword("NuevaClave1!", stored.PasswordHash))
}

func TestUserDelete_PurgesEverything(t *testing.T) {
	svc, db, store := newUserService(t)
	user := createTestUser(t, db, "user@example.com", false)

	// 准备内容记录、激活令牌和磁盘文件
	require.NoError(t, db.Create(&models.Pictogram{Name: "gato", Path: "p", AuthorID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Routine{Name: "rutina", JSONPath: "r", AuthorID: user.ID}).Error)
	require.NoError(t, db.Create(&models.ActivationToken{UserID: user.ID, Token: "tok"}).Error)
	rel, err := store.Save(user.ID, false, storage.FolderPictograms, "a.png", []byte("img"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(true, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.Pictogram{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.Routine{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.ActivationToken{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	assert.False(t, store.Exists(rel))
}

func TestUserDelete_NonStaffForbidden(t *testing.T) {
	svc, db, _ := newUserService(t)
	user := createTestUser(t, db, "user@example.com", false)

	err := svc.Delete(false, user.ID)
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
}

func TestUserList(t *testing.T) {
	svc, db, _ := newUserService(t)
	createTestUser(t, db, "a@example.com", false)
	createTestUser(t, db, "b@example.com", false)

	users, total, err := svc.List(0, 20)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(2), total)
}
