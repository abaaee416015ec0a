package service

import (
	"errors"

	"picto-go/internal/apperr"
	"picto-go/internal/config"
	"picto-go/internal/dto"
	"picto-go/internal/models"
	"picto-go/internal/repository"
	"picto-go/internal/storage"
	"picto-go/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Upload 已读入内存的上传文件
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// 各内容类型允许的文件格式
var (
	imageContentTypes = []string{"image/png", "image/jpg", "image/jpeg"}
	audioContentTypes = []string{"audio/mpeg", "audio/wav"}
)

// ContentService 单文件内容(图片/音频)服务。
// 负责记录与磁盘文件的一致:创建时先落盘再建记录,
// 更新时只对实际变化的字段做最小的文件操作,删除时先删文件再删记录。
type ContentService struct {
	pictoRepo *repository.PictogramRepository
	audioRepo *repository.AudioRepository
	userRepo  *repository.UserRepository
	store     *storage.Store
	cfg       *config.Config
	logger    *logrus.Logger
}

// NewContentService 创建内容服务
func NewContentService(
	pictoRepo *repository.PictogramRepository,
	audioRepo *repository.AudioRepository,
	userRepo *repository.UserRepository,
	store *storage.Store,
	cfg *config.Config,
	logger *logrus.Logger,
) *ContentService {
	return &ContentService{
		pictoRepo: pictoRepo,
		audioRepo: audioRepo,
		userRepo:  userRepo,
		store:     store,
		cfg:       cfg,
		logger:    logger,
	}
}

// getUserInstance 获取请求者的用户实例,未激活的用户无权操作内容
func (s *ContentService) getUserInstance(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "用户不存在")
		}
		s.logger.Errorf("查询用户失败: %v", err)
		return nil, apperr.ErrServer
	}

	if !user.IsActive {
		return nil, apperr.Wrap(apperr.ErrPermissionDenied, "用户未激活")
	}

	return user, nil
}

// validateUpload 校验上传文件的类型、单文件大小上限与存储配额
func (s *ContentService) validateUpload(up *Upload, allowedTypes []string, user *models.User) error {
	allowed := false
	for _, t := range allowedTypes {
		if up.ContentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperr.Wrap(apperr.ErrInvalidInput, "文件格式无效")
	}

	if up.Size > s.cfg.Storage.MaxFileSize {
		return apperr.Wrap(apperr.ErrInvalidInput, "文件太大")
	}

	return s.store.CheckQuota(user.ID, user.StorageLimit, up.Size)
}

// saveUpload 以派生的文件名落盘,返回相对路径
func (s *ContentService) saveUpload(user *models.User, name string, up *Upload, folder string) (string, error) {
	filename := storage.GenerateFilename(name, up.Filename)
	return s.store.Save(user.ID, user.IsStaff, folder, filename, up.Data)
}

// reconcileFile 按名称/文件的变化情况收敛记录与磁盘文件。
// 四种情况:仅换文件、仅改名、两者都变、无变化。
// 只有实际变化的字段才触发文件操作
func (s *ContentService) reconcileFile(
	user *models.User,
	rec models.FileRecord,
	folder string,
	newName string,
	up *Upload,
) (bool, error) {
	oldName := rec.GetName()
	nameChanged := newName != "" && newName != oldName
	fileChanged := up != nil

	switch {
	// 仅换文件:删除旧文件,用原名称保存新文件
	case fileChanged && !nameChanged:
		if err := s.store.Remove(rec.GetPath()); err != nil {
			return false, err
		}
		rel, err := s.saveUpload(user, oldName, up, folder)
		if err != nil {
			return false, err
		}
		rec.SetPath(rel)

	// 仅改名:磁盘文件重命名为新名称派生的文件名
	case nameChanged && !fileChanged:
		rel, err := s.store.Rename(rec.GetPath(), storage.GenerateFilename(newName, rec.GetPath()))
		if err != nil {
			return false, err
		}
		rec.SetName(newName)
		rec.SetPath(rel)

	// 两者都变:删除旧文件,用新名称保存新文件
	case fileChanged && nameChanged:
		if err := s.store.Remove(rec.GetPath()); err != nil {
			return false, err
		}
		rel, err := s.saveUpload(user, newName, up, folder)
		if err != nil {
			return false, err
		}
		rec.SetName(newName)
		rec.SetPath(rel)

	// 无变化
	default:
		return false, nil
	}

	return true, nil
}

// ----- Pictogram -----

// CreatePictogram 创建图片内容。文件先落盘,再写记录;
// staff 作者的内容自动标记为预载
func (s *ContentService) CreatePictogram(userID uint, name string, up *Upload) (*models.Pictogram, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, err
	}

	if err := utils.CheckContentName(name); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, err.Error())
	}
	if up == nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "缺少上传文件")
	}
	if err := s.validateUpload(up, imageContentTypes, user); err != nil {
		return nil, err
	}

	rel, err := s.saveUpload(user, name, up, storage.FolderPictograms)
	if err != nil {
		return nil, err
	}

	rec := &models.Pictogram{
		Name:        name,
		Path:        rel,
		AuthorID:    user.ID,
		IsPreloaded: user.IsStaff,
	}

	if err := s.pictoRepo.Create(rec); err != nil {
		s.logger.Errorf("创建图片记录失败: %v", err)
		return nil, apperr.ErrServer
	}

	return rec, nil
}

// ListPictograms 获取请求者可见的图片内容
func (s *ContentService) ListPictograms(userID uint) ([]models.Pictogram, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, err
	}

	items, err := s.pictoRepo.ListVisible(user)
	if err != nil {
		return nil, apperr.ErrPermissionDenied
	}
	return items, nil
}

// GetPictogram 获取单条图片内容
func (s *ContentService) GetPictogram(userID, id uint) (*models.Pictogram, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, err
	}

	rec, err := s.pictoRepo.GetVisible(id, user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "内容不存在")
		}
		return nil, apperr.ErrPermissionDenied
	}
	return rec, nil
}

// UpdatePictogram 更新图片内容,空名称和空文件表示保持不变
func (s *ContentService) UpdatePictogram(userID, id uint, newName string, up *Upload) (*models.Pictogram, bool, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, false, err
	}

	rec, err := s.pictoRepo.GetVisible(id, user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.Wrap(apperr.ErrNotFound, "内容不存在")
		}
		return nil, false, apperr.ErrPermissionDenied
	}

	if newName != "" && newName != rec.Name {
		if err := utils.CheckContentName(newName); err != nil {
			return nil, false, apperr.Wrap(apperr.ErrInvalidInput, err.Error())
		}
	}
	if up != nil {
		if err := s.validateUpload(up, imageContentTypes, user); err != nil {
			return nil, false, err
		}
	}

	changed, err := s.reconcileFile(user, rec, storage.FolderPictograms, newName, up)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return rec, false, nil
	}

	if err := s.pictoRepo.Save(rec); err != nil {
		s.logger.Errorf("更新图片记录失败: %v", err)
		return nil, false, apperr.ErrServer
	}

	return rec, true, nil
}

// DeletePictogram 删除图片内容。文件删除失败时记录保留
func (s *ContentService) DeletePictogram(userID, id uint) error {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return err
	}

	rec, err := s.pictoRepo.GetVisible(id, user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "内容不存在")
		}
		return apperr.ErrPermissionDenied
	}

	if err := s.store.Remove(rec.Path); err != nil {
		return err
	}

	if err := s.pictoRepo.Delete(rec); err != nil {
		s.logger.Errorf("删除图片记录失败: %v", err)
		return apperr.ErrServer
	}

	return nil
}

// ----- Audio -----

// CreateAudio 创建音频内容
func (s *ContentService) CreateAudio(userID uint, name string, up *Upload) (*models.Audio, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, err
	}

	if err := utils.CheckContentName(name); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, err.Error())
	}
	if up == nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "缺少上传文件")
	}
	if err := s.validateUpload(up, audioContentTypes, user); err != nil {
		return nil, err
	}

	rel, err := s.saveUpload(user, name, up, storage.FolderSounds)
	if err != nil {
		return nil, err
	}

	rec := &models.Audio{
		Name:        name,
		Path:        rel,
		AuthorID:    user.ID,
		IsPreloaded: user.IsStaff,
	}

	if err := s.audioRepo.Create(rec); err != nil {
		s.logger.Errorf("创建音频记录失败: %v", err)
		return nil, apperr.ErrServer
	}

	return rec, nil
}

// ListAudios 获取请求者可见的音频内容
func (s *ContentService) ListAudios(userID uint) ([]models.Audio, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, err
	}

	items, err := s.audioRepo.ListVisible(user)
	if err != nil {
		return nil, apperr.ErrPermissionDenied
	}
	return items, nil
}

// GetAudio 获取单条音频内容
func (s *ContentService) GetAudio(userID, id uint) (*models.Audio, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, err
	}

	rec, err := s.audioRepo.GetVisible(id, user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "内容不存在")
		}
		return nil, apperr.ErrPermissionDenied
	}
	return rec, nil
}

// UpdateAudio 更新音频内容,空名称和空文件表示保持不变
func (s *ContentService) UpdateAudio(userID, id uint, newName string, up *Upload) (*models.Audio, bool, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, false, err
	}

	rec, err := s.audioRepo.GetVisible(id, user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.Wrap(apperr.ErrNotFound, "内容不存在")
		}
		return nil, false, apperr.ErrPermissionDenied
	}

	if newName != "" && newName != rec.Name {
		if err := utils.CheckContentName(newName); err != nil {
			return nil, false, apperr.Wrap(apperr.ErrInvalidInput, err.Error())
		}
	}
	if up != nil {
		if err := s.validateUpload(up, audioContentTypes, user); err != nil {
			return nil, false, err
		}
	}

	changed, err := s.reconcileFile(user, rec, storage.FolderSounds, newName, up)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return rec, false, nil
	}

	if err := s.audioRepo.Save(rec); err != nil {
		s.logger.Errorf("更新音频记录失败: %v", err)
		return nil, false, apperr.ErrServer
	}

	return rec, true, nil
}

// DeleteAudio 删除音频内容。文件删除失败时记录保留
func (s *ContentService) DeleteAudio(userID, id uint) error {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return err
	}

	rec, err := s.audioRepo.GetVisible(id, user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "内容不存在")
		}
		return apperr.ErrPermissionDenied
	}

	if err := s.store.Remove(rec.Path); err != nil {
		return err
	}

	if err := s.audioRepo.Delete(rec); err != nil {
		s.logger.Errorf("删除音频记录失败: %v", err)
		return apperr.ErrServer
	}

	return nil
}

// ----- 存储占用 -----

// StorageInfo 获取指定用户的存储配额与占用情况
func (s *ContentService) StorageInfo(userID uint) (*dto.StorageResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "用户不存在")
		}
		s.logger.Errorf("查询用户失败: %v", err)
		return nil, apperr.ErrServer
	}

	used, err := s.store.UsedStorage(user.ID)
	if err != nil {
		return nil, err
	}

	remaining := user.StorageLimit - used
	if remaining < 0 {
		remaining = 0
	}

	return &dto.StorageResponse{
		StorageLimit:     user.StorageLimit,
		UsedStorage:      used,
		RemainingStorage: remaining,
	}, nil
}
