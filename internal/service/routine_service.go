package service

import (
	"encoding/json"
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

// RoutineService 例行程序服务。每条记录关联一个必需的JSON侧车文件
// 和一个可选的封面图片,两者都随记录的生命周期一起维护。
// 例行程序只对作者本人可见,不参与预载共享
type RoutineService struct {
	routineRepo *repository.RoutineRepository
	userRepo    *repository.UserRepository
	store       *storage.Store
	cfg         *config.Config
	logger      *logrus.Logger
}

// NewRoutineService 创建例行程序服务
func NewRoutineService(
	routineRepo *repository.RoutineRepository,
	userRepo *repository.UserRepository,
	store *storage.Store,
	cfg *config.Config,
	logger *logrus.Logger,
) *RoutineService {
	return &RoutineService{
		routineRepo: routineRepo,
		userRepo:    userRepo,
		store:       store,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *RoutineService) getUserInstance(userID uint) (*models.User, error) {
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

// validateCover 校验封面图片的类型、大小与配额
func (s *RoutineService) validateCover(up *Upload, user *models.User) error {
	allowed := false
	for _, t := range imageContentTypes {
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

// saveJSON 将JSON数据原样写入侧车文件,返回相对路径
func (s *RoutineService) saveJSON(user *models.User, name string, data []byte) (string, error) {
	filename := storage.GenerateJSONFilename(name)
	return s.store.Save(user.ID, user.IsStaff, storage.FolderRoutines, filename, data)
}

// saveCover 保存封面图片,返回相对路径
func (s *RoutineService) saveCover(user *models.User, name string, up *Upload) (string, error) {
	filename := storage.GenerateFilename(name, up.Filename)
	return s.store.Save(user.ID, user.IsStaff, storage.FolderCovers, filename, up.Data)
}

// Create 创建例行程序。JSON侧车文件先落盘,封面可选
func (s *RoutineService) Create(userID uint, name string, jsonData []byte, cover *Upload) (*models.Routine, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, err
	}

	if err := utils.CheckContentName(name); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, err.Error())
	}
	if len(jsonData) == 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "缺少例行程序JSON数据")
	}
	if !json.Valid(jsonData) {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "JSON数据格式无效")
	}
	if err := s.store.CheckQuota(user.ID, user.StorageLimit, int64(len(jsonData))); err != nil {
		return nil, err
	}
	if cover != nil {
		if err := s.validateCover(cover, user); err != nil {
			return nil, err
		}
	}

	jsonRel, err := s.saveJSON(user, name, jsonData)
	if err != nil {
		return nil, err
	}

	coverRel := ""
	if cover != nil {
		coverRel, err = s.saveCover(user, name, cover)
		if err != nil {
			return nil, err
		}
	}

	rec := &models.Routine{
		Name:      name,
		JSONPath:  jsonRel,
		CoverPath: coverRel,
		AuthorID:  user.ID,
	}

	if err := s.routineRepo.Create(rec); err != nil {
		s.logger.Errorf("创建例行程序记录失败: %v", err)
		return nil, apperr.ErrServer
	}

	return rec, nil
}

// List 获取请求者自己的例行程序
func (s *RoutineService) List(userID uint) ([]models.Routine, error) {
	if _, err := s.getUserInstance(userID); err != nil {
		return nil, err
	}

	items, err := s.routineRepo.ListByAuthor(userID)
	if err != nil {
		return nil, apperr.ErrPermissionDenied
	}
	return items, nil
}

// Get 获取单条例行程序,并内联JSON侧车文件内容
func (s *RoutineService) Get(userID, id uint) (*models.Routine, json.RawMessage, error) {
	if _, err := s.getUserInstance(userID); err != nil {
		return nil, nil, err
	}

	rec, err := s.routineRepo.GetByIDAndAuthor(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.Wrap(apperr.ErrNotFound, "例行程序不存在")
		}
		return nil, nil, apperr.ErrPermissionDenied
	}

	data, err := s.store.ReadFile(rec.JSONPath)
	if err != nil {
		return nil, nil, err
	}

	return rec, json.RawMessage(data), nil
}

// Update 更新例行程序。名称、JSON数据、封面三者各自独立判断是否变化,
// 只对实际变化的部分做文件操作:
//   - JSON变化时删除旧侧车并以最终名称重写,否则名称变化时仅重命名侧车
//   - 封面变化时删除旧封面(不存在字段视为无操作)并以最终名称保存新封面,
//     否则名称变化且已有封面时仅重命名封面
func (s *RoutineService) Update(userID, id uint, newName string, jsonData []byte, cover *Upload) (*models.Routine, bool, error) {
	user, err := s.getUserInstance(userID)
	if err != nil {
		return nil, false, err
	}

	rec, err := s.routineRepo.GetByIDAndAuthor(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.Wrap(apperr.ErrNotFound, "例行程序不存在")
		}
		return nil, false, apperr.ErrPermissionDenied
	}

	nameChanged := newName != "" && newName != rec.Name
	jsonChanged := len(jsonData) > 0
	coverChanged := cover != nil

	if nameChanged {
		if err := utils.CheckContentName(newName); err != nil {
			return nil, false, apperr.Wrap(apperr.ErrInvalidInput, err.Error())
		}
	}
	if jsonChanged {
		if !json.Valid(jsonData) {
			return nil, false, apperr.Wrap(apperr.ErrInvalidInput, "JSON数据格式无效")
		}
		if err := s.store.CheckQuota(user.ID, user.StorageLimit, int64(len(jsonData))); err != nil {
			return nil, false, err
		}
	}
	if coverChanged {
		if err := s.validateCover(cover, user); err != nil {
			return nil, false, err
		}
	}

	if !nameChanged && !jsonChanged && !coverChanged {
		return rec, false, nil
	}

	// 文件操作以更新后的最终名称为准
	effectiveName := rec.Name
	if nameChanged {
		effectiveName = newName
	}

	if jsonChanged {
		if err := s.store.Remove(rec.JSONPath); err != nil {
			return nil, false, err
		}
		rel, err := s.saveJSON(user, effectiveName, jsonData)
		if err != nil {
			return nil, false, err
		}
		rec.JSONPath = rel
	} else if nameChanged {
		rel, err := s.store.Rename(rec.JSONPath, storage.GenerateJSONFilename(effectiveName))
		if err != nil {
			return nil, false, err
		}
		rec.JSONPath = rel
	}

	if coverChanged {
		if rec.CoverPath != "" {
			if err := s.store.Remove(rec.CoverPath); err != nil {
				return nil, false, err
			}
		}
		rel, err := s.saveCover(user, effectiveName, cover)
		if err != nil {
			return nil, false, err
		}
		rec.CoverPath = rel
	} else if nameChanged && rec.CoverPath != "" {
		rel, err := s.store.Rename(rec.CoverPath, storage.GenerateFilename(effectiveName, rec.CoverPath))
		if err != nil {
			return nil, false, err
		}
		rec.CoverPath = rel
	}

	if nameChanged {
		rec.Name = newName
	}

	if err := s.routineRepo.Save(rec); err != nil {
		s.logger.Errorf("更新例行程序记录失败: %v", err)
		return nil, false, apperr.ErrServer
	}

	return rec, true, nil
}

// Delete 删除例行程序。先删JSON侧车,再删封面(记录中无封面字段则跳过),
// 任一文件删除失败时记录保留
func (s *RoutineService) Delete(userID, id uint) error {
	if _, err := s.getUserInstance(userID); err != nil {
		return err
	}

	rec, err := s.routineRepo.GetByIDAndAuthor(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "例行程序不存在")
		}
		return apperr.ErrPermissionDenied
	}

	if err := s.store.Remove(rec.JSONPath); err != nil {
		return err
	}

	if rec.CoverPath != "" {
		if err := s.store.Remove(rec.CoverPath); err != nil {
			return err
		}
	}

	if err := s.routineRepo.Delete(rec); err != nil {
		s.logger.Errorf("删除例行程序记录失败: %v", err)
		return apperr.ErrServer
	}

	return nil
}

// ToRoutineResponse 将例行程序记录转换为响应结构
func ToRoutineResponse(rec *models.Routine) dto.RoutineResponse {
	return dto.RoutineResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		JSONPath:  rec.JSONPath,
		CoverPath: rec.CoverPath,
		AuthorID:  rec.AuthorID,
		CreatedAt: rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
