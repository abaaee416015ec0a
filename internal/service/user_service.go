package service

import (
	"errors"

	"picto-go/internal/apperr"
	"picto-go/internal/dto"
	"picto-go/internal/models"
	"picto-go/internal/repository"
	"picto-go/internal/storage"
	"picto-go/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserService 用户管理服务。
// 普通用户只能修改自己的资料,管理员可以管理所有用户
type UserService struct {
	userRepo    *repository.UserRepository
	pictoRepo   *repository.PictogramRepository
	audioRepo   *repository.AudioRepository
	routineRepo *repository.RoutineRepository
	tokenRepo   *repository.ActivationTokenRepository
	store       *storage.Store
	mail        *MailService
	logger      *logrus.Logger
}

// NewUserService 创建用户管理服务
func NewUserService(
	userRepo *repository.UserRepository,
	pictoRepo *repository.PictogramRepository,
	audioRepo *repository.AudioRepository,
	routineRepo *repository.RoutineRepository,
	tokenRepo *repository.ActivationTokenRepository,
	store *storage.Store,
	mail *MailService,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		pictoRepo:   pictoRepo,
		audioRepo:   audioRepo,
		routineRepo: routineRepo,
		tokenRepo:   tokenRepo,
		store:       store,
		mail:        mail,
		logger:      logger,
	}
}

// List 获取用户列表及总数
func (s *UserService) List(offset, limit int) ([]dto.UserInfo, int64, error) {
	users, total, err := s.userRepo.List(offset, limit)
	if err != nil {
		s.logger.Errorf("查询用户列表失败: %v", err)
		return nil, 0, apperr.ErrServer
	}

	infos := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, dto.UserInfo{
			ID:       users[i].ID,
			Name:     users[i].Name,
			Email:    users[i].Email,
			IsActive: users[i].IsActive,
			IsStaff:  users[i].IsStaff,
		})
	}
	return infos, total, nil
}

// canManage 判断请求者是否有权操作目标用户
func canManage(requesterID uint, requesterStaff bool, targetID uint) bool {
	return requesterStaff || requesterID == targetID
}

// Update 更新用户资料。名称、邮箱、密码均为可选字段,
// 密码修改成功后发送通知邮件
func (s *UserService) Update(requesterID uint, requesterStaff bool, targetID uint, req *dto.UpdateUserRequest) (*dto.UserInfo, error) {
	if !canManage(requesterID, requesterStaff, targetID) {
		return nil, apperr.ErrPermissionDenied
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, err.Error())
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "用户不存在")
		}
		s.logger.Errorf("查询用户失败: %v", err)
		return nil, apperr.ErrServer
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.Email != "" && req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(req.Email)
		if err != nil {
			s.logger.Errorf("查询邮箱失败: %v", err)
			return nil, apperr.ErrServer
		}
		if exists {
			return nil, apperr.Wrap(apperr.ErrInvalidInput, "该邮箱已被注册")
		}
		user.Email = req.Email
	}

	passwordChanged := false
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			s.logger.Errorf("密码加密失败: %v", err)
			return nil, apperr.ErrServer
		}
		user.PasswordHash = hash
		passwordChanged = true
	}

	if err := s.userRepo.Update(user); err != nil {
		s.logger.Errorf("更新用户失败: %v", err)
		return nil, apperr.ErrServer
	}

	if passwordChanged {
		if err := s.mail.SendPasswordChanged(user); err != nil {
			s.logger.Warnf("发送密码修改通知邮件失败: %v", err)
		}
	}

	return &dto.UserInfo{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff,
	}, nil
}

// Delete 删除用户账户及其全部内容,仅管理员可操作。
// 普通用户通过注销入口,账户保留30天后由清理任务删除
func (s *UserService) Delete(requesterStaff bool, targetID uint) error {
	if !requesterStaff {
		return apperr.ErrPermissionDenied
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "用户不存在")
		}
		s.logger.Errorf("查询用户失败: %v", err)
		return apperr.ErrServer
	}

	return s.Purge(user)
}

// Purge 清除用户账户:先删内容记录和激活令牌,再删存储目录,最后删用户行。
// 完成后发送账户删除通知邮件
func (s *UserService) Purge(user *models.User) error {
	if err := s.pictoRepo.DeleteByAuthorID(user.ID); err != nil {
		s.logger.Errorf("删除用户图片记录失败: %v", err)
		return apperr.ErrServer
	}
	if err := s.audioRepo.DeleteByAuthorID(user.ID); err != nil {
		s.logger.Errorf("删除用户音频记录失败: %v", err)
		return apperr.ErrServer
	}
	if err := s.routineRepo.DeleteByAuthorID(user.ID); err != nil {
		s.logger.Errorf("删除用户例行程序记录失败: %v", err)
		return apperr.ErrServer
	}
	if err := s.tokenRepo.DeleteByUserID(user.ID); err != nil {
		s.logger.Errorf("删除用户激活令牌失败: %v", err)
		return apperr.ErrServer
	}

	if err := s.store.RemoveUserTree(user.ID); err != nil {
		s.logger.Errorf("删除用户存储目录失败: %v", err)
		return apperr.ErrServer
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		s.logger.Errorf("删除用户失败: %v", err)
		return apperr.ErrServer
	}

	if err := s.mail.SendAccountDeleted(user); err != nil {
		s.logger.Warnf("发送账户删除通知邮件失败: %v", err)
	}

	return nil
}
