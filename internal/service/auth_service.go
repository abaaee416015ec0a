package service

import (
	"errors"
	"fmt"
	"time"

	"picto-go/internal/apperr"
	"picto-go/internal/config"
	"picto-go/internal/dto"
	"picto-go/internal/models"
	"picto-go/internal/repository"
	"picto-go/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthService 认证与账户生命周期服务
type AuthService struct {
	userRepo   *repository.UserRepository
	tokenRepo  *repository.ActivationTokenRepository
	jwtManager *utils.JWTManager
	mail       *MailService
	cfg        *config.Config
	logger     *logrus.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo *repository.UserRepository,
	tokenRepo *repository.ActivationTokenRepository,
	jwtManager *utils.JWTManager,
	mail *MailService,
	cfg *config.Config,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtManager: jwtManager,
		mail:       mail,
		cfg:        cfg,
		logger:     logger,
	}
}

// Register 用户注册。新用户默认未激活,并获得一次性激活令牌
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, err.Error())
	}

	// 验证邮箱是否已被注册
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		s.logger.Errorf("检查邮箱失败: %v", err)
		return nil, apperr.ErrServer
	}
	if exists {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "邮箱已被注册")
	}

	// 哈希密码
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.logger.Errorf("密码哈希失败: %v", err)
		return nil, apperr.ErrServer
	}

	// 创建用户,默认未激活
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsActive:     false,
		IsStaff:      false,
		StorageLimit: s.cfg.Storage.DefaultLimit,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Errorf("创建用户失败: %v", err)
		return nil, apperr.ErrServer
	}

	// 颁发激活令牌并发送激活邮件
	token, err := utils.GenerateActivationToken()
	if err != nil {
		s.logger.Errorf("生成激活令牌失败: %v", err)
		return nil, apperr.ErrServer
	}

	if err := s.tokenRepo.Create(&models.ActivationToken{
		UserID: user.ID,
		Token:  token,
	}); err != nil {
		s.logger.Errorf("保存激活令牌失败: %v", err)
		return nil, apperr.ErrServer
	}

	if err := s.mail.SendActivation(user, token); err != nil {
		// 邮件失败不回滚注册,用户可以再次请求激活
		s.logger.Warnf("发送激活邮件失败: %v", err)
	}

	return user, nil
}

// Activate 通过一次性令牌激活账户
func (s *AuthService) Activate(token string) (*models.User, error) {
	tokenObj, err := s.tokenRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "无效的激活令牌")
		}
		s.logger.Errorf("查询激活令牌失败: %v", err)
		return nil, apperr.ErrServer
	}

	user, err := s.userRepo.GetByID(tokenObj.UserID)
	if err != nil {
		s.logger.Errorf("查询用户失败: %v", err)
		return nil, apperr.ErrServer
	}

	user.IsActive = true
	if err := s.userRepo.Update(user); err != nil {
		s.logger.Errorf("激活用户失败: %v", err)
		return nil, apperr.ErrServer
	}

	// 令牌单次有效
	if err := s.tokenRepo.Delete(tokenObj); err != nil {
		s.logger.Errorf("删除激活令牌失败: %v", err)
		return nil, apperr.ErrServer
	}

	return user, nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("邮箱或密码错误")
	}

	// 验证密码
	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, errors.New("邮箱或密码错误")
	}

	// 检查用户是否激活
	if !user.IsActive {
		return nil, errors.New("用户未激活")
	}

	// 记录最后登录时间
	if err := s.userRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		s.logger.Warnf("更新最后登录时间失败: %v", err)
	}

	// 生成Token
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserInfo(user),
	}, nil
}

// GetMe 获取当前用户信息
func (s *AuthService) GetMe(userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "用户不存在")
	}

	info := toUserInfo(user)
	return &info, nil
}

// Deactivate 注销账户并记录注销时间
func (s *AuthService) Deactivate(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return apperr.Wrap(apperr.ErrNotFound, "用户不存在")
	}

	if !user.IsActive {
		return apperr.Wrap(apperr.ErrInvalidInput, "账户已经是注销状态")
	}

	now := time.Now()
	user.IsActive = false
	user.InactiveSince = &now

	if err := s.userRepo.Update(user); err != nil {
		s.logger.Errorf("注销账户失败: %v", err)
		return apperr.ErrServer
	}

	if err := s.mail.SendDeactivation(user); err != nil {
		s.logger.Warnf("发送注销通知邮件失败: %v", err)
	}

	return nil
}

// InitAdmin 初始化管理员账户
func (s *AuthService) InitAdmin() error {
	// 检查是否已有管理员
	admin, err := s.userRepo.GetAdmin()
	if err == nil && admin != nil {
		return nil // 已存在管理员
	}

	// 检查密码是否已经是bcrypt哈希格式(以$2a$或$2b$开头)
	passwordHash := s.cfg.Admin.Password
	if len(passwordHash) < 4 || (passwordHash[:4] != "$2a$" && passwordHash[:4] != "$2b$") {
		hashedPassword, err := utils.HashPassword(s.cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("密码哈希失败: %w", err)
		}
		passwordHash = hashedPassword
	}

	// 创建管理员,直接激活
	user := &models.User{
		Name:         s.cfg.Admin.Name,
		Email:        s.cfg.Admin.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsStaff:      true,
		StorageLimit: s.cfg.Storage.DefaultLimit,
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("创建管理员失败: %w", err)
	}

	return nil
}

// toUserInfo 转换为用户信息DTO
func toUserInfo(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff,
	}
}
