package service

import (
	"time"

	"picto-go/internal/repository"

	"github.com/sirupsen/logrus"
)

// 过期账户判定窗口
const (
	inactiveRetention  = 30 * 24 * time.Hour
	lastLoginRetention = 100 * 24 * time.Hour
)

// CleanupService 过期账户清理服务。
// 清理三类账户:注销超过30天的、注册后30天内未激活的、
// 超过100天未登录的。管理员账户不参与清理
type CleanupService struct {
	userRepo    *repository.UserRepository
	userService *UserService
	logger      *logrus.Logger
}

// NewCleanupService 创建清理服务
func NewCleanupService(userRepo *repository.UserRepository, userService *UserService, logger *logrus.Logger) *CleanupService {
	return &CleanupService{
		userRepo:    userRepo,
		userService: userService,
		logger:      logger,
	}
}

// Run 执行一次清理,返回成功清除的账户数。
// 单个账户清除失败只记录日志,不中断其余账户的清理
func (s *CleanupService) Run() (int, error) {
	now := time.Now()
	users, err := s.userRepo.FindExpired(now.Add(-inactiveRetention), now.Add(-lastLoginRetention))
	if err != nil {
		s.logger.Errorf("查询过期账户失败: %v", err)
		return 0, err
	}

	removed := 0
	for i := range users {
		user := &users[i]
		if user.IsStaff {
			continue
		}

		if err := s.userService.Purge(user); err != nil {
			s.logger.WithFields(logrus.Fields{
				"user_id": user.ID,
				"email":   user.Email,
			}).Errorf("清除过期账户失败: %v", err)
			continue
		}

		s.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("已清除过期账户")
		removed++
	}

	return removed, nil
}
