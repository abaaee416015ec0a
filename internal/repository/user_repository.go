package repository

import (
	"time"

	"picto-go/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问层
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户Repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail 检查邮箱是否已被注册
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// GetAdmin 获取管理员用户
func (r *UserRepository) GetAdmin() (*models.User, error) {
	var user models.User
	err := r.db.Where("is_staff = ?", true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 更新用户
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *UserRepository) UpdateLastLogin(userID uint, t time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("last_login", t).Error
}

// Delete 删除用户
func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// List 获取用户列表
func (r *UserRepository) List(offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// FindExpired 查找应被清理的账户:
// 未激活且注销/创建超过 inactiveBefore,或最后登录早于 loginBefore
func (r *UserRepository) FindExpired(inactiveBefore, loginBefore time.Time) ([]models.User, error) {
	var users []models.User
	err := r.db.Where(
		"(is_active = ? AND inactive_since < ?) OR (is_active = ? AND inactive_since IS NULL AND created_at < ?) OR last_login < ?",
		false, inactiveBefore, false, inactiveBefore, loginBefore,
	).Find(&users).Error
	return users, err
}
