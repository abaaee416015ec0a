package repository

import (
	"picto-go/internal/models"

	"gorm.io/gorm"
)

// ActivationTokenRepository 激活令牌数据访问层
type ActivationTokenRepository struct {
	db *gorm.DB
}

// NewActivationTokenRepository 创建激活令牌Repository
func NewActivationTokenRepository(db *gorm.DB) *ActivationTokenRepository {
	return &ActivationTokenRepository{db: db}
}

// Create 创建令牌
func (r *ActivationTokenRepository) Create(token *models.ActivationToken) error {
	return r.db.Create(token).Error
}

// GetByToken 根据令牌字符串获取记录
func (r *ActivationTokenRepository) GetByToken(token string) (*models.ActivationToken, error) {
	var t models.ActivationToken
	err := r.db.Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete 删除令牌
func (r *ActivationTokenRepository) Delete(token *models.ActivationToken) error {
	return r.db.Delete(token).Error
}

// DeleteByUserID 删除指定用户的令牌
func (r *ActivationTokenRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.ActivationToken{}).Error
}
