package repository

import (
	"picto-go/internal/models"

	"gorm.io/gorm"
)

// AudioRepository 音频内容数据访问层
type AudioRepository struct {
	db *gorm.DB
}

// NewAudioRepository 创建音频内容Repository
func NewAudioRepository(db *gorm.DB) *AudioRepository {
	return &AudioRepository{db: db}
}

// Create 创建记录
func (r *AudioRepository) Create(a *models.Audio) error {
	return r.db.Create(a).Error
}

// Save 保存记录
func (r *AudioRepository) Save(a *models.Audio) error {
	return r.db.Save(a).Error
}

// Delete 删除记录
func (r *AudioRepository) Delete(a *models.Audio) error {
	return r.db.Delete(a).Error
}

// DeleteByAuthorID 删除指定作者的全部记录
func (r *AudioRepository) DeleteByAuthorID(authorID uint) error {
	return r.db.Where("author_id = ?", authorID).Delete(&models.Audio{}).Error
}

// visibleScope 按请求者身份过滤可见内容
func (r *AudioRepository) visibleScope(user *models.User) *gorm.DB {
	if user.IsStaff {
		return r.db.Where("is_preloaded = ?", true)
	}
	return r.db.Where("is_preloaded = ? OR author_id = ?", true, user.ID)
}

// ListVisible 获取请求者可见的内容列表
func (r *AudioRepository) ListVisible(user *models.User) ([]models.Audio, error) {
	var items []models.Audio
	err := r.visibleScope(user).Order("created_at DESC").Find(&items).Error
	return items, err
}

// GetVisible 获取请求者可见的单条内容
func (r *AudioRepository) GetVisible(id uint, user *models.User) (*models.Audio, error) {
	var item models.Audio
	err := r.visibleScope(user).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
