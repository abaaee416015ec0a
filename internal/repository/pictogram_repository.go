package repository

import (
	"picto-go/internal/models"

	"gorm.io/gorm"
)

// PictogramRepository 图片内容数据访问层
type PictogramRepository struct {
	db *gorm.DB
}

// NewPictogramRepository 创建图片内容Repository
func NewPictogramRepository(db *gorm.DB) *PictogramRepository {
	return &PictogramRepository{db: db}
}

// Create 创建记录
func (r *PictogramRepository) Create(p *models.Pictogram) error {
	return r.db.Create(p).Error
}

// Save 保存记录
func (r *PictogramRepository) Save(p *models.Pictogram) error {
	return r.db.Save(p).Error
}

// Delete 删除记录
func (r *PictogramRepository) Delete(p *models.Pictogram) error {
	return r.db.Delete(p).Error
}

// DeleteByAuthorID 删除指定作者的全部记录
func (r *PictogramRepository) DeleteByAuthorID(authorID uint) error {
	return r.db.Where("author_id = ?", authorID).Delete(&models.Pictogram{}).Error
}

// visibleScope 按请求者身份过滤可见内容:
// staff 只能访问预载内容,普通用户可访问预载内容和自己的内容
func (r *PictogramRepository) visibleScope(user *models.User) *gorm.DB {
	if user.IsStaff {
		return r.db.Where("is_preloaded = ?", true)
	}
	return r.db.Where("is_preloaded = ? OR author_id = ?", true, user.ID)
}

// ListVisible 获取请求者可见的内容列表
func (r *PictogramRepository) ListVisible(user *models.User) ([]models.Pictogram, error) {
	var items []models.Pictogram
	err := r.visibleScope(user).Order("created_at DESC").Find(&items).Error
	return items, err
}

// GetVisible 获取请求者可见的单条内容
func (r *PictogramRepository) GetVisible(id uint, user *models.User) (*models.Pictogram, error) {
	var item models.Pictogram
	err := r.visibleScope(user).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
