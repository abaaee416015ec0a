package repository

import (
	"picto-go/internal/models"

	"gorm.io/gorm"
)

// RoutineRepository 例行程序数据访问层
type RoutineRepository struct {
	db *gorm.DB
}

// NewRoutineRepository 创建例行程序Repository
func NewRoutineRepository(db *gorm.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

// Create 创建记录
func (r *RoutineRepository) Create(rt *models.Routine) error {
	return r.db.Create(rt).Error
}

// Save 保存记录
func (r *RoutineRepository) Save(rt *models.Routine) error {
	return r.db.Save(rt).Error
}

// Delete 删除记录
func (r *RoutineRepository) Delete(rt *models.Routine) error {
	return r.db.Delete(rt).Error
}

// DeleteByAuthorID 删除指定作者的全部记录
func (r *RoutineRepository) DeleteByAuthorID(authorID uint) error {
	return r.db.Where("author_id = ?", authorID).Delete(&models.Routine{}).Error
}

// ListByAuthor 获取作者自己的例行程序列表。
// 例行程序不共享,无论请求者身份,可见范围始终只有本人的记录
func (r *RoutineRepository) ListByAuthor(authorID uint) ([]models.Routine, error) {
	var items []models.Routine
	err := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&items).Error
	return items, err
}

// GetByIDAndAuthor 获取作者自己的单条例行程序
func (r *RoutineRepository) GetByIDAndAuthor(id uint, authorID uint) (*models.Routine, error) {
	var item models.Routine
	err := r.db.Where("id = ? AND author_id = ?", id, authorID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
