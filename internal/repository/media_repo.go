package repository

import (
	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create 保存媒体记录
func (r *MediaRepository) Create(media *model.Media) error {
	return r.db.Create(media).Error
}

// GetByID 根据 ID 获取媒体记录
func (r *MediaRepository) GetByID(id int64) (*model.Media, error) {
	var media model.Media
	err := r.db.Where("id = ?", id).First(&media).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// Delete 删除媒体记录
func (r *MediaRepository) Delete(id int64) error {
	return r.db.Delete(&model.Media{}, id).Error
}

// List 分页查询媒体库
func (r *MediaRepository) List(page, pageSize int) ([]*model.Media, int64, error) {
	var total int64
	if err := r.db.Model(&model.Media{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.Media
	offset := (page - 1) * pageSize
	err := r.db.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
