package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create 创建文章
func (r *ArticleRepository) Create(article *model.Article) error {
	return r.db.Create(article).Error
}

// GetByID 根据 ID 获取文章
func (r *ArticleRepository) GetByID(id int64) (*model.Article, error) {
	var article model.Article
	err := r.db.Where("id = ?", id).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Exists 检查文章是否存在
func (r *ArticleRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Article{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update 按字段更新文章
func (r *ArticleRepository) Update(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Article{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除文章
func (r *ArticleRepository) Delete(id int64) error {
	return r.db.Delete(&model.Article{}, id).Error
}

// List 分页查询文章
func (r *ArticleRepository) List(status, search string, page, pageSize int) ([]*model.Article, int64, error) {
	query := r.db.Model(&model.Article{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR summary LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []*model.Article
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// ListDueScheduled 获取到期待发布的文章
func (r *ArticleRepository) ListDueScheduled(now time.Time) ([]*model.Article, error) {
	var articles []*model.Article
	err := r.db.Where("status = ? AND publish_at <= ?", model.ContentStatusScheduled, now).
		Find(&articles).Error
	return articles, err
}
