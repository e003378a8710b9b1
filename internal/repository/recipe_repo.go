package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create 创建菜谱
func (r *RecipeRepository) Create(recipe *model.Recipe) error {
	return r.db.Create(recipe).Error
}

// GetByID 根据 ID 获取菜谱
func (r *RecipeRepository) GetByID(id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.Where("id = ?", id).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Exists 检查菜谱是否存在
func (r *RecipeRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update 按字段更新菜谱
func (r *RecipeRepository) Update(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Recipe{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除菜谱
func (r *RecipeRepository) Delete(id int64) error {
	return r.db.Delete(&model.Recipe{}, id).Error
}

// List 分页查询菜谱
func (r *RecipeRepository) List(status, search string, page, pageSize int) ([]*model.Recipe, int64, error) {
	query := r.db.Model(&model.Recipe{})

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

	var recipes []*model.Recipe
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// ListDueScheduled 获取到期待发布的菜谱
func (r *RecipeRepository) ListDueScheduled(now time.Time) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := r.db.Where("status = ? AND publish_at <= ?", model.ContentStatusScheduled, now).
		Find(&recipes).Error
	return recipes, err
}
