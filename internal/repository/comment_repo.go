package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
)

// ErrConflict 乐观并发更新失败（写入时数据已被其他请求修改）
var ErrConflict = errors.New("并发更新冲突")

// CommentFilter 评论查询条件
type CommentFilter struct {
	TargetType string
	TargetID   int64
	ParentID   *int64
	Status     string
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDs 批量获取评论
func (r *CommentRepository) GetByIDs(ids []int64) ([]*model.Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var comments []*model.Comment
	err := r.db.Where("id IN ?", ids).Find(&comments).Error
	return comments, err
}

// Update 按字段更新评论
func (r *CommentRepository) Update(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 物理删除评论
func (r *CommentRepository) Delete(id int64) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

// IncrementFlags 累加举报计数并追加举报原因，返回累加后的计数。
// 采用乐观并发：写入时校验读取到的旧计数，被并发修改则返回 ErrConflict，
// 由调用方决定重试，避免两次并发举报都写入同一计数而丢失升级触发。
func (r *CommentRepository) IncrementFlags(id int64, reason string) (int, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return 0, err
	}

	newCount := comment.FlagCount + 1
	reasons := append(comment.FlagReasons, reason)

	result := r.db.Model(&model.Comment{}).
		Where("id = ? AND flag_count = ?", id, comment.FlagCount).
		Updates(map[string]interface{}{
			"flag_count":   newCount,
			"flag_reasons": reasons,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrConflict
	}

	return newCount, nil
}

// CountByParentID 统计直接回复数
func (r *CommentRepository) CountByParentID(parentID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

// CountByParentIDs 批量统计直接回复数，返回 parent_id -> 回复数
func (r *CommentRepository) CountByParentIDs(parentIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	if len(parentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ParentID int64
		Total    int64
	}
	var rows []row
	err := r.db.Model(&model.Comment{}).
		Select("parent_id, COUNT(*) AS total").
		Where("parent_id IN ?", parentIDs).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		counts[rw.ParentID] = rw.Total
	}
	return counts, nil
}

// ListReplies 获取直接回复列表，按创建时间升序
func (r *CommentRepository) ListReplies(parentID int64) ([]*model.Comment, error) {
	var replies []*model.Comment
	err := r.db.Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// ListByFilter 按条件分页查询评论
func (r *CommentRepository) ListByFilter(filter *CommentFilter, page, pageSize int) ([]*model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{})

	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID != 0 {
		query = query.Where("target_id = ?", filter.TargetID)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("content LIKE ? OR author_name LIKE ? OR author_email LIKE ?", like, like, like)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*model.Comment
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
