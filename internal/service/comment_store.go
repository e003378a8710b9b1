package service

import (
	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/repository"
)

// CommentStore 评论存储的窄接口。
// 审核核心只依赖该接口实现一次，更换底层存储属于适配层的事，
// 不再产生第二份审核逻辑。
type CommentStore interface {
	Create(comment *model.Comment) error
	GetByID(id int64) (*model.Comment, error)
	GetByIDs(ids []int64) ([]*model.Comment, error)
	Update(id int64, fields map[string]interface{}) error
	Delete(id int64) error
	IncrementFlags(id int64, reason string) (int, error)
	CountByParentID(parentID int64) (int64, error)
	CountByParentIDs(parentIDs []int64) (map[int64]int64, error)
	ListReplies(parentID int64) ([]*model.Comment, error)
	ListByFilter(filter *repository.CommentFilter, page, pageSize int) ([]*model.Comment, int64, error)
}

var _ CommentStore = (*repository.CommentRepository)(nil)
