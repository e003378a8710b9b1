package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/pkg/pubsub"
	"github.com/Lio2412/recipe_go_server/internal/repository"
)

type CommentService struct {
	store       CommentStore
	recipeRepo  *repository.RecipeRepository
	articleRepo *repository.ArticleRepository
	events      *pubsub.Publisher
}

func NewCommentService(
	store CommentStore,
	recipeRepo *repository.RecipeRepository,
	articleRepo *repository.ArticleRepository,
	events *pubsub.Publisher,
) *CommentService {
	return &CommentService{
		store:       store,
		recipeRepo:  recipeRepo,
		articleRepo: articleRepo,
		events:      events,
	}
}

// Create 发表评论，初始状态为 pending
func (s *CommentService) Create(req *dto.CreateCommentRequest) (*dto.CommentItem, error) {
	if !model.IsValidTargetType(req.TargetType) {
		return nil, ErrInvalidTargetType
	}

	// 校验评论目标存在（仅在创建时校验一次）
	exists, err := s.targetExists(req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	// 如果是回复，校验父评论
	if req.ParentID != nil {
		parent, err := s.store.GetByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}

		if parent.TargetType != req.TargetType || parent.TargetID != req.TargetID {
			return nil, ErrParentMismatch
		}

		// 只支持一级回复：父评论本身是回复时直接拒绝
		if parent.ParentID != nil {
			return nil, ErrReplyTooDeep
		}
	}

	comment := &model.Comment{
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		ParentID:    req.ParentID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Content:     req.Content,
		Status:      model.CommentStatusPending,
		FlagReasons: model.StringArray{},
	}

	if err := s.store.Create(comment); err != nil {
		return nil, err
	}

	s.publish(&pubsub.CommentEvent{
		Type:       pubsub.EventCommentCreated,
		CommentID:  comment.ID,
		TargetType: comment.TargetType,
		TargetID:   comment.TargetID,
		Status:     comment.Status,
	})

	return newCommentItem(comment, 0), nil
}

// GetReplies 获取直接回复，按创建时间升序。未知 ID 返回空列表而非错误
func (s *CommentService) GetReplies(commentID int64) ([]*dto.CommentItem, error) {
	replies, err := s.store.ListReplies(commentID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CommentItem, len(replies))
	for i, reply := range replies {
		items[i] = newCommentItem(reply, 0)
	}
	return items, nil
}

// CountReplies 统计直接回复数
func (s *CommentService) CountReplies(commentID int64) (int64, error) {
	return s.store.CountByParentID(commentID)
}

// GetParent 获取父评论，顶层评论或未知 ID 返回 nil
func (s *CommentService) GetParent(commentID int64) (*dto.CommentItem, error) {
	comment, err := s.store.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if comment.ParentID == nil {
		return nil, nil
	}

	parent, err := s.store.GetByID(*comment.ParentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	count, err := s.store.CountByParentID(parent.ID)
	if err != nil {
		return nil, err
	}
	return newCommentItem(parent, count), nil
}

// Get 获取单条评论，附带回复数和父评论摘要
func (s *CommentService) Get(commentID int64) (*dto.CommentItem, error) {
	comment, err := s.store.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	count, err := s.store.CountByParentID(comment.ID)
	if err != nil {
		return nil, err
	}

	item := newCommentItem(comment, count)
	if comment.ParentID != nil {
		if parent, err := s.store.GetByID(*comment.ParentID); err == nil {
			item.Parent = newParentSummary(parent)
		}
	}
	return item, nil
}

// List 按条件分页查询评论，每条附带回复数和父评论摘要
func (s *CommentService) List(query *dto.CommentListQuery) ([]*dto.CommentItem, int64, error) {
	filter := &repository.CommentFilter{
		TargetType: query.TargetType,
		TargetID:   query.TargetID,
		ParentID:   query.ParentID,
		Status:     query.Status,
		Search:     query.Search,
	}

	if query.DateFrom != "" {
		from, err := parseDate(query.DateFrom)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		filter.DateFrom = &from
	}
	if query.DateTo != "" {
		to, err := parseDate(query.DateTo)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		filter.DateTo = &to
	}

	comments, total, err := s.store.ListByFilter(filter, query.Page, query.PageSize)
	if err != nil {
		return nil, 0, err
	}

	if len(comments) == 0 {
		return []*dto.CommentItem{}, total, nil
	}

	// 批量补齐回复数
	ids := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	replyCounts, err := s.store.CountByParentIDs(ids)
	if err != nil {
		return nil, 0, err
	}

	// 批量补齐父评论摘要
	parentIDSet := make(map[int64]struct{})
	for _, c := range comments {
		if c.ParentID != nil {
			parentIDSet[*c.ParentID] = struct{}{}
		}
	}
	parents := make(map[int64]*model.Comment)
	if len(parentIDSet) > 0 {
		parentIDs := make([]int64, 0, len(parentIDSet))
		for id := range parentIDSet {
			parentIDs = append(parentIDs, id)
		}
		parentComments, err := s.store.GetByIDs(parentIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, p := range parentComments {
			parents[p.ID] = p
		}
	}

	items := make([]*dto.CommentItem, len(comments))
	for i, c := range comments {
		items[i] = newCommentItem(c, replyCounts[c.ID])
		if c.ParentID != nil {
			if p, ok := parents[*c.ParentID]; ok {
				items[i].Parent = newParentSummary(p)
			}
		}
	}

	return items, total, nil
}

func (s *CommentService) targetExists(targetType string, targetID int64) (bool, error) {
	switch targetType {
	case model.TargetTypeRecipe:
		return s.recipeRepo.Exists(targetID)
	case model.TargetTypeArticle:
		return s.articleRepo.Exists(targetID)
	default:
		return false, ErrInvalidTargetType
	}
}

func (s *CommentService) publish(event *pubsub.CommentEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCommentEvent(context.Background(), event); err != nil {
		log.Printf("Failed to publish comment event (comment %d): %v", event.CommentID, err)
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func newCommentItem(c *model.Comment, replyCount int64) *dto.CommentItem {
	return &dto.CommentItem{
		ID:              c.ID,
		TargetType:      c.TargetType,
		TargetID:        c.TargetID,
		ParentID:        c.ParentID,
		AuthorName:      c.AuthorName,
		Content:         c.Content,
		Status:          c.Status,
		RejectionReason: c.RejectionReason,
		FlagCount:       c.FlagCount,
		FlagReasons:     c.FlagReasons,
		ReplyCount:      replyCount,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
}

func newParentSummary(p *model.Comment) *dto.ParentSummary {
	return &dto.ParentSummary{
		ID:         p.ID,
		Content:    p.Content,
		AuthorName: p.AuthorName,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}
