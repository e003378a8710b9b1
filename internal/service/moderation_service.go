package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/pkg/email"
	"github.com/Lio2412/recipe_go_server/internal/pkg/pubsub"
	"github.com/Lio2412/recipe_go_server/internal/repository"
)

// 审核操作
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionDelete  = "delete"
)

// FlagThreshold 举报升级阈值：累计举报数达到该值时评论自动转为 flagged
const FlagThreshold = 3

type ModerationService struct {
	store  CommentStore
	events *pubsub.Publisher
	mailer *email.Service
}

func NewModerationService(store CommentStore, events *pubsub.Publisher, mailer *email.Service) *ModerationService {
	return &ModerationService{
		store:  store,
		events: events,
		mailer: mailer,
	}
}

// RecordFlag 记录一次举报。计数首次达到阈值时将评论升级为 flagged；
// 之后的举报只累加计数，不再触发任何副作用。
// 乐观并发冲突内部重试一次后才向上抛出。
func (s *ModerationService) RecordFlag(commentID int64, reason string) (*dto.CommentItem, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrFlagReasonRequired
	}

	newCount, err := s.store.IncrementFlags(commentID, reason)
	if errors.Is(err, repository.ErrConflict) {
		newCount, err = s.store.IncrementFlags(commentID, reason)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	// 恰好在跨过阈值的这一次举报上触发升级；计数只增不减，
	// 所以 newCount == FlagThreshold 只会成立一次
	if newCount == FlagThreshold {
		if err := s.escalate(commentID); err != nil {
			return nil, err
		}
	}

	comment, err := s.store.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	if newCount == FlagThreshold {
		s.publish(&pubsub.CommentEvent{
			Type:       pubsub.EventCommentFlagged,
			CommentID:  comment.ID,
			TargetType: comment.TargetType,
			TargetID:   comment.TargetID,
			Status:     comment.Status,
			FlagCount:  comment.FlagCount,
		})
		s.sendFlagAlert(comment)
	}

	count, err := s.store.CountByParentID(comment.ID)
	if err != nil {
		return nil, err
	}
	return newCommentItem(comment, count), nil
}

// ApplyAction 执行单条审核操作。
// 返回处理后的评论；评论被硬删除时返回 (nil, nil)。
func (s *ModerationService) ApplyAction(commentID int64, action, reason string) (*dto.CommentItem, error) {
	if err := validateAction(action, reason); err != nil {
		return nil, err
	}

	comment, err := s.store.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	hardDeleted, err := s.applyOne(comment, action, reason)
	if err != nil {
		log.Printf("Moderation action %s failed for comment %d: %v", action, commentID, err)
		return nil, err
	}

	s.publish(&pubsub.CommentEvent{
		Type:       pubsub.EventCommentModerated,
		CommentID:  comment.ID,
		TargetType: comment.TargetType,
		TargetID:   comment.TargetID,
		Action:     action,
		Deleted:    hardDeleted,
	})

	if hardDeleted {
		return nil, nil
	}

	updated, err := s.store.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountByParentID(commentID)
	if err != nil {
		return nil, err
	}
	return newCommentItem(updated, count), nil
}

// ApplyBatch 批量执行审核操作。
// 前置校验（所有评论存在、reject 必须带原因）失败时整批中止、不做任何变更；
// 前置校验通过后逐条独立处理，单条失败不影响其余条目。
func (s *ModerationService) ApplyBatch(commentIDs []int64, action, reason string) (*dto.BatchModerateResult, error) {
	if err := validateAction(action, reason); err != nil {
		return nil, err
	}

	comments, err := s.store.GetByIDs(commentIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	var missing []int64
	for _, id := range commentIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingCommentsError{IDs: missing}
	}

	result := &dto.BatchModerateResult{
		Succeeded: []int64{},
		Failed:    []dto.BatchFailure{},
		Items:     []*dto.CommentItem{},
	}

	// 逐条独立处理：删除策略按条评估，单条存储错误只记录、不中止
	var surviving []int64
	for _, id := range commentIDs {
		hardDeleted, err := s.applyOne(byID[id], action, reason)
		if err != nil {
			log.Printf("Batch moderation %s failed for comment %d: %v", action, id, err)
			result.Failed = append(result.Failed, dto.BatchFailure{
				CommentID: id,
				ErrorKind: ErrorKind(err),
				Message:   err.Error(),
			})
			continue
		}

		result.Succeeded = append(result.Succeeded, id)
		if !hardDeleted {
			surviving = append(surviving, id)
		}

		s.publish(&pubsub.CommentEvent{
			Type:       pubsub.EventCommentModerated,
			CommentID:  id,
			TargetType: byID[id].TargetType,
			TargetID:   byID[id].TargetID,
			Action:     action,
			Deleted:    hardDeleted,
		})
	}

	// 返回处理后的最终状态，回复数重新计算；硬删除的不再出现
	if len(surviving) > 0 {
		updated, err := s.store.GetByIDs(surviving)
		if err != nil {
			return nil, err
		}
		replyCounts, err := s.store.CountByParentIDs(surviving)
		if err != nil {
			return nil, err
		}

		updatedByID := make(map[int64]*model.Comment, len(updated))
		for _, c := range updated {
			updatedByID[c.ID] = c
		}
		for _, id := range surviving {
			if c, ok := updatedByID[id]; ok {
				result.Items = append(result.Items, newCommentItem(c, replyCounts[id]))
			}
		}
	}

	return result, nil
}

// applyOne 对单条评论执行状态迁移或删除
func (s *ModerationService) applyOne(comment *model.Comment, action, reason string) (hardDeleted bool, err error) {
	switch action {
	case ActionApprove:
		return false, s.approve(comment)
	case ActionReject:
		return false, s.reject(comment, reason)
	case ActionDelete:
		return s.delete(comment)
	default:
		return false, ErrInvalidAction
	}
}

// approve 任何状态下都允许批准；清除驳回原因
func (s *ModerationService) approve(comment *model.Comment) error {
	return s.store.Update(comment.ID, map[string]interface{}{
		"status":           model.CommentStatusApproved,
		"rejection_reason": "",
	})
}

// reject 驳回评论并记录原因；原因为空属于前置校验错误，调用前已拦截
func (s *ModerationService) reject(comment *model.Comment, reason string) error {
	return s.store.Update(comment.ID, map[string]interface{}{
		"status":           model.CommentStatusRejected,
		"rejection_reason": reason,
	})
}

// escalate 举报升级：无论当前状态，强制转为 flagged。
// 只能由举报策略触发，不暴露为审核操作；不写驳回原因。
func (s *ModerationService) escalate(commentID int64) error {
	return s.store.Update(commentID, map[string]interface{}{
		"status": model.CommentStatusFlagged,
	})
}

// delete 删除策略：无回复则物理删除；有回复则墓碑化，
// 保留行以维持所有回复的 parent_id 引用，状态强制为 rejected
// 以免墓碑出现在已批准列表里。
// 已知一致性缺口：回复数检查与删除之间不持锁，并发新增回复时
// 可能对一条刚获得回复的评论执行物理删除（见并发模型说明）。
func (s *ModerationService) delete(comment *model.Comment) (hardDeleted bool, err error) {
	count, err := s.store.CountByParentID(comment.ID)
	if err != nil {
		return false, err
	}

	if count == 0 {
		return true, s.store.Delete(comment.ID)
	}

	err = s.store.Update(comment.ID, map[string]interface{}{
		"content":      model.TombstoneContent,
		"author_name":  "",
		"author_email": "",
		"status":       model.CommentStatusRejected,
	})
	return false, err
}

func validateAction(action, reason string) error {
	switch action {
	case ActionApprove, ActionDelete:
		return nil
	case ActionReject:
		if strings.TrimSpace(reason) == "" {
			return ErrReasonRequired
		}
		return nil
	default:
		return ErrInvalidAction
	}
}

func (s *ModerationService) publish(event *pubsub.CommentEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCommentEvent(context.Background(), event); err != nil {
		log.Printf("Failed to publish moderation event (comment %d): %v", event.CommentID, err)
	}
}

func (s *ModerationService) sendFlagAlert(comment *model.Comment) {
	if s.mailer == nil {
		return
	}
	go func(id int64, count int, reasons []string) {
		if err := s.mailer.SendFlagAlert(id, count, reasons); err != nil {
			log.Printf("Failed to send flag alert for comment %d: %v", id, err)
		}
	}(comment.ID, comment.FlagCount, comment.FlagReasons)
}
