package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/repository"
)

// 错误类别，用于批量结果上报与 HTTP 状态映射
const (
	ErrKindValidation = "ValidationError"
	ErrKindNotFound   = "NotFoundError"
	ErrKindConflict   = "ConflictError"
	ErrKindStore      = "StoreError"
)

var (
	ErrCommentNotFound    = errors.New("评论不存在")
	ErrTargetNotFound     = errors.New("评论目标不存在")
	ErrParentNotFound     = errors.New("父评论不存在")
	ErrParentMismatch     = errors.New("父评论不属于该内容")
	ErrReplyTooDeep       = errors.New("仅支持一级回复")
	ErrReasonRequired     = errors.New("驳回评论必须填写原因")
	ErrFlagReasonRequired = errors.New("举报原因不能为空")
	ErrInvalidAction      = errors.New("不支持的审核操作")
	ErrInvalidTargetType  = errors.New("不支持的评论目标类型")
	ErrInvalidDateRange   = errors.New("日期格式无效")
)

// MissingCommentsError 批量操作前置校验失败：部分评论不存在
type MissingCommentsError struct {
	IDs []int64
}

func (e *MissingCommentsError) Error() string {
	return fmt.Sprintf("评论不存在: %v", e.IDs)
}

// ErrorKind 将错误归入四种类别之一
func ErrorKind(err error) string {
	var missing *MissingCommentsError
	switch {
	case errors.Is(err, ErrReasonRequired),
		errors.Is(err, ErrFlagReasonRequired),
		errors.Is(err, ErrInvalidAction),
		errors.Is(err, ErrInvalidTargetType),
		errors.Is(err, ErrReplyTooDeep),
		errors.Is(err, ErrParentMismatch),
		errors.Is(err, ErrInvalidDateRange):
		return ErrKindValidation
	case errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrTargetNotFound),
		errors.Is(err, ErrParentNotFound),
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.As(err, &missing):
		return ErrKindNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrKindConflict
	default:
		return ErrKindStore
	}
}
