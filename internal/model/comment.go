package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 评论状态
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
	CommentStatusFlagged  = "flagged"
)

// 评论目标类型
const (
	TargetTypeRecipe  = "recipe"
	TargetTypeArticle = "article"
)

// TombstoneContent 软删除后的占位内容
const TombstoneContent = "[该评论已被删除]"

// StringArray 用于 JSON 数组字段
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(bytes, s)
}

type Comment struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	TargetType  string  `gorm:"size:20;not null;index:idx_comment_target" json:"target_type"` // recipe, article
	TargetID    int64   `gorm:"not null;index:idx_comment_target" json:"target_id"`
	ParentID    *int64  `gorm:"index" json:"parent_id,omitempty"`
	AuthorName  string  `gorm:"size:100;not null" json:"author_name"`
	AuthorEmail string  `gorm:"size:100" json:"-"`
	Content     string  `gorm:"type:text;not null" json:"content"`
	Status      string  `gorm:"size:20;default:pending;index" json:"status"` // pending, approved, rejected, flagged
	// 仅由显式驳回操作写入；举报升级不设置
	RejectionReason string      `gorm:"size:500" json:"rejection_reason,omitempty"`
	FlagCount       int         `gorm:"default:0" json:"flag_count"`
	FlagReasons     StringArray `gorm:"type:json" json:"flag_reasons,omitempty"`
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// 关联
	Replies []*Comment `gorm:"-" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsValidTargetType 校验评论目标类型
func IsValidTargetType(t string) bool {
	return t == TargetTypeRecipe || t == TargetTypeArticle
}
