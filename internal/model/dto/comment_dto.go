package dto

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Content     string `json:"content" binding:"required,min=1,max=1000"`
	AuthorName  string `json:"author_name" binding:"required,min=1,max=100"`
	AuthorEmail string `json:"author_email" binding:"required,email"`
	TargetType  string `json:"target_type" binding:"required,oneof=recipe article"`
	TargetID    int64  `json:"target_id" binding:"required"`
	ParentID    *int64 `json:"parent_id,omitempty"`
}

// FlagCommentRequest 举报评论请求
type FlagCommentRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=200"`
}

// ModerateCommentRequest 单条审核请求
type ModerateCommentRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject delete"`
	Reason string `json:"reason,omitempty"`
}

// BatchModerateRequest 批量审核请求
type BatchModerateRequest struct {
	CommentIDs []int64 `json:"comment_ids" binding:"required,min=1"`
	Action     string  `json:"action" binding:"required,oneof=approve reject delete"`
	Reason     string  `json:"reason,omitempty"`
}

// CommentListQuery 评论列表筛选参数
type CommentListQuery struct {
	TargetType string `form:"target_type"`
	TargetID   int64  `form:"target_id"`
	ParentID   *int64 `form:"parent_id"`
	Status     string `form:"status"`
	Search     string `form:"search"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// ParentSummary 父评论摘要
type ParentSummary struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// CommentItem 评论项
type CommentItem struct {
	ID              int64          `json:"id"`
	TargetType      string         `json:"target_type"`
	TargetID        int64          `json:"target_id"`
	ParentID        *int64         `json:"parent_id,omitempty"`
	Parent          *ParentSummary `json:"parent,omitempty"`
	AuthorName      string         `json:"author_name"`
	Content         string         `json:"content"`
	Status          string         `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	FlagCount       int            `json:"flag_count"`
	FlagReasons     []string       `json:"flag_reasons,omitempty"`
	ReplyCount      int64          `json:"reply_count"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
}

// BatchFailure 批量处理中单条失败记录
type BatchFailure struct {
	CommentID int64  `json:"comment_id"`
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// BatchModerateResult 批量审核结果
type BatchModerateResult struct {
	Succeeded []int64        `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
	// 处理后的评论（硬删除的不包含在内）
	Items []*CommentItem `json:"items"`
}
