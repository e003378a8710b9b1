package dto

// SaveContentRequest 创建/更新内容（菜谱或文章）请求
type SaveContentRequest struct {
	Title     string   `json:"title" binding:"required,min=1,max=200"`
	Slug      string   `json:"slug" binding:"required,min=1,max=200"`
	Summary   string   `json:"summary" binding:"max=500"`
	Content   string   `json:"content"`
	CoverURL  string   `json:"cover_url"`
	Tags      []string `json:"tags"`
	Status    string   `json:"status" binding:"omitempty,oneof=draft scheduled published"`
	PublishAt string   `json:"publish_at,omitempty"` // RFC3339，status 为 scheduled 时必填
}

// ContentListQuery 内容列表筛选参数
type ContentListQuery struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
