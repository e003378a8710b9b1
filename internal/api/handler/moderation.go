package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/pkg/response"
	"github.com/Lio2412/recipe_go_server/internal/service"
)

type ModerationHandler struct {
	commentService    *service.CommentService
	moderationService *service.ModerationService
}

func NewModerationHandler(commentService *service.CommentService, moderationService *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		commentService:    commentService,
		moderationService: moderationService,
	}
}

// List 审核队列：按状态、目标、关键词、日期筛选评论
// GET /api/v1/admin/comments
func (h *ModerationHandler) List(c *gin.Context) {
	var query dto.CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	normalizePaging(&query.Page, &query.PageSize)

	items, total, err := h.commentService.List(&query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessPage(c, total, query.Page, query.PageSize, items)
}

// Get 获取单条评论详情
// GET /api/v1/admin/comments/:id
func (h *ModerationHandler) Get(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	item, err := h.commentService.Get(commentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, item)
}

// Moderate 单条审核操作（approve / reject / delete）
// POST /api/v1/admin/comments/:id/action
func (h *ModerationHandler) Moderate(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	var req dto.ModerateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.moderationService.ApplyAction(commentID, req.Action, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// item 为 nil 表示评论已被硬删除
	if item == nil {
		response.SuccessWithMessage(c, "评论已删除", nil)
		return
	}
	response.SuccessWithMessage(c, "操作成功", item)
}

// BatchModerate 批量审核操作
// POST /api/v1/admin/comments/batch
func (h *ModerationHandler) BatchModerate(c *gin.Context) {
	var req dto.BatchModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.moderationService.ApplyBatch(req.CommentIDs, req.Action, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, result)
}

func (h *ModerationHandler) respondError(c *gin.Context, err error) {
	switch service.ErrorKind(err) {
	case service.ErrKindValidation:
		response.ParamError(c, err.Error())
	case service.ErrKindNotFound:
		response.NotFoundError(c, err.Error())
	case service.ErrKindConflict:
		response.ConflictError(c, "")
	default:
		response.ServerError(c, "")
	}
}
