package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/pkg/response"
	"github.com/Lio2412/recipe_go_server/internal/service"
)

type CommentHandler struct {
	commentService    *service.CommentService
	moderationService *service.ModerationService
}

func NewCommentHandler(commentService *service.CommentService, moderationService *service.ModerationService) *CommentHandler {
	return &CommentHandler{
		commentService:    commentService,
		moderationService: moderationService,
	}
}

// Create 发表评论
// POST /api/v1/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(&req)
	if err != nil {
		switch err {
		case service.ErrTargetNotFound, service.ErrParentNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrInvalidTargetType, service.ErrParentMismatch, service.ErrReplyTooDeep:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "评论已提交，待审核", comment)
}

// Flag 举报评论
// POST /api/v1/comments/:id/flag
func (h *CommentHandler) Flag(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	var req dto.FlagCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.moderationService.RecordFlag(commentID, req.Reason)
	if err != nil {
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
		return
	}

	response.SuccessWithMessage(c, "举报成功", comment)
}

// List 获取已批准的评论列表（公开）
// GET /api/v1/comments?target_type=recipe&target_id=1
func (h *CommentHandler) List(c *gin.Context) {
	var query dto.CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	// 公开列表只展示已批准的评论
	query.Status = model.CommentStatusApproved
	normalizePaging(&query.Page, &query.PageSize)

	items, total, err := h.commentService.List(&query)
	if err != nil {
		switch service.ErrorKind(err) {
		case service.ErrKindValidation:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessPage(c, total, query.Page, query.PageSize, items)
}

// Replies 获取直接回复列表
// GET /api/v1/comments/:id/replies
func (h *CommentHandler) Replies(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	items, err := h.commentService.GetReplies(commentID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

func normalizePaging(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 || *pageSize > 100 {
		*pageSize = 20
	}
}
