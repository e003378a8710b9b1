package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lio2412/recipe_go_server/internal/api/middleware"
	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/pkg/response"
	"github.com/Lio2412/recipe_go_server/internal/service"
)

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// CreateRecipe 创建菜谱
// POST /api/v1/admin/recipes
func (h *ContentHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	recipe, err := h.contentService.CreateRecipe(userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", recipe)
}

// UpdateRecipe 更新菜谱
// PUT /api/v1/admin/recipes/:id
func (h *ContentHandler) UpdateRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的菜谱ID")
		return
	}

	var req dto.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	recipe, err := h.contentService.UpdateRecipe(id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", recipe)
}

// GetRecipe 获取菜谱
// GET /api/v1/recipes/:id
func (h *ContentHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的菜谱ID")
		return
	}

	recipe, err := h.contentService.GetRecipe(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, recipe)
}

// ListRecipes 菜谱列表
// GET /api/v1/recipes（公开，仅已发布）
// GET /api/v1/admin/recipes（后台，支持全部状态）
func (h *ContentHandler) ListRecipes(c *gin.Context) {
	query, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	recipes, total, err := h.contentService.ListRecipes(query)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, query.Page, query.PageSize, recipes)
}

// DeleteRecipe 删除菜谱
// DELETE /api/v1/admin/recipes/:id
func (h *ContentHandler) DeleteRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的菜谱ID")
		return
	}

	if err := h.contentService.DeleteRecipe(id); err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// CreateArticle 创建文章
// POST /api/v1/admin/articles
func (h *ContentHandler) CreateArticle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	article, err := h.contentService.CreateArticle(userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", article)
}

// UpdateArticle 更新文章
// PUT /api/v1/admin/articles/:id
func (h *ContentHandler) UpdateArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的文章ID")
		return
	}

	var req dto.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	article, err := h.contentService.UpdateArticle(id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", article)
}

// GetArticle 获取文章
// GET /api/v1/articles/:id
func (h *ContentHandler) GetArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的文章ID")
		return
	}

	article, err := h.contentService.GetArticle(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, article)
}

// ListArticles 文章列表
// GET /api/v1/articles（公开，仅已发布）
// GET /api/v1/admin/articles（后台，支持全部状态）
func (h *ContentHandler) ListArticles(c *gin.Context) {
	query, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	articles, total, err := h.contentService.ListArticles(query)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, query.Page, query.PageSize, articles)
}

// DeleteArticle 删除文章
// DELETE /api/v1/admin/articles/:id
func (h *ContentHandler) DeleteArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的文章ID")
		return
	}

	if err := h.contentService.DeleteArticle(id); err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

func (h *ContentHandler) bindListQuery(c *gin.Context) (*dto.ContentListQuery, bool) {
	var query dto.ContentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, err.Error())
		return nil, false
	}
	normalizePaging(&query.Page, &query.PageSize)

	// 公开路由不经过认证中间件，强制只展示已发布内容
	if _, authed := middleware.GetUserID(c); !authed {
		query.Status = model.ContentStatusPublished
	}
	return &query, true
}

func (h *ContentHandler) respondError(c *gin.Context, err error) {
	switch err {
	case service.ErrRecipeNotFound, service.ErrArticleNotFound:
		response.NotFoundError(c, err.Error())
	case service.ErrPublishAtRequired, service.ErrInvalidPublishAt:
		response.ParamError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
