package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lio2412/recipe_go_server/internal/api/middleware"
	"github.com/Lio2412/recipe_go_server/internal/pkg/response"
	"github.com/Lio2412/recipe_go_server/internal/service"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// Upload 上传媒体文件
// POST /api/v1/admin/media
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "请选择要上传的文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	media, err := h.mediaService.Upload(userID, fileHeader.Filename, data)
	if err != nil {
		switch err {
		case service.ErrFileTooLarge, service.ErrFileTypeNotAllow:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "上传成功", media)
}

// List 媒体库列表
// GET /api/v1/admin/media
func (h *MediaHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	normalizePaging(&page, &pageSize)

	items, total, err := h.mediaService.List(page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Delete 删除媒体文件
// DELETE /api/v1/admin/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的媒体ID")
		return
	}

	if err := h.mediaService.Delete(id); err != nil {
		switch err {
		case service.ErrMediaNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
