package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Lio2412/recipe_go_server/internal/api/middleware"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/pkg/response"
	"github.com/Lio2412/recipe_go_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 后台登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "登录成功", result)
}

// GithubAuth 跳转 GitHub 授权
// GET /api/v1/auth/github
func (h *AuthHandler) GithubAuth(c *gin.Context) {
	url, state, err := h.authService.GithubAuthURL()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"url": url, "state": state})
}

// GithubCallback GitHub 授权回调
// GET /api/v1/auth/github/callback?code=xxx
func (h *AuthHandler) GithubCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.ParamError(c, "缺少授权码")
		return
	}

	result, err := h.authService.GithubLogin(c.Request.Context(), code)
	if err != nil {
		switch err {
		case service.ErrGithubNotBound:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "登录成功", result)
}

// Profile 获取当前用户信息
// GET /api/v1/admin/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.authService.GetProfile(userID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, info)
}
