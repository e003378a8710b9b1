package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/pkg/jwt"
	"github.com/Lio2412/recipe_go_server/internal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "test-secret-key-for-middleware"

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func TestAuth_Success(t *testing.T) {
	router := gin.New()
	router.Use(Auth(testJWTSecret))
	router.GET("/test", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, int64(123), userID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	token, err := jwt.GenerateToken(123, model.RoleEditor, testJWTSecret, 24)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	router := gin.New()
	router.Use(Auth(testJWTSecret))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	router := gin.New()
	router.Use(Auth(testJWTSecret))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(Auth(testJWTSecret))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.here")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	router := gin.New()
	router.Use(Auth(testJWTSecret), AdminOnly())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	token, err := jwt.GenerateToken(1, model.RoleAdmin, testJWTSecret, 24)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestAdminOnly_RejectsEditor(t *testing.T) {
	router := gin.New()
	router.Use(Auth(testJWTSecret), AdminOnly())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	token, err := jwt.GenerateToken(1, model.RoleEditor, testJWTSecret, 24)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodePermissionDenied, resp.Code)
}
