package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	fn(c)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSuccess(t *testing.T) {
	w, resp := record(t, func(c *gin.Context) {
		Success(c, gin.H{"key": "value"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestSuccessPage(t *testing.T) {
	_, resp := record(t, func(c *gin.Context) {
		SuccessPage(c, 42, 2, 10, []string{"a", "b"})
	})

	assert.Equal(t, CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), data["total"])
	assert.Equal(t, float64(2), data["page"])
	assert.Equal(t, float64(10), data["page_size"])
}

func TestError_DefaultMessages(t *testing.T) {
	cases := []struct {
		name string
		fn   func(c *gin.Context)
		code int
	}{
		{"param", func(c *gin.Context) { ParamError(c, "") }, CodeParamError},
		{"auth", func(c *gin.Context) { AuthError(c, "") }, CodeAuthFailed},
		{"permission", func(c *gin.Context) { PermissionError(c, "") }, CodePermissionDenied},
		{"not found", func(c *gin.Context) { NotFoundError(c, "") }, CodeResourceNotFound},
		{"rate limited", func(c *gin.Context) { RateLimitError(c, "") }, CodeRateLimited},
		{"conflict", func(c *gin.Context) { ConflictError(c, "") }, CodeConflict},
		{"server", func(c *gin.Context) { ServerError(c, "") }, CodeServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := record(t, tc.fn)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.code, resp.Code)
			assert.Equal(t, codeMessages[tc.code], resp.Message)
		})
	}
}

func TestError_CustomMessage(t *testing.T) {
	_, resp := record(t, func(c *gin.Context) {
		NotFoundError(c, "评论不存在")
	})

	assert.Equal(t, CodeResourceNotFound, resp.Code)
	assert.Equal(t, "评论不存在", resp.Message)
}
