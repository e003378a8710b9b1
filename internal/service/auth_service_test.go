package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/config"
	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/pkg/jwt"
	"github.com/Lio2412/recipe_go_server/internal/repository"
	"github.com/Lio2412/recipe_go_server/internal/testutil"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-for-testing",
			ExpireHours: 24,
		},
		OAuth: config.OAuthConfig{
			Github: config.GithubOAuthConfig{
				ClientID:     "test-client-id",
				ClientSecret: "test-client-secret",
				RedirectURI:  "http://localhost:8080/callback",
			},
		},
	}

	service := NewAuthService(userRepo, cfg)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func createLoginUser(t *testing.T, db *gorm.DB, username, password, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	return testutil.TestUser(t, db,
		testutil.WithUsername(username),
		testutil.WithRole(role),
		func(u *model.User) { u.PasswordHash = &hashStr },
	)
}

func TestAuthService_Login_Success(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	createLoginUser(t, db, "linda", "password123", model.RoleAdmin)

	resp, err := service.Login(&dto.LoginRequest{
		Username: "linda",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "linda", resp.User.Username)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	// Token 携带用户 ID 和角色
	claims, err := jwt.ParseToken(resp.Token, "test-secret-key-for-testing")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	createLoginUser(t, db, "linda", "password123", model.RoleEditor)

	_, err := service.Login(&dto.LoginRequest{
		Username: "linda",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Login(&dto.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_GithubOnlyUser(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	// 仅绑定 GitHub、没有密码的用户不能走密码登录
	ghID := "12345"
	testutil.TestUser(t, db,
		testutil.WithUsername("ghuser"),
		func(u *model.User) {
			u.PasswordHash = nil
			u.GithubID = &ghID
		},
	)

	_, err := service.Login(&dto.LoginRequest{
		Username: "ghuser",
		Password: "anything",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GithubAuthURL(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	url, state, err := service.GithubAuthURL()
	require.NoError(t, err)
	assert.NotEmpty(t, state)
	assert.Contains(t, url, "test-client-id")
	assert.Contains(t, url, state)
}

func TestAuthService_GetProfile(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithUsername("linda"))

	info, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "linda", info.Username)

	_, err = service.GetProfile(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
