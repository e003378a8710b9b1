package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/config"
	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/pkg/jwt"
	"github.com/Lio2412/recipe_go_server/internal/pkg/oauth"
	"github.com/Lio2412/recipe_go_server/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrGithubNotBound     = errors.New("该 GitHub 账号未绑定后台用户")
)

type AuthService struct {
	userRepo    *repository.UserRepository
	cfg         *config.Config
	githubOAuth *oauth.GithubOAuth
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		githubOAuth: oauth.NewGithubOAuth(
			cfg.OAuth.Github.ClientID,
			cfg.OAuth.Github.ClientSecret,
			cfg.OAuth.Github.RedirectURI,
		),
	}
}

// Login 后台用户名密码登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GithubAuthURL 生成 GitHub 授权跳转地址
func (s *AuthService) GithubAuthURL() (url, state string, err error) {
	state, err = generateRandomState(16)
	if err != nil {
		return "", "", err
	}
	return s.githubOAuth.GetAuthURL(state), state, nil
}

// GithubLogin 用授权码完成 GitHub 登录，仅允许已绑定的后台用户
func (s *AuthService) GithubLogin(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.githubOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	ghUser, err := s.githubOAuth.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByGithubID(ghUser.IDString())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGithubNotBound
		}
		return nil, err
	}

	// 同步头像
	if ghUser.AvatarURL != "" && ghUser.AvatarURL != user.AvatarURL {
		_ = s.userRepo.Update(user.ID, map[string]interface{}{"avatar_url": ghUser.AvatarURL})
		user.AvatarURL = ghUser.AvatarURL
	}

	return s.issueToken(user)
}

// GetProfile 获取当前用户信息
func (s *AuthService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return newUserInfo(user), nil
}

func (s *AuthService) issueToken(user *model.User) (*dto.LoginResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  newUserInfo(user),
	}, nil
}

func newUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
	}
	if user.Email != nil {
		info.Email = *user.Email
	}
	return info
}

func generateRandomState(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
