package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
)

// TestUser 创建测试后台用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", time.Now().UnixNano()%100000),
		Email:        &email,
		PasswordHash: &passwordHash,
		Role:         model.RoleEditor,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// TestRecipe 创建测试菜谱
func TestRecipe(t *testing.T, db *gorm.DB, authorID int64, opts ...func(*model.Recipe)) *model.Recipe {
	t.Helper()

	nano := time.Now().UnixNano()
	now := time.Now()
	recipe := &model.Recipe{
		AuthorID:    authorID,
		Title:       fmt.Sprintf("Test Recipe %d", nano%100000),
		Slug:        fmt.Sprintf("test-recipe-%d", nano),
		Content:     "做法内容",
		Status:      model.ContentStatusPublished,
		PublishedAt: &now,
	}

	for _, opt := range opts {
		opt(recipe)
	}

	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("Failed to create test recipe: %v", err)
	}

	return recipe
}

// WithRecipeStatus 设置菜谱发布状态
func WithRecipeStatus(status string) func(*model.Recipe) {
	return func(r *model.Recipe) {
		r.Status = status
		if status != model.ContentStatusPublished {
			r.PublishedAt = nil
		}
	}
}

// WithRecipePublishAt 设置菜谱定时发布时间
func WithRecipePublishAt(at time.Time) func(*model.Recipe) {
	return func(r *model.Recipe) {
		r.PublishAt = &at
	}
}

// TestArticle 创建测试文章
func TestArticle(t *testing.T, db *gorm.DB, authorID int64, opts ...func(*model.Article)) *model.Article {
	t.Helper()

	nano := time.Now().UnixNano()
	now := time.Now()
	article := &model.Article{
		AuthorID:    authorID,
		Title:       fmt.Sprintf("Test Article %d", nano%100000),
		Slug:        fmt.Sprintf("test-article-%d", nano),
		Content:     "文章内容",
		Status:      model.ContentStatusPublished,
		PublishedAt: &now,
	}

	for _, opt := range opts {
		opt(article)
	}

	if err := db.Create(article).Error; err != nil {
		t.Fatalf("Failed to create test article: %v", err)
	}

	return article
}

// WithArticleStatus 设置文章发布状态
func WithArticleStatus(status string) func(*model.Article) {
	return func(a *model.Article) {
		a.Status = status
		if status != model.ContentStatusPublished {
			a.PublishedAt = nil
		}
	}
}

// TestComment 创建测试评论
func TestComment(t *testing.T, db *gorm.DB, targetType string, targetID int64, opts ...func(*model.Comment)) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		TargetType:  targetType,
		TargetID:    targetID,
		AuthorName:  "访客",
		AuthorEmail: "visitor@example.com",
		Content:     "写得真好",
		Status:      model.CommentStatusPending,
	}

	for _, opt := range opts {
		opt(comment)
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return comment
}

// TestReply 创建测试回复
func TestReply(t *testing.T, db *gorm.DB, parent *model.Comment, opts ...func(*model.Comment)) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		TargetType:  parent.TargetType,
		TargetID:    parent.TargetID,
		ParentID:    &parent.ID,
		AuthorName:  "访客",
		AuthorEmail: "visitor@example.com",
		Content:     "同感",
		Status:      model.CommentStatusPending,
	}

	for _, opt := range opts {
		opt(comment)
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test reply: %v", err)
	}

	return comment
}

// WithCommentStatus 设置评论状态
func WithCommentStatus(status string) func(*model.Comment) {
	return func(c *model.Comment) {
		c.Status = status
	}
}

// WithCommentContent 设置评论内容
func WithCommentContent(content string) func(*model.Comment) {
	return func(c *model.Comment) {
		c.Content = content
	}
}

// WithCommentAuthor 设置评论作者
func WithCommentAuthor(name, email string) func(*model.Comment) {
	return func(c *model.Comment) {
		c.AuthorName = name
		c.AuthorEmail = email
	}
}

// WithFlags 设置举报次数与理由
func WithFlags(count int, reasons ...string) func(*model.Comment) {
	return func(c *model.Comment) {
		c.FlagCount = count
		c.FlagReasons = model.StringArray(reasons)
	}
}
