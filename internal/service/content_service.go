package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/model/dto"
	"github.com/Lio2412/recipe_go_server/internal/repository"
)

var (
	ErrRecipeNotFound    = errors.New("菜谱不存在")
	ErrArticleNotFound   = errors.New("文章不存在")
	ErrPublishAtRequired = errors.New("定时发布必须指定发布时间")
	ErrInvalidPublishAt  = errors.New("发布时间格式无效")
)

type ContentService struct {
	recipeRepo  *repository.RecipeRepository
	articleRepo *repository.ArticleRepository
}

func NewContentService(recipeRepo *repository.RecipeRepository, articleRepo *repository.ArticleRepository) *ContentService {
	return &ContentService{
		recipeRepo:  recipeRepo,
		articleRepo: articleRepo,
	}
}

// CreateRecipe 创建菜谱
func (s *ContentService) CreateRecipe(authorID int64, req *dto.SaveContentRequest) (*model.Recipe, error) {
	status, publishAt, publishedAt, err := resolvePublishState(req)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Content:     req.Content,
		CoverURL:    req.CoverURL,
		Tags:        model.StringArray(req.Tags),
		Status:      status,
		PublishAt:   publishAt,
		PublishedAt: publishedAt,
	}

	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// UpdateRecipe 更新菜谱
func (s *ContentService) UpdateRecipe(id int64, req *dto.SaveContentRequest) (*model.Recipe, error) {
	if _, err := s.recipeRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	fields, err := contentFields(req)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Update(id, fields); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByID(id)
}

// GetRecipe 获取菜谱
func (s *ContentService) GetRecipe(id int64) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// ListRecipes 分页查询菜谱
func (s *ContentService) ListRecipes(query *dto.ContentListQuery) ([]*model.Recipe, int64, error) {
	return s.recipeRepo.List(query.Status, query.Search, query.Page, query.PageSize)
}

// DeleteRecipe 删除菜谱
func (s *ContentService) DeleteRecipe(id int64) error {
	if _, err := s.recipeRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return s.recipeRepo.Delete(id)
}

// CreateArticle 创建文章
func (s *ContentService) CreateArticle(authorID int64, req *dto.SaveContentRequest) (*model.Article, error) {
	status, publishAt, publishedAt, err := resolvePublishState(req)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		AuthorID:    authorID,
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Content:     req.Content,
		CoverURL:    req.CoverURL,
		Tags:        model.StringArray(req.Tags),
		Status:      status,
		PublishAt:   publishAt,
		PublishedAt: publishedAt,
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	return article, nil
}

// UpdateArticle 更新文章
func (s *ContentService) UpdateArticle(id int64, req *dto.SaveContentRequest) (*model.Article, error) {
	if _, err := s.articleRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	fields, err := contentFields(req)
	if err != nil {
		return nil, err
	}
	if err := s.articleRepo.Update(id, fields); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

// GetArticle 获取文章
func (s *ContentService) GetArticle(id int64) (*model.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// ListArticles 分页查询文章
func (s *ContentService) ListArticles(query *dto.ContentListQuery) ([]*model.Article, int64, error) {
	return s.articleRepo.List(query.Status, query.Search, query.Page, query.PageSize)
}

// DeleteArticle 删除文章
func (s *ContentService) DeleteArticle(id int64) error {
	if _, err := s.articleRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	return s.articleRepo.Delete(id)
}

// PublishDue 发布所有到期的定时内容，返回发布数量。由 cron 定时调用
func (s *ContentService) PublishDue(now time.Time) int {
	published := 0

	recipes, err := s.recipeRepo.ListDueScheduled(now)
	if err != nil {
		log.Printf("Failed to list due scheduled recipes: %v", err)
	}
	for _, recipe := range recipes {
		fields := map[string]interface{}{
			"status":       model.ContentStatusPublished,
			"published_at": now,
		}
		if err := s.recipeRepo.Update(recipe.ID, fields); err != nil {
			log.Printf("Failed to publish recipe %d: %v", recipe.ID, err)
			continue
		}
		published++
	}

	articles, err := s.articleRepo.ListDueScheduled(now)
	if err != nil {
		log.Printf("Failed to list due scheduled articles: %v", err)
	}
	for _, article := range articles {
		fields := map[string]interface{}{
			"status":       model.ContentStatusPublished,
			"published_at": now,
		}
		if err := s.articleRepo.Update(article.ID, fields); err != nil {
			log.Printf("Failed to publish article %d: %v", article.ID, err)
			continue
		}
		published++
	}

	return published
}

func resolvePublishState(req *dto.SaveContentRequest) (status string, publishAt, publishedAt *time.Time, err error) {
	status = req.Status
	if status == "" {
		status = model.ContentStatusDraft
	}

	switch status {
	case model.ContentStatusScheduled:
		if req.PublishAt == "" {
			return "", nil, nil, ErrPublishAtRequired
		}
		at, parseErr := time.Parse(time.RFC3339, req.PublishAt)
		if parseErr != nil {
			return "", nil, nil, ErrInvalidPublishAt
		}
		publishAt = &at
	case model.ContentStatusPublished:
		now := time.Now()
		publishedAt = &now
	}

	return status, publishAt, publishedAt, nil
}

func contentFields(req *dto.SaveContentRequest) (map[string]interface{}, error) {
	status, publishAt, publishedAt, err := resolvePublishState(req)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":     req.Title,
		"slug":      req.Slug,
		"summary":   req.Summary,
		"content":   req.Content,
		"cover_url": req.CoverURL,
		"tags":      model.StringArray(req.Tags),
		"status":    status,
	}
	if publishAt != nil {
		fields["publish_at"] = publishAt
	}
	if publishedAt != nil {
		fields["published_at"] = publishedAt
	}
	return fields, nil
}
