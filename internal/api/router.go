package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Lio2412/recipe_go_server/config"
	"github.com/Lio2412/recipe_go_server/internal/api/handler"
	"github.com/Lio2412/recipe_go_server/internal/api/middleware"
	"github.com/go-redis/redis/v8"
)

type Router struct {
	authHandler       *handler.AuthHandler
	commentHandler    *handler.CommentHandler
	moderationHandler *handler.ModerationHandler
	contentHandler    *handler.ContentHandler
	mediaHandler      *handler.MediaHandler
	websocketHandler  *handler.WebSocketHandler
	rdb               *redis.Client
	cfg               *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	commentHandler *handler.CommentHandler,
	moderationHandler *handler.ModerationHandler,
	contentHandler *handler.ContentHandler,
	mediaHandler *handler.MediaHandler,
	websocketHandler *handler.WebSocketHandler,
	rdb *redis.Client,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:       authHandler,
		commentHandler:    commentHandler,
		moderationHandler: moderationHandler,
		contentHandler:    contentHandler,
		mediaHandler:      mediaHandler,
		websocketHandler:  websocketHandler,
		rdb:               rdb,
		cfg:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 公开接口 - 内容（仅已发布）
		api.GET("/recipes", r.contentHandler.ListRecipes)
		api.GET("/recipes/:id", r.contentHandler.GetRecipe)
		api.GET("/articles", r.contentHandler.ListArticles)
		api.GET("/articles/:id", r.contentHandler.GetArticle)

		// 公开接口 - 评论
		comments := api.Group("/comments")
		{
			comments.POST("", middleware.RateLimit(r.rdb, "comment", r.cfg.RateLimit.CommentPerMinute), r.commentHandler.Create)
			comments.GET("", r.commentHandler.List)
			comments.GET("/:id/replies", r.commentHandler.Replies)
			comments.POST("/:id/flag", middleware.RateLimit(r.rdb, "flag", r.cfg.RateLimit.FlagPerMinute), r.commentHandler.Flag)
		}

		// 后台接口（需要认证）
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			admin.GET("/profile", r.authHandler.Profile)

			// 审核队列（仅管理员可批量操作）
			adminComments := admin.Group("/comments")
			{
				adminComments.GET("", r.moderationHandler.List)
				adminComments.GET("/:id", r.moderationHandler.Get)
				adminComments.POST("/:id/action", r.moderationHandler.Moderate)
				adminComments.POST("/batch", middleware.AdminOnly(), r.moderationHandler.BatchModerate)
			}

			// 内容管理
			recipes := admin.Group("/recipes")
			{
				recipes.POST("", r.contentHandler.CreateRecipe)
				recipes.GET("", r.contentHandler.ListRecipes)
				recipes.GET("/:id", r.contentHandler.GetRecipe)
				recipes.PUT("/:id", r.contentHandler.UpdateRecipe)
				recipes.DELETE("/:id", r.contentHandler.DeleteRecipe)
			}
			articles := admin.Group("/articles")
			{
				articles.POST("", r.contentHandler.CreateArticle)
				articles.GET("", r.contentHandler.ListArticles)
				articles.GET("/:id", r.contentHandler.GetArticle)
				articles.PUT("/:id", r.contentHandler.UpdateArticle)
				articles.DELETE("/:id", r.contentHandler.DeleteArticle)
			}

			// 媒体库
			media := admin.Group("/media")
			{
				media.POST("", r.mediaHandler.Upload)
				media.GET("", r.mediaHandler.List)
				media.DELETE("/:id", r.mediaHandler.Delete)
			}
		}

		// WebSocket（Token 通过 query 传递，不走 Auth 中间件）
		api.GET("/admin/ws", r.websocketHandler.Handle)
	}

	return engine
}
