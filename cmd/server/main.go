package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Lio2412/recipe_go_server/config"
	"github.com/Lio2412/recipe_go_server/internal/api"
	"github.com/Lio2412/recipe_go_server/internal/api/handler"
	"github.com/Lio2412/recipe_go_server/internal/database"
	"github.com/Lio2412/recipe_go_server/internal/pkg/cron"
	"github.com/Lio2412/recipe_go_server/internal/pkg/email"
	"github.com/Lio2412/recipe_go_server/internal/pkg/oss"
	"github.com/Lio2412/recipe_go_server/internal/pkg/pubsub"
	"github.com/Lio2412/recipe_go_server/internal/pkg/ws"
	"github.com/Lio2412/recipe_go_server/internal/repository"
	"github.com/Lio2412/recipe_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS
	ossClient, err := oss.NewClient(&cfg.OSS)
	if err != nil {
		log.Fatalf("Failed to init oss client: %v", err)
	}

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	// 初始化 pubsub / 邮件
	publisher := pubsub.NewPublisher(rdb)
	mailer := email.NewService(&cfg.Email)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg)
	contentService := service.NewContentService(recipeRepo, articleRepo)
	commentService := service.NewCommentService(commentRepo, recipeRepo, articleRepo, publisher)
	moderationService := service.NewModerationService(commentRepo, publisher, mailer)
	mediaService := service.NewMediaService(mediaRepo, ossClient, &cfg.Upload)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	commentHandler := handler.NewCommentHandler(commentService, moderationService)
	moderationHandler := handler.NewModerationHandler(commentService, moderationService)
	contentHandler := handler.NewContentHandler(contentService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 订阅审核事件，推送到后台实时通道
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(event *pubsub.CommentEvent) {
			if err := wsHub.Broadcast(&ws.Message{Type: event.Type, Data: event}); err != nil {
				log.Printf("Failed to broadcast moderation event: %v", err)
			}
		})
		if err != nil {
			log.Printf("Moderation event subscriber stopped: %v", err)
		}
	}()

	// 启动定时发布
	cronService := cron.NewService(contentService)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		commentHandler,
		moderationHandler,
		contentHandler,
		mediaHandler,
		websocketHandler,
		rdb,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
