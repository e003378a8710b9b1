package cron

import (
	"log"
	"time"

	"github.com/Lio2412/recipe_go_server/internal/service"
)

// Service 定时任务：定时内容发布
type Service struct {
	contentService *service.ContentService
	interval       time.Duration
	stopChan       chan struct{}
}

func NewService(contentService *service.ContentService) *Service {
	return &Service{
		contentService: contentService,
		interval:       time.Minute,
		stopChan:       make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runScheduledPublish()
	log.Println("Cron service started (scheduled publish)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runScheduledPublish 每分钟检查一次到期的定时内容
func (s *Service) runScheduledPublish() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			if published := s.contentService.PublishDue(now); published > 0 {
				log.Printf("Scheduled publish: %d item(s) published", published)
			}
		}
	}
}
