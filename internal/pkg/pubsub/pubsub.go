package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelModeration = "moderation_events"
)

// 事件类型
const (
	EventCommentCreated   = "comment_created"
	EventCommentFlagged   = "comment_flagged"
	EventCommentModerated = "comment_moderated"
)

// CommentEvent 评论审核事件
type CommentEvent struct {
	Type       string `json:"type"`
	CommentID  int64  `json:"comment_id"`
	TargetType string `json:"target_type"`
	TargetID   int64  `json:"target_id"`
	Status     string `json:"status"`
	Action     string `json:"action,omitempty"`
	FlagCount  int    `json:"flag_count,omitempty"`
	Deleted    bool   `json:"deleted,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishCommentEvent 发布评论事件
func (p *Publisher) PublishCommentEvent(ctx context.Context, event *CommentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal comment event: %w", err)
	}

	return p.client.Publish(ctx, ChannelModeration, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅评论事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*CommentEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelModeration)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event CommentEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
