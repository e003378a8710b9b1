package model

import (
	"time"
)

type Article struct {
	ID          int64       `gorm:"primaryKey" json:"id"`
	AuthorID    int64       `gorm:"not null;index" json:"author_id"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Slug        string      `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Summary     string      `gorm:"size:500" json:"summary"`
	Content     string      `gorm:"type:text" json:"content"`
	CoverURL    string      `gorm:"size:500" json:"cover_url,omitempty"`
	Tags        StringArray `gorm:"type:json" json:"tags,omitempty"`
	Status      string      `gorm:"size:20;default:draft;index" json:"status"` // draft, scheduled, published
	PublishAt   *time.Time  `gorm:"index" json:"publish_at,omitempty"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// 关联
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}
