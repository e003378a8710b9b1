package model

import (
	"time"
)

type Media struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UploaderID int64     `gorm:"not null;index" json:"uploader_id"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	ObjectKey  string    `gorm:"size:500;not null" json:"-"`
	URL        string    `gorm:"size:500;not null" json:"url"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Media) TableName() string {
	return "media"
}
