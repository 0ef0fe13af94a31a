package model

import "time"

type Image struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:64;index:idx_images_user_created,priority:1" json:"user_id"`
	StoragePath string    `gorm:"size:1024" json:"storage_path"`
	URL         string    `gorm:"size:2048" json:"url"`
	MimeType    string    `gorm:"size:128" json:"mime_type"`
	CreatedAt   time.Time `gorm:"index:idx_images_user_created,priority:2" json:"created_at"`
}

func (Image) TableName() string {
	return "images"
}
