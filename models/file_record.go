package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MainImage = "Gambar"
	MainVideo = "Video"
)

// FileRecord is the metadata document written for every uploaded blob.
type FileRecord struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id" firestore:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name" firestore:"name"`
	StoragePath  string    `gorm:"type:varchar(1000);not null" json:"storage_path" firestore:"storage_path"`
	Main         string    `gorm:"type:varchar(20);not null;index" json:"main" firestore:"main"`
	Folder       string    `gorm:"type:varchar(64);not null" json:"folder" firestore:"folder"`
	ReadableDate string    `gorm:"type:varchar(64)" json:"readable_date" firestore:"readable_date"`
	ContentType  string    `gorm:"type:varchar(100)" json:"content_type" firestore:"content_type"`
	UploadedAt   time.Time `gorm:"autoCreateTime;index" json:"uploaded_at" firestore:"uploaded_at"`

	URL string `gorm:"-" json:"url,omitempty" firestore:"-"`
}

func (FileRecord) TableName() string {
	return "files"
}

func (r *FileRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
