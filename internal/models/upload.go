package models

import (
	"time"

	"gorm.io/datatypes"
)

type Upload struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null;size:100"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	FileName    string         `json:"file_name" gorm:"size:255"`
	FileURL     string         `json:"file_url" gorm:"not null;size:500"`
	PublicID    string         `json:"-" gorm:"size:255"`
	ContentType string         `json:"content_type" gorm:"size:100"`
	Size        int64          `json:"size"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Course *Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Upload) TableName() string {
	return "uploads"
}

type UploadVideo struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null;size:100"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Summary     *string        `json:"summary" gorm:"type:text"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	VideoURL    string         `json:"video_url" gorm:"not null;size:500"`
	PublicID    string         `json:"-" gorm:"size:255"`
	ContentType string         `json:"content_type" gorm:"size:100"`
	Size        int64          `json:"size"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Course *Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (UploadVideo) TableName() string {
	return "upload_videos"
}
