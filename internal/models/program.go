package models

import (
	"time"
)

type Program struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Title   string  `json:"title" gorm:"uniqueIndex;not null;size:150"`
	Summary *string `json:"summary" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Courses []Course `json:"courses,omitempty" gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE"`

	// Computed fields
	CourseCount int `json:"course_count" gorm:"->;-:migration"`
}

func (Program) TableName() string {
	return "programs"
}
