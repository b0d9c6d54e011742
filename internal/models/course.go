package models

import (
	"time"
)

type SemesterTag string

const (
	SemesterFirst  SemesterTag = "First"
	SemesterSecond SemesterTag = "Second"
)

func (s SemesterTag) IsValid() bool {
	return s == SemesterFirst || s == SemesterSecond
}

type Course struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Slug       string      `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Title      string      `json:"title" gorm:"not null;size:200"`
	Code       string      `json:"code" gorm:"uniqueIndex;not null;size:20"`
	Credit     int         `json:"credit" gorm:"not null;default:0"`
	Summary    *string     `json:"summary" gorm:"type:text"`
	Level      string      `json:"level" gorm:"not null;size:25;index"`
	Year       int         `json:"year" gorm:"not null;default:1"`
	Semester   SemesterTag `json:"semester" gorm:"not null;size:10;index"`
	IsElective bool        `json:"is_elective" gorm:"default:false"`
	ProgramID  uint        `json:"program_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Program     *Program           `json:"program,omitempty" gorm:"foreignKey:ProgramID"`
	Allocations []CourseAllocation `json:"-" gorm:"many2many:course_allocation_courses"`
}

func (Course) TableName() string {
	return "courses"
}
