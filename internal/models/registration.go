package models

import (
	"time"
)

// TakenCourse is a student's registration in a course.
type TakenCourse struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_taken_student_course"`
	CourseID  uint `json:"course_id" gorm:"not null;uniqueIndex:idx_taken_student_course"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Student *Student `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course   `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (TakenCourse) TableName() string {
	return "taken_courses"
}
