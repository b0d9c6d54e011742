package models

import (
	"time"
)

// CourseAllocation holds the set of courses a lecturer teaches.
// There is at most one allocation per lecturer.
type CourseAllocation struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	LecturerID string `json:"lecturer_id" gorm:"uniqueIndex;not null;size:255"`
	SessionID  *uint  `json:"session_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Lecturer User     `json:"lecturer" gorm:"foreignKey:LecturerID"`
	Courses  []Course `json:"courses" gorm:"many2many:course_allocation_courses;constraint:OnDelete:CASCADE"`
	Session  *Session `json:"session,omitempty" gorm:"foreignKey:SessionID"`
}

func (CourseAllocation) TableName() string {
	return "course_allocations"
}
