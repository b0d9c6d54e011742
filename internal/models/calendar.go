package models

import (
	"time"
)

// Session is an academic year such as "2024/2025".
type Session struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Title     string `json:"title" gorm:"uniqueIndex;not null;size:20"`
	IsCurrent bool   `json:"is_current" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

type Semester struct {
	ID                 uint        `json:"id" gorm:"primaryKey"`
	Semester           SemesterTag `json:"semester" gorm:"not null;size:10"`
	IsCurrent          bool        `json:"is_current" gorm:"default:false;index"`
	SessionID          *uint       `json:"session_id" gorm:"index"`
	NextSemesterBegins *time.Time  `json:"next_semester_begins"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Session *Session `json:"session,omitempty" gorm:"foreignKey:SessionID"`
}

func (Semester) TableName() string {
	return "semesters"
}
