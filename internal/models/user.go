package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent  UserRole = "student"
	RoleLecturer UserRole = "lecturer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"index;size:255"`
	Role     UserRole `json:"role" gorm:"not null;size:20;default:student"`

	// Profile info
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsLecturer() bool {
	return u.Role == RoleLecturer
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Student is the academic profile of a user with the student role.
// Department is the program the student is enrolled in.
type Student struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	UserID       string `json:"user_id" gorm:"uniqueIndex;not null;size:255"`
	Level        string `json:"level" gorm:"not null;size:25;index"`
	DepartmentID uint   `json:"department_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User       User     `json:"user" gorm:"foreignKey:UserID"`
	Department *Program `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

func (Student) TableName() string {
	return "students"
}
