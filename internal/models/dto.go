package models

import "time"

// ===== CATALOG SUMMARY DTOs =====

type CourseSummary struct {
	ID         uint        `json:"id"`
	Slug       string      `json:"slug"`
	Title      string      `json:"title"`
	Code       string      `json:"code"`
	Credit     int         `json:"credit"`
	Level      string      `json:"level"`
	Year       int         `json:"year"`
	Semester   SemesterTag `json:"semester"`
	IsElective bool        `json:"is_elective"`
}

func NewCourseSummary(c *Course) CourseSummary {
	return CourseSummary{
		ID:         c.ID,
		Slug:       c.Slug,
		Title:      c.Title,
		Code:       c.Code,
		Credit:     c.Credit,
		Level:      c.Level,
		Year:       c.Year,
		Semester:   c.Semester,
		IsElective: c.IsElective,
	}
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
