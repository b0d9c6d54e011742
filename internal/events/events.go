package events

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// Event types double as Kafka topic names
const (
	CourseRegistered = "course.registered"
	CourseDropped    = "course.dropped"
	CourseAllocated  = "course.allocated"
	UploadCreated    = "upload.created"
	UploadDeleted    = "upload.deleted"
)

const (
	eventSource  = "course-service"
	eventVersion = "1.0"
)

// Event is the envelope published for every domain change
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent stamps a payload with a fresh id and the service source
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *Event) error
	Close() error
}

// ===== EVENT PAYLOADS =====

type RegistrationEvent struct {
	StudentID uint   `json:"student_id"`
	UserID    string `json:"user_id"`
	CourseIDs []uint `json:"course_ids"`
	Count     int    `json:"count"`
}

type AllocationEvent struct {
	AllocationID uint   `json:"allocation_id"`
	LecturerID   string `json:"lecturer_id"`
	CourseIDs    []uint `json:"course_ids"`
	Replaced     bool   `json:"replaced"`
}

type UploadEvent struct {
	Kind       string `json:"kind"` // "file" or "video"
	UploadID   uint   `json:"upload_id"`
	CourseID   uint   `json:"course_id"`
	CourseSlug string `json:"course_slug"`
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
}
