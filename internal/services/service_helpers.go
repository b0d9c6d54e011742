package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edigitalnetwork/course-service/internal/events"
	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

// publishEvent sends a domain event. Publishing failures are logged and never fail the request.
func publishEvent(ctx context.Context, logger *slog.Logger, publisher events.EventPublisher, eventType string, data interface{}) {
	if publisher == nil {
		return
	}

	event := events.NewEvent(eventType, data)
	if err := publisher.PublishEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "event_type", eventType, "event_id", event.ID, "error", err)
	}
}

// uniqueIDs drops zero and repeated ids and keeps the first-seen order
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// resolveCourses loads every id or fails with ErrCourseNotFound naming the missing ones.
// Repeated ids are collapsed.
func resolveCourses(ctx context.Context, courses repositories.CourseRepository, ids []uint) ([]*models.Course, error) {
	ids = uniqueIDs(ids)
	found, err := courses.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	if len(found) != len(ids) {
		return nil, fmt.Errorf("%w: %v", ErrCourseNotFound, missingIDs(ids, found))
	}
	return found, nil
}

func missingIDs(ids []uint, courses []*models.Course) []uint {
	found := make(map[uint]struct{}, len(courses))
	for _, c := range courses {
		found[c.ID] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// ===== PAGINATION HELPERS =====

func pageOf(offset, limit int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}

func totalPages(total int64, size int) int {
	if size <= 0 || total == 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}
