package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// Keys below are relative to the helper prefix

// ProgramKey is a program with its counts
func ProgramKey(id uint) string { return fmt.Sprintf("id:%d", id) }

// ProgramCreditKey is the credit sum of a program's courses
func ProgramCreditKey(id uint) string { return fmt.Sprintf("credit:%d", id) }

// CourseSlugKey is a course detail page
func CourseSlugKey(slug string) string { return "slug:" + slug }

// CurrentSemesterKey is the semester open for registration
const CurrentSemesterKey = "semester:current"

const courseSlugPattern = "slug:*"

// safeInvalidatePattern invalidates a cache pattern and logs failures
func safeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys and logs failures
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateProgramCache drops a program entry and its credit sum
func InvalidateProgramCache(ctx context.Context, cm *CacheManager, programID uint) {
	SafeDelete(ctx, cm.Program, ProgramKey(programID), ProgramCreditKey(programID))
}

// InvalidateCourseCache drops a course entry along with the caches of its program
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, slug string, programID uint) {
	SafeDelete(ctx, cm.Course, CourseSlugKey(slug))
	InvalidateProgramCache(ctx, cm, programID)
}

// InvalidateProgramCourses drops a program together with every cached course page.
// Used when a program delete cascades to its courses.
func InvalidateProgramCourses(ctx context.Context, cm *CacheManager, programID uint) {
	InvalidateProgramCache(ctx, cm, programID)
	safeInvalidatePattern(ctx, cm.Course, courseSlugPattern)
}

// InvalidateCalendarCache drops the cached current semester
func InvalidateCalendarCache(ctx context.Context, cm *CacheManager) {
	SafeDelete(ctx, cm.Calendar, CurrentSemesterKey)
}
