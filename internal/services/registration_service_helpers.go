package services

import (
	"github.com/edigitalnetwork/course-service/internal/models"
)

// creditSummary holds the totals shown on the registration form
type creditSummary struct {
	firstSemester  int
	secondSemester int
	registered     int
}

// summarizeCredits sums the eligible listing per semester tag and the taken courses overall
func summarizeCredits(eligible []*models.Course, taken []*models.TakenCourse) creditSummary {
	var summary creditSummary

	for _, course := range eligible {
		switch course.Semester {
		case models.SemesterFirst:
			summary.firstSemester += course.Credit
		case models.SemesterSecond:
			summary.secondSemester += course.Credit
		}
	}

	for _, tc := range taken {
		summary.registered += tc.Course.Credit
	}

	return summary
}

// splitRegistered partitions submitted ids into newly inserted and skipped ones, keeping submission order
func splitRegistered(submitted, inserted []uint) (registered, skipped []uint) {
	isNew := make(map[uint]bool, len(inserted))
	for _, id := range inserted {
		isNew[id] = true
	}

	registered = make([]uint, 0, len(inserted))
	skipped = make([]uint, 0, len(submitted)-len(inserted))
	for _, id := range submitted {
		if isNew[id] {
			registered = append(registered, id)
		} else {
			skipped = append(skipped, id)
		}
	}
	return registered, skipped
}

func courseSummaries(courses []*models.Course) []models.CourseSummary {
	result := make([]models.CourseSummary, 0, len(courses))
	for _, c := range courses {
		result = append(result, models.NewCourseSummary(c))
	}
	return result
}

func takenSummaries(taken []*models.TakenCourse) []models.CourseSummary {
	result := make([]models.CourseSummary, 0, len(taken))
	for _, tc := range taken {
		result = append(result, models.NewCourseSummary(&tc.Course))
	}
	return result
}

func takenCourseIDs(taken []*models.TakenCourse) []uint {
	ids := make([]uint, 0, len(taken))
	for _, tc := range taken {
		ids = append(ids, tc.CourseID)
	}
	return ids
}
