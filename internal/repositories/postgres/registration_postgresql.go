package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) repositories.RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create relies on the (student_id, course_id) unique index: rows that already exist are
// skipped by ON CONFLICT DO NOTHING, so concurrent submissions cannot create duplicates.
func (r *registrationRepository) Create(ctx context.Context, studentID uint, courseIDs []uint) ([]uint, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	existing, err := r.existingCourseIDs(ctx, studentID, courseIDs)
	if err != nil {
		return nil, err
	}

	inserted := make([]uint, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		if existing[courseID] {
			continue
		}

		row := models.TakenCourse{StudentID: studentID, CourseID: courseID}
		result := r.db.WithContext(ctx).
			Omit("Student", "Course").
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
				DoNothing: true,
			}).
			Create(&row)
		if result.Error != nil {
			return nil, handleDBError(result.Error, "create taken course")
		}
		// Zero rows means a concurrent request registered the course first
		if result.RowsAffected > 0 {
			inserted = append(inserted, courseID)
		}
	}

	return inserted, nil
}

func (r *registrationRepository) Delete(ctx context.Context, studentID uint, courseIDs []uint) ([]uint, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	var removed []models.TakenCourse
	if err := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "course_id"}}}).
		Where("student_id = ? AND course_id IN ?", studentID, courseIDs).
		Delete(&removed).Error; err != nil {
		return nil, handleDBError(err, "delete taken courses")
	}

	ids := make([]uint, 0, len(removed))
	for _, row := range removed {
		ids = append(ids, row.CourseID)
	}
	return ids, nil
}

func (r *registrationRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.TakenCourse, error) {
	var taken []*models.TakenCourse
	if err := r.db.WithContext(ctx).
		Joins("Course").
		Where("taken_courses.student_id = ?", studentID).
		Order(`"Course".year ASC, "Course".code ASC`).
		Find(&taken).Error; err != nil {
		return nil, handleDBError(err, "list taken courses")
	}
	return taken, nil
}

func (r *registrationRepository) CourseIDsByStudent(ctx context.Context, studentID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.TakenCourse{}).
		Where("student_id = ?", studentID).
		Pluck("course_id", &ids).Error; err != nil {
		return nil, handleDBError(err, "list taken course ids")
	}
	return ids, nil
}

func (r *registrationRepository) existingCourseIDs(ctx context.Context, studentID uint, courseIDs []uint) (map[uint]bool, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.TakenCourse{}).
		Where("student_id = ? AND course_id IN ?", studentID, courseIDs).
		Pluck("course_id", &ids).Error; err != nil {
		return nil, handleDBError(err, "check taken courses")
	}

	existing := make(map[uint]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return existing, nil
}
