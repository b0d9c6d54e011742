package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edigitalnetwork/course-service/internal/models"
)

var courseCodePattern = regexp.MustCompile(`^[A-Za-z]{2,6}\s?[0-9]{2,4}[A-Za-z]?$`)

// BusinessValidator handles catalog and calendar business rules
type BusinessValidator struct {
	validate *validator.Validate
}

func newBusinessValidator(validate *validator.Validate) *BusinessValidator {
	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()
	return bv
}

// Validate validates struct tags for any request
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err, bv.getErrorMessage)
	}
	return nil
}

// ValidateCourseCreate validates a course form, including rules that span several fields
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.IsElective && req.Credit == 0 {
		errors = append(errors, ValidationError{
			Field:   "credit",
			Message: "elective courses must carry credit",
			Value:   req.Credit,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateAllocationTarget checks that courses are allocated to a lecturer account
func (bv *BusinessValidator) ValidateAllocationTarget(user *models.User) ValidationErrors {
	if user.IsLecturer() {
		return nil
	}
	return ValidationErrors{{
		Field:   "lecturer_id",
		Message: "user is not a lecturer",
		Value:   user.ID,
		Rule:    "business_logic",
	}}
}

// ValidateSemesterCreate validates a new semester against its session
func (bv *BusinessValidator) ValidateSemesterCreate(req *SemesterRequest, now time.Time) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.NextSemesterBegins != nil && !req.NextSemesterBegins.After(now) {
		errors = append(errors, ValidationError{
			Field:   "next_semester_begins",
			Message: "must be in the future",
			Value:   req.NextSemesterBegins,
			Rule:    "future_date",
		})
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Course code such as "CSC101" or "MTH 201A"
	bv.validate.RegisterValidation("course_code", func(fl validator.FieldLevel) bool {
		return courseCodePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	bv.validate.RegisterValidation("semester", func(fl validator.FieldLevel) bool {
		return models.SemesterTag(fl.Field().String()).IsValid()
	})

	// Program and course titles (1-200 characters)
	bv.validate.RegisterValidation("catalog_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 200
	})

	// Session title such as "2024/2025"
	bv.validate.RegisterValidation("session_title", func(fl validator.FieldLevel) bool {
		parts := strings.Split(fl.Field().String(), "/")
		if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
			return false
		}
		return parts[0] < parts[1]
	})
}

// getErrorMessage returns user-friendly error messages
func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "course_code":
		return "must look like CSC101"
	case "semester":
		return "must be First or Second"
	case "catalog_title":
		return "must be between 1 and 200 characters"
	case "session_title":
		return "must look like 2024/2025"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
