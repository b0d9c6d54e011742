package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

const registrationSheet = "Registration"

// courseImportColumns are the recognised header cells of a course sheet
var courseImportColumns = []string{"title", "code", "credit", "level", "year", "semester", "summary", "is_elective"}

type importExportService struct {
	repo    repositories.Repository
	logger  *slog.Logger
	courses CourseService
}

// NewImportExportService builds the spreadsheet service. Imported rows go through courses so
// they are validated and slugged exactly like single course creation.
func NewImportExportService(repo repositories.Repository, logger *slog.Logger, courses CourseService) ImportExportService {
	return &importExportService{
		repo:    repo,
		logger:  logger,
		courses: courses,
	}
}

// ImportCourses creates one course per data row. Rows that fail validation or clash with an
// existing code are reported and skipped. Any other failure stops the import.
func (s *importExportService) ImportCourses(ctx context.Context, programID uint, r io.Reader, userID string) (*ImportResult, error) {
	s.logger.Info("Importing courses", "program_id", programID, "user_id", userID)

	if _, err := s.repo.Program().GetByID(ctx, programID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidSpreadsheet)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrInvalidSpreadsheet, sheetName)
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Created: []models.CourseSummary{}, Errors: []ImportRowError{}}
	for i, row := range rows[1:] {
		rowNumber := i + 2
		if blankRow(row) {
			continue
		}

		req, err := parseCourseRow(row, columns)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNumber, Message: err.Error()})
			continue
		}

		course, err := s.courses.Create(ctx, programID, req, userID)
		if err != nil {
			if isRowError(err) {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNumber, Message: err.Error()})
				continue
			}
			return nil, fmt.Errorf("import stopped at row %d: %w", rowNumber, err)
		}
		result.Created = append(result.Created, models.NewCourseSummary(course))
	}

	s.logger.Info("Courses imported", "program_id", programID, "created", len(result.Created), "rejected", len(result.Errors))
	return result, nil
}

// ExportRegistrationSlip writes the student's details and registered courses with a credit total
func (s *importExportService) ExportRegistrationSlip(ctx context.Context, userID string, w io.Writer) error {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to get student: %w", err)
	}

	taken, err := s.repo.Registration().ListByStudent(ctx, student.ID)
	if err != nil {
		return fmt.Errorf("failed to list taken courses: %w", err)
	}

	semester := ""
	if current, err := s.repo.Calendar().GetCurrentSemester(ctx); err == nil {
		semester = string(current.Semester)
		if current.Session != nil {
			semester += " semester, " + current.Session.Title
		}
	} else if !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to get current semester: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), registrationSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	department := ""
	if student.Department != nil {
		department = student.Department.Title
	}

	details := [][]interface{}{
		{"Name", student.User.FullName},
		{"Level", student.Level},
		{"Department", department},
		{"Semester", semester},
	}
	for i, row := range details {
		if err := f.SetSheetRow(registrationSheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("failed to write slip header: %w", err)
		}
	}

	headerRow := len(details) + 2
	header := []interface{}{"Code", "Title", "Credit", "Year", "Semester"}
	if err := f.SetSheetRow(registrationSheet, fmt.Sprintf("A%d", headerRow), &header); err != nil {
		return fmt.Errorf("failed to write slip header: %w", err)
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(registrationSheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("E%d", headerRow), style)
	}

	total := 0
	for i, tc := range taken {
		row := []interface{}{tc.Course.Code, tc.Course.Title, tc.Course.Credit, tc.Course.Year, string(tc.Course.Semester)}
		if err := f.SetSheetRow(registrationSheet, fmt.Sprintf("A%d", headerRow+1+i), &row); err != nil {
			return fmt.Errorf("failed to write slip row: %w", err)
		}
		total += tc.Course.Credit
	}

	totalRow := []interface{}{"", "Total credit", total}
	if err := f.SetSheetRow(registrationSheet, fmt.Sprintf("A%d", headerRow+1+len(taken)), &totalRow); err != nil {
		return fmt.Errorf("failed to write slip total: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// headerIndex maps column names to positions. Title and code are required.
func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, known := range courseImportColumns {
			if name == known {
				columns[name] = i
			}
		}
	}

	for _, required := range []string{"title", "code"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", ErrInvalidSpreadsheet, required)
		}
	}
	return columns, nil
}

func parseCourseRow(row []string, columns map[string]int) (*CreateCourseRequest, error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	req := &CreateCourseRequest{
		Title:    cell("title"),
		Code:     cell("code"),
		Level:    cell("level"),
		Semester: models.SemesterTag(cell("semester")),
		Year:     1,
	}

	if v := cell("credit"); v != "" {
		credit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("credit %q is not a number", v)
		}
		req.Credit = credit
	}

	if v := cell("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("year %q is not a number", v)
		}
		req.Year = year
	}

	if v := cell("summary"); v != "" {
		req.Summary = &v
	}

	if v := cell("is_elective"); v != "" {
		elective, err := parseBool(v)
		if err != nil {
			return nil, err
		}
		req.IsElective = elective
	}

	return req, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("is_elective %q is not a yes/no value", v)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isRowError reports failures caused by the row content rather than the system
func isRowError(err error) bool {
	var validationErrors ValidationErrors
	return errors.As(err, &validationErrors) || errors.Is(err, ErrDuplicateCourseCode)
}
