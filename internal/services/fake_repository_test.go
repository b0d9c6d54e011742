package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func notFound(what string, key interface{}) error {
	return fmt.Errorf("%s %v: %w", what, key, repositories.ErrNotFound)
}

// fakeRepository keeps every table in memory. All sub-repositories share one store
// and one lock, and WithTransaction runs fn against the same store.
type fakeRepository struct {
	mu sync.Mutex

	programs    map[uint]*models.Program
	courses     map[uint]*models.Course
	allocations map[uint]*models.CourseAllocation
	taken       []*models.TakenCourse
	uploads     map[uint]*models.Upload
	videos      map[uint]*models.UploadVideo
	users       map[string]*models.User
	students    map[string]*models.Student
	sessions    map[uint]*models.Session
	semesters   map[uint]*models.Semester

	nextID uint

	// txErr makes WithTransaction fail after fn succeeds, to simulate a failed commit
	txErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		programs:    map[uint]*models.Program{},
		courses:     map[uint]*models.Course{},
		allocations: map[uint]*models.CourseAllocation{},
		uploads:     map[uint]*models.Upload{},
		videos:      map[uint]*models.UploadVideo{},
		users:       map[string]*models.User{},
		students:    map[string]*models.Student{},
		sessions:    map[uint]*models.Session{},
		semesters:   map[uint]*models.Semester{},
	}
}

func (r *fakeRepository) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepository) Program() repositories.ProgramRepository           { return fakePrograms{r} }
func (r *fakeRepository) Course() repositories.CourseRepository             { return fakeCourses{r} }
func (r *fakeRepository) Allocation() repositories.AllocationRepository     { return fakeAllocations{r} }
func (r *fakeRepository) Registration() repositories.RegistrationRepository { return fakeRegistrations{r} }
func (r *fakeRepository) Upload() repositories.UploadRepository             { return fakeUploads{r} }
func (r *fakeRepository) Video() repositories.VideoRepository               { return fakeVideos{r} }
func (r *fakeRepository) User() repositories.UserRepository                 { return fakeUsers{r} }
func (r *fakeRepository) Student() repositories.StudentRepository           { return fakeStudents{r} }
func (r *fakeRepository) Calendar() repositories.CalendarRepository         { return fakeCalendar{r} }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	if err := fn(r); err != nil {
		return err
	}
	return r.txErr
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// ===== SEED HELPERS =====

func (r *fakeRepository) addProgram(title string) *models.Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &models.Program{ID: r.id(), Title: title}
	r.programs[p.ID] = p
	return p
}

func (r *fakeRepository) addCourse(programID uint, code string, credit int, level string, year int, semester models.SemesterTag) *models.Course {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &models.Course{
		ID:        r.id(),
		Slug:      strings.ToLower(code),
		Title:     "Course " + code,
		Code:      code,
		Credit:    credit,
		Level:     level,
		Year:      year,
		Semester:  semester,
		ProgramID: programID,
	}
	r.courses[c.ID] = c
	return c
}

func (r *fakeRepository) addUser(id string, role models.UserRole) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &models.User{ID: id, FullName: "User " + id, Email: id + "@example.edu", Role: role}
	r.users[id] = u
	return u
}

func (r *fakeRepository) addStudent(userID string, departmentID uint, level string) *models.Student {
	user := r.addUser(userID, models.RoleStudent)
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &models.Student{ID: r.id(), UserID: userID, Level: level, DepartmentID: departmentID, User: *user}
	if p, ok := r.programs[departmentID]; ok {
		s.Department = p
	}
	r.students[userID] = s
	return s
}

func (r *fakeRepository) openSemester(tag models.SemesterTag, sessionTitle string) *models.Semester {
	r.mu.Lock()
	defer r.mu.Unlock()
	session := &models.Session{ID: r.id(), Title: sessionTitle, IsCurrent: true}
	r.sessions[session.ID] = session
	semester := &models.Semester{ID: r.id(), Semester: tag, IsCurrent: true, SessionID: &session.ID, Session: session}
	r.semesters[semester.ID] = semester
	return semester
}

// ===== PROGRAMS =====

type fakePrograms struct{ r *fakeRepository }

func (f fakePrograms) Create(ctx context.Context, program *models.Program) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, p := range f.r.programs {
		if strings.EqualFold(p.Title, program.Title) {
			return repositories.ErrDuplicate
		}
	}
	program.ID = f.r.id()
	f.r.programs[program.ID] = program
	return nil
}

func (f fakePrograms) GetByID(ctx context.Context, id uint) (*models.Program, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	p, ok := f.r.programs[id]
	if !ok {
		return nil, notFound("program", id)
	}
	return p, nil
}

func (f fakePrograms) Update(ctx context.Context, program *models.Program) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.programs[program.ID]; !ok {
		return notFound("program", program.ID)
	}
	f.r.programs[program.ID] = program
	return nil
}

func (f fakePrograms) Delete(ctx context.Context, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.programs[id]; !ok {
		return notFound("program", id)
	}
	delete(f.r.programs, id)
	for cid, c := range f.r.courses {
		if c.ProgramID == id {
			delete(f.r.courses, cid)
		}
	}
	return nil
}

func (f fakePrograms) List(ctx context.Context, filters repositories.ProgramFilters) ([]*models.Program, int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.Program
	for _, p := range f.r.programs {
		if filters.Title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filters.Title)) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return paginate(result, filters.Offset, filters.Limit), int64(len(result)), nil
}

func (f fakePrograms) ExistsByTitle(ctx context.Context, title string, excludeID *uint) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, p := range f.r.programs {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if strings.EqualFold(p.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakePrograms) CreditSum(ctx context.Context, programID uint) (int, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	sum := 0
	for _, c := range f.r.courses {
		if c.ProgramID == programID {
			sum += c.Credit
		}
	}
	return sum, nil
}

// ===== COURSES =====

type fakeCourses struct{ r *fakeRepository }

func (f fakeCourses) Create(ctx context.Context, course *models.Course) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, c := range f.r.courses {
		if c.Code == course.Code || c.Slug == course.Slug {
			return repositories.ErrDuplicate
		}
	}
	course.ID = f.r.id()
	f.r.courses[course.ID] = course
	return nil
}

func (f fakeCourses) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	c, ok := f.r.courses[id]
	if !ok {
		return nil, notFound("course", id)
	}
	return c, nil
}

func (f fakeCourses) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, c := range f.r.courses {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, notFound("course", slug)
}

func (f fakeCourses) GetByIDs(ctx context.Context, ids []uint) ([]*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.Course
	for _, id := range ids {
		if c, ok := f.r.courses[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f fakeCourses) Update(ctx context.Context, course *models.Course) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.courses[course.ID]; !ok {
		return notFound("course", course.ID)
	}
	f.r.courses[course.ID] = course
	return nil
}

func (f fakeCourses) Delete(ctx context.Context, course *models.Course) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.courses[course.ID]; !ok {
		return notFound("course", course.ID)
	}
	delete(f.r.courses, course.ID)
	kept := f.r.taken[:0]
	for _, tc := range f.r.taken {
		if tc.CourseID != course.ID {
			kept = append(kept, tc)
		}
	}
	f.r.taken = kept
	for id, u := range f.r.uploads {
		if u.CourseID == course.ID {
			delete(f.r.uploads, id)
		}
	}
	for id, v := range f.r.videos {
		if v.CourseID == course.ID {
			delete(f.r.videos, id)
		}
	}
	return nil
}

func (f fakeCourses) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()

	excluded := make(map[uint]bool, len(filters.ExcludeIDs))
	for _, id := range filters.ExcludeIDs {
		excluded[id] = true
	}

	var result []*models.Course
	for _, c := range f.r.courses {
		switch {
		case filters.ProgramID != nil && c.ProgramID != *filters.ProgramID,
			filters.Level != nil && c.Level != *filters.Level,
			filters.Semester != nil && c.Semester != *filters.Semester,
			excluded[c.ID]:
			continue
		}
		result = append(result, c)
	}

	desc := filters.SortOrder != "asc"
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			if desc {
				return result[i].Year > result[j].Year
			}
			return result[i].Year < result[j].Year
		}
		return result[i].ID < result[j].ID
	})

	return paginate(result, filters.Offset, filters.Limit), int64(len(result)), nil
}

func (f fakeCourses) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, c := range f.r.courses {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeCourses) ExistsByCode(ctx context.Context, code string, excludeID *uint) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, c := range f.r.courses {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if strings.EqualFold(c.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

// ===== ALLOCATIONS =====

type fakeAllocations struct{ r *fakeRepository }

func (f fakeAllocations) Upsert(ctx context.Context, lecturerID string, sessionID *uint) (*models.CourseAllocation, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, a := range f.r.allocations {
		if a.LecturerID == lecturerID {
			if sessionID != nil {
				a.SessionID = sessionID
			}
			return a, nil
		}
	}
	a := &models.CourseAllocation{ID: f.r.id(), LecturerID: lecturerID, SessionID: sessionID}
	if u, ok := f.r.users[lecturerID]; ok {
		a.Lecturer = *u
	}
	f.r.allocations[a.ID] = a
	return a, nil
}

func (f fakeAllocations) GetByID(ctx context.Context, id uint) (*models.CourseAllocation, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	a, ok := f.r.allocations[id]
	if !ok {
		return nil, notFound("allocation", id)
	}
	return a, nil
}

func (f fakeAllocations) GetByLecturer(ctx context.Context, lecturerID string) (*models.CourseAllocation, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, a := range f.r.allocations {
		if a.LecturerID == lecturerID {
			return a, nil
		}
	}
	return nil, notFound("allocation for lecturer", lecturerID)
}

func (f fakeAllocations) List(ctx context.Context, filters repositories.AllocationFilters) ([]*models.CourseAllocation, int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.CourseAllocation
	for _, a := range f.r.allocations {
		if filters.LecturerID != nil && a.LecturerID != *filters.LecturerID {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return paginate(result, filters.Offset, filters.Limit), int64(len(result)), nil
}

func (f fakeAllocations) Delete(ctx context.Context, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.allocations[id]; !ok {
		return notFound("allocation", id)
	}
	delete(f.r.allocations, id)
	return nil
}

func (f fakeAllocations) AddCourses(ctx context.Context, allocationID uint, courses []*models.Course) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	a, ok := f.r.allocations[allocationID]
	if !ok {
		return notFound("allocation", allocationID)
	}
	for _, c := range courses {
		present := false
		for _, existing := range a.Courses {
			if existing.ID == c.ID {
				present = true
				break
			}
		}
		if !present {
			a.Courses = append(a.Courses, *c)
		}
	}
	return nil
}

func (f fakeAllocations) ReplaceCourses(ctx context.Context, allocationID uint, courses []*models.Course) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	a, ok := f.r.allocations[allocationID]
	if !ok {
		return notFound("allocation", allocationID)
	}
	a.Courses = nil
	for _, c := range courses {
		a.Courses = append(a.Courses, *c)
	}
	return nil
}

func (f fakeAllocations) LecturersForCourse(ctx context.Context, courseID uint) ([]*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.User
	for _, a := range f.r.allocations {
		for _, c := range a.Courses {
			if c.ID == courseID {
				lecturer := a.Lecturer
				result = append(result, &lecturer)
				break
			}
		}
	}
	return result, nil
}

// ===== REGISTRATIONS =====

type fakeRegistrations struct{ r *fakeRepository }

func (f fakeRegistrations) Create(ctx context.Context, studentID uint, courseIDs []uint) ([]uint, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var inserted []uint
	for _, id := range courseIDs {
		if f.r.holds(studentID, id) {
			continue
		}
		tc := &models.TakenCourse{ID: f.r.id(), StudentID: studentID, CourseID: id}
		if c, ok := f.r.courses[id]; ok {
			tc.Course = *c
		}
		f.r.taken = append(f.r.taken, tc)
		inserted = append(inserted, id)
	}
	return inserted, nil
}

func (f fakeRegistrations) Delete(ctx context.Context, studentID uint, courseIDs []uint) ([]uint, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	drop := make(map[uint]bool, len(courseIDs))
	for _, id := range courseIDs {
		drop[id] = true
	}
	var removed []uint
	kept := f.r.taken[:0]
	for _, tc := range f.r.taken {
		if tc.StudentID == studentID && drop[tc.CourseID] {
			removed = append(removed, tc.CourseID)
			continue
		}
		kept = append(kept, tc)
	}
	f.r.taken = kept
	return removed, nil
}

func (f fakeRegistrations) ListByStudent(ctx context.Context, studentID uint) ([]*models.TakenCourse, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.TakenCourse
	for _, tc := range f.r.taken {
		if tc.StudentID == studentID {
			result = append(result, tc)
		}
	}
	return result, nil
}

func (f fakeRegistrations) CourseIDsByStudent(ctx context.Context, studentID uint) ([]uint, error) {
	taken, _ := f.ListByStudent(ctx, studentID)
	return takenCourseIDs(taken), nil
}

func (r *fakeRepository) holds(studentID, courseID uint) bool {
	for _, tc := range r.taken {
		if tc.StudentID == studentID && tc.CourseID == courseID {
			return true
		}
	}
	return false
}

// ===== UPLOADS =====

type fakeUploads struct{ r *fakeRepository }

func (f fakeUploads) Create(ctx context.Context, upload *models.Upload) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	upload.ID = f.r.id()
	f.r.uploads[upload.ID] = upload
	return nil
}

func (f fakeUploads) GetByID(ctx context.Context, courseID, id uint) (*models.Upload, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	u, ok := f.r.uploads[id]
	if !ok || u.CourseID != courseID {
		return nil, notFound("upload", id)
	}
	return u, nil
}

func (f fakeUploads) ListByCourse(ctx context.Context, courseID uint) ([]*models.Upload, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.Upload
	for _, u := range f.r.uploads {
		if u.CourseID == courseID {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f fakeUploads) Update(ctx context.Context, upload *models.Upload) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	f.r.uploads[upload.ID] = upload
	return nil
}

func (f fakeUploads) Delete(ctx context.Context, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.uploads[id]; !ok {
		return notFound("upload", id)
	}
	delete(f.r.uploads, id)
	return nil
}

type fakeVideos struct{ r *fakeRepository }

func (f fakeVideos) Create(ctx context.Context, video *models.UploadVideo) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	video.ID = f.r.id()
	f.r.videos[video.ID] = video
	return nil
}

func (f fakeVideos) GetBySlug(ctx context.Context, courseID uint, slug string) (*models.UploadVideo, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, v := range f.r.videos {
		if v.CourseID == courseID && v.Slug == slug {
			return v, nil
		}
	}
	return nil, notFound("video", slug)
}

func (f fakeVideos) ListByCourse(ctx context.Context, courseID uint) ([]*models.UploadVideo, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.UploadVideo
	for _, v := range f.r.videos {
		if v.CourseID == courseID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (f fakeVideos) Update(ctx context.Context, video *models.UploadVideo) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	f.r.videos[video.ID] = video
	return nil
}

func (f fakeVideos) Delete(ctx context.Context, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.videos[id]; !ok {
		return notFound("video", id)
	}
	delete(f.r.videos, id)
	return nil
}

// ===== PEOPLE =====

type fakeUsers struct{ r *fakeRepository }

func (f fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	u, ok := f.r.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return u, nil
}

func (f fakeUsers) Upsert(ctx context.Context, user *models.User) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	f.r.users[user.ID] = user
	return nil
}

func (f fakeUsers) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.User
	for _, u := range f.r.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return paginate(result, filters.Offset, filters.Limit), int64(len(result)), nil
}

type fakeStudents struct{ r *fakeRepository }

func (f fakeStudents) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	s, ok := f.r.students[userID]
	if !ok {
		return nil, notFound("student", userID)
	}
	return s, nil
}

func (f fakeStudents) Upsert(ctx context.Context, student *models.Student) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if existing, ok := f.r.students[student.UserID]; ok {
		existing.Level = student.Level
		existing.DepartmentID = student.DepartmentID
		existing.Department = f.r.programs[student.DepartmentID]
		return nil
	}
	student.ID = f.r.id()
	student.Department = f.r.programs[student.DepartmentID]
	if u, ok := f.r.users[student.UserID]; ok {
		student.User = *u
	}
	f.r.students[student.UserID] = student
	return nil
}

// ===== CALENDAR =====

type fakeCalendar struct{ r *fakeRepository }

func (f fakeCalendar) GetCurrentSemester(ctx context.Context) (*models.Semester, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, s := range f.r.semesters {
		if s.IsCurrent {
			return s, nil
		}
	}
	return nil, notFound("semester", "current")
}

func (f fakeCalendar) GetSemesterByID(ctx context.Context, id uint) (*models.Semester, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	s, ok := f.r.semesters[id]
	if !ok {
		return nil, notFound("semester", id)
	}
	return s, nil
}

func (f fakeCalendar) ListSemesters(ctx context.Context) ([]*models.Semester, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var result []*models.Semester
	for _, s := range f.r.semesters {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f fakeCalendar) CreateSemester(ctx context.Context, semester *models.Semester) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	semester.ID = f.r.id()
	if semester.SessionID != nil {
		semester.Session = f.r.sessions[*semester.SessionID]
	}
	f.r.semesters[semester.ID] = semester
	return nil
}

func (f fakeCalendar) SetCurrentSemester(ctx context.Context, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.semesters[id]; !ok {
		return notFound("semester", id)
	}
	for sid, s := range f.r.semesters {
		s.IsCurrent = sid == id
	}
	return nil
}

func (f fakeCalendar) GetCurrentSession(ctx context.Context) (*models.Session, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, s := range f.r.sessions {
		if s.IsCurrent {
			return s, nil
		}
	}
	return nil, notFound("session", "current")
}

func (f fakeCalendar) GetSessionByID(ctx context.Context, id uint) (*models.Session, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	s, ok := f.r.sessions[id]
	if !ok {
		return nil, notFound("session", id)
	}
	return s, nil
}

func (f fakeCalendar) CreateSession(ctx context.Context, session *models.Session) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, s := range f.r.sessions {
		if s.Title == session.Title {
			return repositories.ErrDuplicate
		}
	}
	session.ID = f.r.id()
	f.r.sessions[session.ID] = session
	return nil
}

func (f fakeCalendar) SetCurrentSession(ctx context.Context, id uint) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if _, ok := f.r.sessions[id]; !ok {
		return notFound("session", id)
	}
	for sid, s := range f.r.sessions {
		s.IsCurrent = sid == id
	}
	return nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
