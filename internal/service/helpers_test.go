package service

import (
	"online_course_backend/internal/config"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/pkg/database"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	users       *repository.UserRepository
	people      *repository.PeopleRepository
	courses     *repository.CourseRepository
	lessons     *repository.LessonRepository
	questions   *repository.QuestionRepository
	enrollments *repository.EnrollmentRepository
	submissions *repository.SubmissionRepository

	peopleSvc     *PeopleService
	courseSvc     *CourseService
	enrollmentSvc *EnrollmentService
	examSvc       *ExamService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "course.db"),
	})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	f := &fixture{
		db:          db,
		users:       repository.NewUserRepository(db),
		people:      repository.NewPeopleRepository(db),
		courses:     repository.NewCourseRepository(db),
		lessons:     repository.NewLessonRepository(db),
		questions:   repository.NewQuestionRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		submissions: repository.NewSubmissionRepository(db),
	}
	f.peopleSvc = NewPeopleService(f.users, f.people)
	f.courseSvc = NewCourseService(f.courses, f.lessons, f.questions, f.people, f.enrollments)
	f.enrollmentSvc = NewEnrollmentService(db, f.users, f.courses, f.enrollments)
	f.examSvc = NewExamService(f.courses, f.enrollments, f.questions, f.submissions, 80)
	return f
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username}
	if err := f.users.Create(u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func intPtr(v int) *int { return &v }

// examCourse: one course, one lesson, two questions
//
//	q1 (grade 10): A correct, B wrong, C wrong
//	q2 (grade 5):  X wrong, Y correct
func (f *fixture) examCourse(t *testing.T) (*model.Course, *model.Question, *model.Question) {
	t.Helper()
	course, err := f.courseSvc.CreateCourse(CourseRequest{Name: "Go Basics", Description: "intro"})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	lesson, err := f.courseSvc.AddLesson(course.ID, LessonRequest{Title: "Types", Order: 1})
	if err != nil {
		t.Fatalf("AddLesson: %v", err)
	}
	q1, err := f.courseSvc.AddQuestion(lesson.ID, QuestionRequest{
		Text:  "Which is a Go keyword?",
		Grade: intPtr(10),
		Choices: []ChoiceRequest{
			{Text: "func", IsCorrect: true},
			{Text: "def"},
			{Text: "fn"},
		},
	})
	if err != nil {
		t.Fatalf("AddQuestion q1: %v", err)
	}
	q2, err := f.courseSvc.AddQuestion(lesson.ID, QuestionRequest{
		Text:  "Zero value of int?",
		Grade: intPtr(5),
		Choices: []ChoiceRequest{
			{Text: "nil"},
			{Text: "0", IsCorrect: true},
		},
	})
	if err != nil {
		t.Fatalf("AddQuestion q2: %v", err)
	}
	return course, q1, q2
}
