package repository

import (
	"online_course_backend/internal/config"
	"online_course_backend/internal/model"
	"online_course_backend/pkg/database"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "course.db"),
	})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com"}
	if err := NewUserRepository(db).Create(u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// seedQuestion 在新课程的新课时下创建一道题，correct 标记每个选项是否正确
func seedQuestion(t *testing.T, db *gorm.DB, grade int, correct ...bool) (*model.Course, *model.Lesson, *model.Question) {
	t.Helper()
	course := model.NewCourse("Go Basics", "intro")
	if err := NewCourseRepository(db).Create(course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	lesson := model.NewLesson(course.ID, "Lesson 1", 0, "content")
	if err := NewLessonRepository(db).Create(lesson); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	q := model.NewQuestion(lesson.ID, "Pick", grade)
	for i, ok := range correct {
		q.Choices = append(q.Choices, model.Choice{ChoiceText: string(rune('A' + i)), IsCorrect: ok})
	}
	if err := NewQuestionRepository(db).CreateQuestion(q); err != nil {
		t.Fatalf("create question: %v", err)
	}
	return course, lesson, q
}
