package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Preload("Course").First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) ListByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).Order("`order` asc, id asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Omit("Course", "Questions").Save(lesson).Error
}

// Delete 级联删除题目与选项
func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteLessons(tx, []uint{id})
	})
}

func deleteLessons(tx *gorm.DB, lessonIDs []uint) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	var questionIDs []uint
	if err := tx.Model(&model.Question{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if err := deleteQuestions(tx, questionIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", lessonIDs).Delete(&model.Lesson{}).Error
}
