package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionRepository 题目与选项
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// CreateQuestion 题目与其 Choices 在同一事务中写入
func (r *QuestionRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) ListByLesson(lessonID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("lesson_id = ?", lessonID).Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Omit("Lesson", "Choices").Save(question).Error
}

func (r *QuestionRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteQuestions(tx, []uint{id})
	})
}

func (r *QuestionRepository) CreateChoice(choice *model.Choice) error {
	return r.DB.Create(choice).Error
}

func (r *QuestionRepository) ListChoices(questionID uint) ([]model.Choice, error) {
	var cs []model.Choice
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&cs).Error
	return cs, err
}

func (r *QuestionRepository) CountChoices(questionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Choice{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

// FindChoicesByIDs 同时加载所属题目，便于校验题目归属的课时
func (r *QuestionRepository) FindChoicesByIDs(ids []uint) ([]model.Choice, error) {
	var cs []model.Choice
	if len(ids) == 0 {
		return cs, nil
	}
	err := r.DB.Preload("Question.Lesson").Where("id IN ?", ids).Order("id asc").Find(&cs).Error
	return cs, err
}

func (r *QuestionRepository) UpdateChoice(choice *model.Choice) error {
	return r.DB.Omit("Question").Save(choice).Error
}

func (r *QuestionRepository) DeleteChoice(id uint) error {
	return r.DB.Delete(&model.Choice{}, id).Error
}

func deleteQuestions(tx *gorm.DB, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Choice{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", questionIDs).Delete(&model.Question{}).Error
}
