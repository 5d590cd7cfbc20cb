package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Create 只写入 submission_choices 关联，不回写选项本身
func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Omit("Enrollment", "Choices.*").Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Preload("Enrollment").
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id asc")
		}).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SubmissionRepository) ListByEnrollment(enrollmentID uint) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Preload("Choices").Where("enrollment_id = ?", enrollmentID).Order("created_at desc").Find(&ss).Error
	return ss, err
}

func (r *SubmissionRepository) ReplaceChoices(submission *model.Submission, choices []model.Choice) error {
	return r.DB.Model(submission).Omit("Choices.*").Association("Choices").Replace(choices)
}

func (r *SubmissionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		s := &model.Submission{UUIDBase: model.UUIDBase{ID: id}}
		if err := tx.Model(s).Association("Choices").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Submission{}, "id = ?", id).Error
	})
}
