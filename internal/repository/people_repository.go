package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
)

// PeopleRepository 讲师与学员档案
type PeopleRepository struct {
	DB *gorm.DB
}

func NewPeopleRepository(db *gorm.DB) *PeopleRepository {
	return &PeopleRepository{DB: db}
}

func (r *PeopleRepository) CreateInstructor(instructor *model.Instructor) error {
	return r.DB.Create(instructor).Error
}

func (r *PeopleRepository) FindInstructorByID(id uint) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.DB.Preload("User").First(&instructor, id).Error
	return &instructor, err
}

func (r *PeopleRepository) UpdateInstructor(instructor *model.Instructor) error {
	return r.DB.Omit("User").Save(instructor).Error
}

func (r *PeopleRepository) CreateLearner(learner *model.Learner) error {
	return r.DB.Create(learner).Error
}

func (r *PeopleRepository) FindLearnerByID(id uint) (*model.Learner, error) {
	var learner model.Learner
	err := r.DB.Preload("User").First(&learner, id).Error
	return &learner, err
}

func (r *PeopleRepository) FindLearnerByUserID(userID uint) (*model.Learner, error) {
	var learner model.Learner
	err := r.DB.Preload("User").Where("user_id = ?", userID).First(&learner).Error
	return &learner, err
}

func (r *PeopleRepository) UpdateLearner(learner *model.Learner) error {
	return r.DB.Omit("User").Save(learner).Error
}
