package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(tx *gorm.DB, enrollment *model.Enrollment) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Omit("User", "Course", "Submissions").Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Preload("Course").First(&e, id).Error
	return &e, err
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Order("id asc").First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) ListByCourse(courseID uint) ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.Where("course_id = ?", courseID).Order("date_enrolled asc, id asc").Find(&es).Error
	return es, err
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Omit("User", "Course", "Submissions").Save(enrollment).Error
}

// CourseIDsForUser 返回用户已选的课程 ID
func (r *EnrollmentRepository) CourseIDsForUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Enrollment{}).Where("user_id = ?", userID).Distinct().Pluck("course_id", &ids).Error
	return ids, err
}
