package service

import (
	"errors"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"
	"online_course_backend/pkg/logger"
	"online_course_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	DB          *gorm.DB
	Users       *repository.UserRepository
	Courses     *repository.CourseRepository
	Enrollments *repository.EnrollmentRepository
}

func NewEnrollmentService(
	db *gorm.DB,
	users *repository.UserRepository,
	courses *repository.CourseRepository,
	enrollments *repository.EnrollmentRepository,
) *EnrollmentService {
	return &EnrollmentService{DB: db, Users: users, Courses: courses, Enrollments: enrollments}
}

// Enroll 已选过该课程时直接返回原记录（created=false），不重复计数
func (s *EnrollmentService) Enroll(userID, courseID uint, mode model.CourseMode) (enrollment *model.Enrollment, created bool, err error) {
	if mode != "" && !mode.Valid() {
		return nil, false, util.ErrInvalidMode
	}
	if _, err := s.Users.FindByID(userID); err != nil {
		return nil, false, notFound(err, util.ErrUserNotFound)
	}
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return nil, false, notFound(err, util.ErrCourseNotFound)
	}

	existing, err := s.Enrollments.FindByUserAndCourse(userID, courseID)
	if err == nil && existing != nil {
		return existing, false, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	enrollment = model.NewEnrollment(userID, courseID, mode)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Enrollments.Create(tx, enrollment); err != nil {
			return err
		}
		return s.Courses.IncrementEnrollment(tx, courseID)
	})
	if err != nil {
		return nil, false, err
	}

	monitoring.Enrollments.WithLabelValues(string(enrollment.Mode)).Inc()
	logger.Log.Info("learner enrolled",
		zap.Uint("userId", userID),
		zap.Uint("courseId", courseID),
		zap.String("mode", string(enrollment.Mode)),
	)
	return enrollment, true, nil
}

func (s *EnrollmentService) Rate(enrollmentID uint, rating float64) (*model.Enrollment, error) {
	if rating < 0 || rating > 5 {
		return nil, util.ErrInvalidRating
	}
	enrollment, err := s.Enrollments.FindByID(enrollmentID)
	if err != nil {
		return nil, notFound(err, util.ErrEnrollmentNotFound)
	}
	enrollment.Rating = rating
	if err := s.Enrollments.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ChangeMode(enrollmentID uint, mode model.CourseMode) (*model.Enrollment, error) {
	if !mode.Valid() {
		return nil, util.ErrInvalidMode
	}
	enrollment, err := s.Enrollments.FindByID(enrollmentID)
	if err != nil {
		return nil, notFound(err, util.ErrEnrollmentNotFound)
	}
	enrollment.Mode = mode
	if err := s.Enrollments.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListByCourse(courseID uint) ([]model.Enrollment, error) {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return s.Enrollments.ListByCourse(courseID)
}
